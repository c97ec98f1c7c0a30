package window

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned by ParseType for unrecognized window names.
var ErrUnknownType = errors.New("window: unknown type")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func validateKaiser(size int, beta float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if beta < 0 {
		return fmt.Errorf("kaiser beta must be >= 0: %f", beta)
	}
	return nil
}
