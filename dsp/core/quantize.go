package core

import (
	"fmt"
	"math"
	"strings"
)

// Rounding selects how an accumulator is narrowed to an integer sample.
type Rounding int

const (
	// RoundTruncate drops the fractional part (toward zero). This matches a
	// plain float-to-int conversion and is the default.
	RoundTruncate Rounding = iota
	// RoundNearest rounds half away from zero, halving the worst-case
	// quantization error.
	RoundNearest
)

// String returns the configuration name of r.
func (r Rounding) String() string {
	switch r {
	case RoundTruncate:
		return "truncate"
	case RoundNearest:
		return "nearest"
	default:
		return fmt.Sprintf("rounding(%d)", int(r))
	}
}

// ParseRounding resolves "truncate" or "nearest". The empty string selects
// RoundTruncate.
func ParseRounding(s string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "truncate", "trunc":
		return RoundTruncate, nil
	case "nearest", "round":
		return RoundNearest, nil
	default:
		return 0, fmt.Errorf("core: unknown rounding mode %q", s)
	}
}

// QuantizeInt16 saturates v to [-32768, 32767] and narrows it to int16.
// Out-of-range values clamp to the nearest limit; they never wrap.
func QuantizeInt16(v float64, r Rounding) int16 {
	if r == RoundNearest {
		v = math.Round(v)
	}

	return int16(Clamp(v, math.MinInt16, math.MaxInt16))
}
