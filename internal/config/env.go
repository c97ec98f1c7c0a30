package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RATECONV_"

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	return nil
}

// ApplyEnv overrides job fields from RATECONV_* variables:
// OUTPUT_RATE, FILTER_LENGTH, WINDOW, ROUNDING, WORKERS, CHANNELS, COEFFS.
func (j *Job) ApplyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{key: "OUTPUT_RATE", dst: &j.OutputRate},
		{key: "FILTER_LENGTH", dst: &j.Filter.Length},
		{key: "WORKERS", dst: &j.Workers},
		{key: "CHANNELS", dst: &j.Channels},
	}

	for _, e := range ints {
		v, ok := os.LookupEnv(EnvPrefix + e.key)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %w", ErrInvalidJob, EnvPrefix, e.key, v, err)
		}

		*e.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{key: "WINDOW", dst: &j.Filter.Window},
		{key: "ROUNDING", dst: &j.Rounding},
		{key: "COEFFS", dst: &j.CoeffsPath},
	}

	for _, e := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + e.key); ok {
			*e.dst = v
		}
	}

	return nil
}
