package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv("RATECONV_OUTPUT_RATE", "16000")
	t.Setenv("RATECONV_WORKERS", "0")
	t.Setenv("RATECONV_WINDOW", "blackman")
	t.Setenv("RATECONV_COEFFS", "")

	j := Default()
	if err := j.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if j.OutputRate != 16000 || j.Workers != 0 || j.Filter.Window != "blackman" || j.CoeffsPath != "" {
		t.Fatalf("ApplyEnv() = %+v", j)
	}

	if j.Filter.Length != 1025 {
		t.Fatalf("length = %d, want untouched 1025", j.Filter.Length)
	}
}

func TestApplyEnvInvalidInt(t *testing.T) {
	t.Setenv("RATECONV_FILTER_LENGTH", "long")

	j := Default()
	if err := j.ApplyEnv(); !errors.Is(err, ErrInvalidJob) {
		t.Fatalf("expected ErrInvalidJob, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rateconv.env")

	if err := os.WriteFile(path, []byte("RATECONV_ROUNDING=nearest\nRATECONV_CHANNELS=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// An already exported variable wins over the file.
	t.Setenv("RATECONV_CHANNELS", "2")
	t.Setenv("RATECONV_ROUNDING", "")
	os.Unsetenv("RATECONV_ROUNDING")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	t.Cleanup(func() { os.Unsetenv("RATECONV_ROUNDING") })

	j := Default()
	if err := j.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if j.Rounding != "nearest" || j.Channels != 2 {
		t.Fatalf("rounding=%q channels=%d", j.Rounding, j.Channels)
	}
}
