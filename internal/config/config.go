// Package config describes a conversion job and loads it from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/algo-rateconv/dsp/core"
	"github.com/cwbudde/algo-rateconv/dsp/filter/sinc"
	"github.com/cwbudde/algo-rateconv/dsp/window"
)

// ErrInvalidJob is wrapped by every validation failure.
var ErrInvalidJob = errors.New("config: invalid job")

// DefaultCoeffsPath is where convert dumps the designed taps unless told otherwise.
const DefaultCoeffsPath = "filter_coeffs.txt"

// Filter selects the anti-aliasing filter.
type Filter struct {
	// Length is the odd tap count.
	Length int `yaml:"length"`
	// Up and Down fix the conversion ratio. When both are zero the ratio is
	// derived from the input rate and Job.OutputRate.
	Up   int `yaml:"up,omitempty"`
	Down int `yaml:"down,omitempty"`
	// Window names the taper: hamming, hann, blackman, kaiser or rectangular.
	Window     string  `yaml:"window"`
	KaiserBeta float64 `yaml:"kaiser_beta,omitempty"`
	// Normalize scales the taps for unity passband gain.
	Normalize bool `yaml:"normalize,omitempty"`
	// TapsPath loads taps from a coefficient dump instead of designing them.
	TapsPath string `yaml:"taps_file,omitempty"`
}

// Job is one conversion run.
type Job struct {
	// Input is a WAV file; Dir converts every .wav file of a directory.
	// Exactly one of them is set for a conversion.
	Input  string `yaml:"input,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
	Output string `yaml:"output,omitempty"`

	OutputRate int    `yaml:"output_rate"`
	Filter     Filter `yaml:"filter"`
	// Channels is the expected channel count; 0 takes it from the input.
	Channels int    `yaml:"channels,omitempty"`
	Rounding string `yaml:"rounding"`
	// Workers <= 0 uses every CPU.
	Workers int `yaml:"workers"`
	// CoeffsPath receives the designed taps; empty disables the dump.
	CoeffsPath string `yaml:"coeffs,omitempty"`
	// Engine selects the converter backend: polyphase (default), direct or soxr.
	Engine string `yaml:"engine,omitempty"`
}

// Default returns the reference job: a 1025-tap Hamming design converting
// to 8 kHz with truncation, which for 44.1 kHz input is L/M = 80/441.
func Default() Job {
	return Job{
		OutputRate: 8000,
		Filter: Filter{
			Length: sinc.DefaultSpec().Length,
			Window: window.TypeHamming.String(),
		},
		Rounding:   core.RoundTruncate.String(),
		Workers:    1,
		CoeffsPath: DefaultCoeffsPath,
	}
}

// Load reads a YAML job from path over Default. Unknown keys are rejected.
func Load(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("read %s: %w", path, err)
	}

	j := Default()
	if err := yaml.UnmarshalWithOptions(data, &j, yaml.Strict()); err != nil {
		return Job{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if j.Filter.Length == 0 {
		j.Filter.Length = sinc.DefaultSpec().Length
	}

	return j, nil
}

// Save writes j to path as YAML, creating parent directories.
func Save(path string, j Job) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// Validate checks the filter settings only, for commands that design taps
// without converting.
func (f Filter) Validate() error {
	if f.TapsPath == "" {
		if f.Length <= 0 || f.Length%2 == 0 {
			return fmt.Errorf("%w: filter length must be odd and positive, got %d", ErrInvalidJob, f.Length)
		}
	}

	if f.Up < 0 || f.Down < 0 || (f.Up == 0) != (f.Down == 0) {
		return fmt.Errorf("%w: up/down must both be positive or both unset, got %d/%d", ErrInvalidJob, f.Up, f.Down)
	}

	if _, err := window.ParseType(f.Window); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}

	if f.KaiserBeta < 0 {
		return fmt.Errorf("%w: kaiser beta must be >= 0, got %v", ErrInvalidJob, f.KaiserBeta)
	}

	return nil
}

// Validate checks a conversion job.
func (j Job) Validate() error {
	if (j.Input == "") == (j.Dir == "") {
		return fmt.Errorf("%w: exactly one of input or dir is required", ErrInvalidJob)
	}

	if j.Dir != "" && j.Output != "" {
		if info, err := os.Stat(j.Output); err == nil && !info.IsDir() {
			return fmt.Errorf("%w: output %s must be a directory in batch mode", ErrInvalidJob, j.Output)
		}
	}

	if err := j.Filter.Validate(); err != nil {
		return err
	}

	if j.Filter.Up == 0 && j.OutputRate <= 0 {
		return fmt.Errorf("%w: output rate must be > 0, got %d", ErrInvalidJob, j.OutputRate)
	}

	if j.Channels < 0 {
		return fmt.Errorf("%w: channels must be >= 0, got %d", ErrInvalidJob, j.Channels)
	}

	if _, err := core.ParseRounding(j.Rounding); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}

	return nil
}

// WindowType returns the parsed window. Call Validate first.
func (f Filter) WindowType() window.Type {
	t, _ := window.ParseType(f.Window)
	return t
}

// RoundingMode returns the parsed rounding mode. Call Validate first.
func (j Job) RoundingMode() core.Rounding {
	r, _ := core.ParseRounding(j.Rounding)
	return r
}
