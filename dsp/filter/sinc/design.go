package sinc

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-rateconv/dsp/window"
)

var (
	// ErrInvalidLength indicates a non-positive filter length.
	ErrInvalidLength = errors.New("sinc: filter length must be > 0")
	// ErrEvenLength indicates an even filter length, which has no center tap.
	ErrEvenLength = errors.New("sinc: filter length must be odd")
	// ErrInvalidFactor indicates a non-positive interpolation or decimation factor.
	ErrInvalidFactor = errors.New("sinc: up and down factors must be > 0")
	// ErrInvalidCutoff indicates a cutoff outside (0, pi].
	ErrInvalidCutoff = errors.New("sinc: cutoff must be in (0, pi]")
)

// Spec describes a windowed-sinc design for an L/M rate change.
type Spec struct {
	// Length is the number of taps P. It must be odd.
	Length int
	// Up is the interpolation factor L. It is also the passband gain.
	Up int
	// Down is the decimation factor M.
	Down int
	// Window tapers the truncated sinc. The zero value is Hamming.
	Window window.Type
	// KaiserBeta is used when Window is window.TypeKaiser.
	KaiserBeta float64
	// Cutoff overrides the angular cutoff wc in radians per upsampled
	// sample. Zero selects pi/Down.
	Cutoff float64
	// Normalize rescales the taps so that they sum to exactly Up,
	// giving unity DC gain through the converter.
	Normalize bool
}

// DefaultSpec returns the 44.1 kHz to 8 kHz design: 1025 Hamming taps for 80/441.
func DefaultSpec() Spec {
	return Spec{Length: 1025, Up: 80, Down: 441, Window: window.TypeHamming}
}

// Validate reports the first precondition s violates.
func (s Spec) Validate() error {
	if s.Length <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, s.Length)
	}

	if s.Length%2 == 0 {
		return fmt.Errorf("%w: %d", ErrEvenLength, s.Length)
	}

	if s.Up <= 0 || s.Down <= 0 {
		return fmt.Errorf("%w: %d/%d", ErrInvalidFactor, s.Up, s.Down)
	}

	if s.Cutoff < 0 || s.Cutoff > math.Pi || math.IsNaN(s.Cutoff) {
		return fmt.Errorf("%w: %v", ErrInvalidCutoff, s.Cutoff)
	}

	return nil
}

// CutoffRadians returns the angular cutoff used by the design.
func (s Spec) CutoffRadians() float64 {
	if s.Cutoff > 0 {
		return s.Cutoff
	}

	return math.Pi / float64(s.Down)
}

// Design computes the taps described by s. It is deterministic and has no
// side effects beyond allocating the result.
func Design(s Spec) (Taps, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	wc := s.CutoffRadians()
	center := (s.Length - 1) / 2

	taps := make(Taps, s.Length)
	for n := range taps {
		x := float64(n - center)
		if n == center {
			taps[n] = wc / math.Pi
			continue
		}

		taps[n] = math.Sin(wc*x) / (math.Pi * x)
	}

	var opts []window.Option
	if s.Window == window.TypeKaiser {
		opts = append(opts, window.WithAlpha(s.KaiserBeta))
	}

	window.Apply(s.Window, taps, opts...)
	vecmath.ScaleBlock(taps, taps, float64(s.Up))

	if s.Normalize {
		sum := taps.Sum()
		if sum == 0 {
			return nil, errors.New("sinc: designed zero-sum filter")
		}

		vecmath.ScaleBlock(taps, taps, float64(s.Up)/sum)
	}

	return taps, nil
}

// MustDesign is like Design but panics on an invalid spec. It is intended
// for package-level tables built from constant specs.
func MustDesign(s Spec) Taps {
	taps, err := Design(s)
	if err != nil {
		panic(err)
	}

	return taps
}
