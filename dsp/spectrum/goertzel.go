package spectrum

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidSampleRate indicates a sample rate that is not finite and positive.
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be > 0")
	// ErrInvalidFrequency indicates a frequency outside [0, sampleRate/2].
	ErrInvalidFrequency = errors.New("spectrum: frequency must be between 0 and sampleRate/2")
)

// Goertzel implements the Goertzel algorithm for single-bin frequency analysis.
//
// The analyzer is stateful and accumulates information from each processed
// sample. Power, Magnitude and Amplitude evaluate the frequency component
// based on all samples processed so far.
//
// Spectral leakage occurs if the target frequency does not align with an
// integer number of cycles within the processed block; pick block lengths
// holding whole periods when measuring amplitudes.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel creates a new Goertzel analyzer for the target frequency.
//
// frequency must be between 0 and sampleRate/2.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if err := checkRate(sampleRate); err != nil {
		return nil, err
	}

	if err := checkFrequency(frequency, sampleRate); err != nil {
		return nil, err
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

func checkRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	return nil
}

func checkFrequency(frequency, sampleRate float64) error {
	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, frequency)
	}

	return nil
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns the squared magnitude of the frequency component.
//
// The result is equivalent to |X[k]|^2 from a DFT of the same block length.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns the magnitude of the frequency component.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// Amplitude returns the peak amplitude of a sinusoid at the target
// frequency: 2*Magnitude/N, or Magnitude/N at DC and Nyquist.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}

	a := g.Magnitude() / float64(g.n)
	if g.frequency == 0 || g.frequency == g.sampleRate/2 {
		return a
	}

	return 2 * a
}
