package sinc

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-rateconv/dsp/core"
	"github.com/cwbudde/algo-rateconv/dsp/spectrum"
)

// Spectrum is a sampled magnitude response over [0, sampleRate/2].
type Spectrum struct {
	// SampleRate is the rate the taps run at.
	SampleRate float64
	// Magnitude holds fftSize/2+1 linear magnitudes, bin k at k*BinHz().
	Magnitude []float64
}

// BinHz returns the bin spacing in Hz.
func (s Spectrum) BinHz() float64 {
	if len(s.Magnitude) < 2 {
		return 0
	}

	return s.SampleRate / float64(2*(len(s.Magnitude)-1))
}

// MagnitudeDB returns the response in dB at bin k.
func (s Spectrum) MagnitudeDB(k int) float64 {
	return core.LinearToDB(s.Magnitude[k])
}

// FrequencyBelow returns the first frequency at which the response drops
// below levelDB relative to DC, or the Nyquist frequency if it never does.
func (s Spectrum) FrequencyBelow(levelDB float64) float64 {
	if len(s.Magnitude) == 0 || s.Magnitude[0] == 0 {
		return 0
	}

	ref := s.Magnitude[0]
	limit := ref * core.DBToLinear(levelDB)
	for k, m := range s.Magnitude {
		if m < limit {
			return float64(k) * s.BinHz()
		}
	}

	return s.SampleRate / 2
}

// MagnitudeResponse zero-pads t to fftSize (rounded up to a power of two
// covering len(t)) and returns the magnitude of its one-sided FFT.
func (t Taps) MagnitudeResponse(fftSize int, sampleRate float64) (Spectrum, error) {
	out, err := t.fft(fftSize)
	if err != nil {
		return Spectrum{}, err
	}

	mag := spectrum.Magnitude(out[:len(out)/2+1])

	return Spectrum{SampleRate: sampleRate, Magnitude: mag}, nil
}

// GroupDelay returns the group delay in samples at the taps' own rate for
// the first bins+1 bins of an fftSize-point FFT. For symmetric taps it equals
// Center() across the passband.
func (t Taps) GroupDelay(fftSize, bins int) ([]float64, error) {
	out, err := t.fft(fftSize)
	if err != nil {
		return nil, err
	}

	n := len(out)
	bins = min(max(bins, 1), n/2)
	phase := spectrum.UnwrapPhase(spectrum.Phase(out[:bins+1]))

	return spectrum.GroupDelayFromPhase(phase, n)
}

// fft returns the FFT of t zero-padded to a power of two >= max(fftSize, len(t)).
func (t Taps) fft(fftSize int) ([]complex128, error) {
	if len(t) == 0 {
		return nil, ErrEmptyTaps
	}

	n := nextPow2(max(fftSize, len(t)))

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("sinc: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range t {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("sinc: fft: %w", err)
	}

	return out, nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// PassbandGain returns |H(f)|/up, the amplitude a tone at freqHz keeps
// after an up/down conversion with these taps. inputRate is the rate before
// upsampling.
func (t Taps) PassbandGain(freqHz, inputRate float64, up int) float64 {
	if up <= 0 {
		return 0
	}

	h := t.Response(freqHz, inputRate*float64(up))

	return math.Hypot(real(h), imag(h)) / float64(up)
}
