package sinc

import (
	"math"

	"github.com/cwbudde/algo-rateconv/dsp/filter/fir"
)

// Taps is an immutable-by-convention set of FIR coefficients indexed 0..P-1.
// Taps may be shared read-only between any number of converters.
type Taps []float64

// Len returns the number of taps.
func (t Taps) Len() int { return len(t) }

// Center returns the index of the center tap, (P-1)/2.
func (t Taps) Center() int {
	return (len(t) - 1) / 2
}

// Clone returns an independent copy of t.
func (t Taps) Clone() Taps {
	out := make(Taps, len(t))
	copy(out, t)

	return out
}

// Sum returns the sum of all taps, the filter's DC gain.
func (t Taps) Sum() float64 {
	var sum float64
	for _, v := range t {
		sum += v
	}

	return sum
}

// PhaseGains returns the DC gain of each of the up polyphase branches: the
// sum of taps k with k%up == p. For a well-designed interpolator these are
// all close to 1.
func (t Taps) PhaseGains(up int) []float64 {
	if up <= 0 {
		return nil
	}

	out := make([]float64, up)
	for k, v := range t {
		out[k%up] += v
	}

	return out
}

// IsSymmetric reports whether t[c+k] and t[c-k] agree for every k within
// tol, relative to the larger magnitude of the pair. Differences below tol
// are always accepted so that taps near a zero crossing do not fail.
func (t Taps) IsSymmetric(tol float64) bool {
	for i, j := 0, len(t)-1; i < j; i, j = i+1, j-1 {
		a, b := t[i], t[j]

		diff := math.Abs(a - b)
		if diff <= tol {
			continue
		}

		if diff > tol*math.Max(math.Abs(a), math.Abs(b)) {
			return false
		}
	}

	return true
}

// Response returns the complex frequency response at freqHz for taps
// running at sampleRate.
func (t Taps) Response(freqHz, sampleRate float64) complex128 {
	return fir.New(t).Response(freqHz, sampleRate)
}

// MagnitudeDB returns the magnitude response in dB at freqHz.
func (t Taps) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return fir.New(t).MagnitudeDB(freqHz, sampleRate)
}
