package fir

import (
	"math"
	"math/cmplx"
)

// Filter implements a direct-form FIR filter using a circular-buffer delay line.
type Filter struct {
	coeffs []float64
	delay  []float64
	pos    int
}

// New creates a FIR filter from the given coefficient slice.
// The coefficients are copied. The filter order is len(coeffs)-1.
func New(coeffs []float64) *Filter {
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return &Filter{
		coeffs: c,
		delay:  make([]float64, len(coeffs)),
	}
}

// ProcessSample filters one input sample using direct convolution
// with a circular delay line.
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
//
// Samples before the first call are zero.
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.coeffs)
	if n == 0 {
		return 0
	}

	f.delay[f.pos] = x

	var y float64
	p := f.pos
	for k := range n {
		y += f.coeffs[k] * f.delay[p]
		p--
		if p < 0 {
			p = n - 1
		}
	}

	f.pos++
	if f.pos >= n {
		f.pos = 0
	}

	return y
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line to zero.
func (f *Filter) Reset() {
	clear(f.delay)
	f.pos = 0
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter) Order() int {
	return len(f.coeffs) - 1
}

// Response computes the complex frequency response H(e^{jw}) at the given
// frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var re, im float64
	for k, c := range f.coeffs {
		s, co := math.Sincos(w * float64(k))
		re += c * co
		im -= c * s
	}
	return complex(re, im)
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}
