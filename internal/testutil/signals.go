// Package testutil provides deterministic test signals and comparison
// helpers shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// ToInt16 converts x to int16 by truncation. Values must already lie in the
// int16 range.
func ToInt16(x []float64) []int16 {
	out := make([]int16, len(x))
	for i, v := range x {
		out[i] = int16(v)
	}
	return out
}

// SineInt16 is DeterministicSine truncated to int16.
func SineInt16(freqHz, sampleRate, amplitude float64, length int) []int16 {
	return ToInt16(DeterministicSine(freqHz, sampleRate, amplitude, length))
}

// NoiseInt16 is DeterministicNoise truncated to int16.
func NoiseInt16(seed int64, amplitude float64, length int) []int16 {
	return ToInt16(DeterministicNoise(seed, amplitude, length))
}

// InterleaveFloat packs equally long channel slices frame by frame.
func InterleaveFloat(channels ...[]float64) []float64 {
	return interleave(channels)
}

// InterleaveInt16 packs equally long channel slices frame by frame.
func InterleaveInt16(channels ...[]int16) []int16 {
	return interleave(channels)
}

// Channel extracts channel ch from an interleaved buffer.
func Channel[T any](in []T, channels, ch int) []T {
	out := make([]T, 0, len(in)/channels)
	for i := ch; i < len(in); i += channels {
		out = append(out, in[i])
	}
	return out
}

func interleave[T any](channels [][]T) []T {
	if len(channels) == 0 {
		return nil
	}

	frames := len(channels[0])
	out := make([]T, frames*len(channels))
	for ch, x := range channels {
		for i := 0; i < frames && i < len(x); i++ {
			out[i*len(channels)+ch] = x[i]
		}
	}
	return out
}
