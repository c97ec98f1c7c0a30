// Package spectrum measures converted audio in the frequency domain.
//
// Goertzel evaluates single DFT bins and backs the tone checks run on
// resampled output. The FFT-side helpers (Magnitude, Phase, UnwrapPhase,
// GroupDelayFromPhase) operate on complex bins produced elsewhere and do
// not implement an FFT themselves.
package spectrum
