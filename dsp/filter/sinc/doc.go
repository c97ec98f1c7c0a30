// Package sinc designs windowed-sinc low-pass filters for rational
// sample-rate conversion.
//
// For a conversion by L/M the filter runs at the conceptual upsampled rate
// L*fs. The ideal response is truncated to an odd length P around a unique
// center tap, tapered by a window (Hamming by default) and scaled by L to
// undo the energy lost to zero-stuffing:
//
//	h[n] = sin(wc*(n-c)) / (pi*(n-c)) * w(n) * L,   c = (P-1)/2
//
// with wc = pi/M unless Spec.Cutoff says otherwise. The center tap takes the
// limit wc/pi.
//
// Taps can be dumped as text (one fixed-point value with 15 decimals per
// line) and read back, and their magnitude response inspected directly or
// through an FFT.
package sinc
