// Package resample converts interleaved 16-bit PCM between sample rates by a
// fixed rational factor L/M.
//
// The converter behaves like the classic interpolate-filter-decimate chain:
// insert L-1 zeros between input samples, low-pass filter at the upsampled
// rate, keep every M-th sample. The zero-stuffed signal is never built.
// Output sample m is
//
//	y[m] = sum_k h[k] * u[m*M - k]
//
// where u is the implicit upsampled signal. u[j] is non-zero only when j is a
// multiple of L, so only the taps k ≡ m*M (mod L) contribute and each one
// reads input frame (m*M-k)/L. Frames outside the input are zero. Work per
// output sample is about P/L multiply-adds instead of P.
//
// Channels are processed independently; channel c of frame i lives at
// index i*channels+c. The output has floor(frames*L/M) frames. Sums are
// accumulated in float64 and saturated to int16 only at the end, truncating
// toward zero unless RoundNearest is selected.
//
// Common workflows:
//   - New(spec, opts...) designs the filter and builds a Converter
//   - NewWithTaps(taps, up, down, opts...) reuses precomputed taps
//   - NewForRates(inRate, outRate, opts...) derives L/M from two rates
//   - Resample(in, frames, taps, up, down, opts...) one-shot helper
package resample
