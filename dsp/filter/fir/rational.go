package fir

// ZeroStuff returns x with factor-1 zeros inserted after every sample, so
// x[i] lands at index i*factor of a slice factor times as long.
func ZeroStuff(x []float64, factor int) []float64 {
	if factor < 1 {
		factor = 1
	}

	out := make([]float64, len(x)*factor)
	for i, v := range x {
		out[i*factor] = v
	}

	return out
}

// Decimate keeps every factor-th sample of x, starting with x[0].
func Decimate(x []float64, factor int) []float64 {
	if factor < 1 {
		factor = 1
	}

	out := make([]float64, 0, (len(x)+factor-1)/factor)
	for i := 0; i < len(x); i += factor {
		out = append(out, x[i])
	}

	return out
}

// UpFirDn is the textbook rational rate changer: zero-stuff x by up, filter
// it, then keep every down-th sample. The delay line is reset first, so one
// Filter can process several independent signals. It materializes the
// upsampled signal and exists as a slow reference. The result is truncated
// to len(x)*up/down samples.
func (f *Filter) UpFirDn(x []float64, up, down int) []float64 {
	f.Reset()

	stuffed := ZeroStuff(x, up)
	f.ProcessBlockTo(stuffed, stuffed)

	out := Decimate(stuffed, down)
	if n := len(x) * up / down; len(out) > n {
		out = out[:n]
	}

	return out
}
