package core

// Deinterleave copies channel ch of an interleaved buffer into dst as
// float64 values and returns dst. Frame i of channel ch lives at i*channels+ch.
func Deinterleave(dst []float64, src []int16, channels, ch int) []float64 {
	frames := 0
	if channels > 0 {
		frames = len(src) / channels
	}

	dst = EnsureLen(dst, frames)
	for i := range dst {
		dst[i] = float64(src[i*channels+ch])
	}

	return dst
}

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}
