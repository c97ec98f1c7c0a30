package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// ErrGroupDelay indicates phase data that cannot be differentiated.
var ErrGroupDelay = errors.New("spectrum: invalid group delay input")

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)

	return out
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}

	return out
}

// UnwrapPhase returns a new phase slice with +/-2*pi discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}

	out := make([]float64, len(phase))
	out[0] = phase[0]

	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}

		out[i] = phase[i] + offset
	}

	return out
}

// GroupDelayFromPhase computes group delay in samples from unwrapped phase.
//
// The phase slice is expected over uniformly spaced FFT bins. fftSize is the
// FFT size that produced those bins. A centered finite difference is used for
// interior bins, with one-sided differences at the endpoints.
func GroupDelayFromPhase(unwrapped []float64, fftSize int) ([]float64, error) {
	if len(unwrapped) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 phase points, got %d", ErrGroupDelay, len(unwrapped))
	}

	if fftSize <= 0 {
		return nil, fmt.Errorf("%w: fftSize must be > 0: %d", ErrGroupDelay, fftSize)
	}

	dw := 2 * math.Pi / float64(fftSize)

	out := make([]float64, len(unwrapped))
	for i := range unwrapped {
		var dphi float64

		switch i {
		case 0:
			dphi = unwrapped[1] - unwrapped[0]
		case len(unwrapped) - 1:
			dphi = unwrapped[i] - unwrapped[i-1]
		default:
			dphi = (unwrapped[i+1] - unwrapped[i-1]) / 2
		}

		out[i] = -dphi / dw
	}

	return out, nil
}
