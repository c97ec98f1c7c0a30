package resample

import "sync"

type sample interface {
	~int16 | ~float64
}

// convolve returns output sample m of channel ch.
//
// On the upsampled timeline output m sits at pos = m*down, and tap k reads
// u[pos-k]. Only multiples of up hold input samples, so the contributing
// taps are k = pos mod up, pos mod up + up, ... in ascending order; each
// reads input frame (pos-k)/up, which decreases as k grows.
func convolve[T sample](in []T, frames, channels, ch int, taps []float64, up, down, m int) float64 {
	pos := m * down

	var sum float64
	for k := pos % up; k < len(taps); k += up {
		j := (pos - k) / up
		if j < 0 {
			break
		}

		if j >= frames {
			continue
		}

		sum += taps[k] * float64(in[j*channels+ch])
	}

	return sum
}

// spanFrames is the number of output frames one worker task covers.
const spanFrames = 4096

type span struct {
	ch       int
	from, to int
}

// forEachSpan calls fn for every (channel, block) of the output. With one
// worker it runs inline; otherwise blocks are fanned out to c.workers
// goroutines. Blocks never overlap, so fn may write its part of a shared
// output buffer without locking.
func (c *Converter) forEachSpan(outFrames int, fn func(span)) {
	if outFrames == 0 {
		return
	}

	if c.workers <= 1 {
		for ch := range c.channels {
			fn(span{ch: ch, from: 0, to: outFrames})
		}

		return
	}

	blocks := (outFrames + spanFrames - 1) / spanFrames
	workers := min(c.workers, blocks*c.channels)

	spans := make(chan span)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for s := range spans {
				fn(s)
			}
		}()
	}

	for ch := range c.channels {
		for from := 0; from < outFrames; from += spanFrames {
			spans <- span{ch: ch, from: from, to: min(from+spanFrames, outFrames)}
		}
	}

	close(spans)
	wg.Wait()
}
