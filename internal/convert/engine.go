package convert

import (
	"errors"
	"fmt"
	"strings"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/cwbudde/algo-rateconv/dsp/core"
	"github.com/cwbudde/algo-rateconv/dsp/filter/fir"
	"github.com/cwbudde/algo-rateconv/dsp/resample"
)

// Engine converts interleaved int16 frames.
type Engine interface {
	Convert(in []int16, frames int) ([]int16, int, error)
}

// EngineKind selects the conversion backend.
type EngineKind int

const (
	// EnginePolyphase is the windowed-sinc L/M converter of dsp/resample.
	EnginePolyphase EngineKind = iota
	// EngineSoxr is the multi-stage soxr-style resampler, kept for A/B checks.
	EngineSoxr
	// EngineDirect zero-stuffs, filters and decimates literally with the
	// same taps as EnginePolyphase. It is L times slower.
	EngineDirect
)

// ErrUnknownEngine indicates an engine name that ParseEngine does not know.
var ErrUnknownEngine = errors.New("convert: unknown engine")

func (k EngineKind) String() string {
	switch k {
	case EnginePolyphase:
		return "polyphase"
	case EngineSoxr:
		return "soxr"
	case EngineDirect:
		return "direct"
	default:
		return fmt.Sprintf("engine(%d)", int(k))
	}
}

// ParseEngine parses an engine name; the empty string selects polyphase.
func ParseEngine(s string) (EngineKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "polyphase":
		return EnginePolyphase, nil
	case "soxr":
		return EngineSoxr, nil
	case "direct":
		return EngineDirect, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEngine, s)
	}
}

// directEngine runs every channel through fir.Filter.UpFirDn. Its output
// has the polyphase engine's length and, up to float rounding, its samples.
type directEngine struct {
	filter   *fir.Filter
	up, down int
	channels int
	rounding core.Rounding
}

func newDirectEngine(c *resample.Converter) *directEngine {
	up, down := c.Ratio()

	return &directEngine{
		filter:   fir.New(c.Taps()),
		up:       up,
		down:     down,
		channels: c.Channels(),
		rounding: c.Rounding(),
	}
}

func (e *directEngine) Convert(in []int16, frames int) ([]int16, int, error) {
	if frames < 0 || len(in) < frames*e.channels {
		return nil, 0, fmt.Errorf("convert: direct: %d samples for %d frames", len(in), frames)
	}

	n := frames * e.up / e.down
	out := make([]int16, n*e.channels)

	var x []float64
	for ch := range e.channels {
		x = core.Deinterleave(x, in[:frames*e.channels], e.channels, ch)

		for i, v := range e.filter.UpFirDn(x, e.up, e.down) {
			out[i*e.channels+ch] = core.QuantizeInt16(v, e.rounding)
		}
	}

	return out, n, nil
}

// soxrEngine adapts the soxr-style resampler to Engine. Each channel runs
// through its own mono resampler, flushed at the end. The output length
// follows the library's own latency handling rather than floor(n*L/M).
type soxrEngine struct {
	inRate, outRate int
	channels        int
	rounding        core.Rounding
}

func (e soxrEngine) Convert(in []int16, frames int) ([]int16, int, error) {
	if e.channels < 1 || frames < 0 || len(in) < frames*e.channels {
		return nil, 0, fmt.Errorf("convert: soxr: %d samples for %d frames", len(in), frames)
	}

	in = in[:frames*e.channels]

	var (
		x     []float64
		chans = make([][]float64, e.channels)
	)

	for ch := range e.channels {
		x = core.Deinterleave(x, in, e.channels, ch)

		y, err := e.convertChannel(x)
		if err != nil {
			return nil, 0, fmt.Errorf("convert: soxr: channel %d: %w", ch, err)
		}

		chans[ch] = y
	}

	n := len(chans[0])
	for _, y := range chans[1:] {
		n = min(n, len(y))
	}

	out := make([]int16, n*e.channels)
	for ch, y := range chans {
		for i := range n {
			out[i*e.channels+ch] = core.QuantizeInt16(y[i]*32768, e.rounding)
		}
	}

	return out, n, nil
}

// convertChannel resamples one channel given in int16 units and returns it
// scaled to [-1, 1).
func (e soxrEngine) convertChannel(x []float64) ([]float64, error) {
	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(e.inRate),
		OutputRate: float64(e.outRate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, err
	}

	scaled := make([]float64, len(x))
	for i, v := range x {
		scaled[i] = v / 32768
	}

	y, err := r.Process(scaled)
	if err != nil {
		return nil, err
	}

	// Process may hand out an internal buffer that Flush reuses.
	out := append([]float64(nil), y...)

	tail, err := r.Flush()
	if err != nil {
		return nil, err
	}

	return append(out, tail...), nil
}
