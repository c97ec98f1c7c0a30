package resample

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/cwbudde/algo-rateconv/dsp/core"
	"github.com/cwbudde/algo-rateconv/dsp/filter/sinc"
	"github.com/cwbudde/algo-rateconv/dsp/window"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
	// ErrInvalidChannels indicates a channel count below one.
	ErrInvalidChannels = errors.New("resample: channel count must be >= 1")
	// ErrEmptyTaps indicates a converter without filter taps.
	ErrEmptyTaps = errors.New("resample: filter has no taps")
	// ErrInvalidFrames indicates a negative frame count.
	ErrInvalidFrames = errors.New("resample: frame count must be >= 0")
	// ErrShortInput indicates a buffer holding fewer samples than frames*channels.
	ErrShortInput = errors.New("resample: input shorter than frame count")
)

// DefaultFilterLength is the tap count NewForRates designs when no
// WithFilterLength option is given.
const DefaultFilterLength = 1025

type config struct {
	channels int
	rounding core.Rounding
	workers  int

	filterLength int
	window       window.Type
	kaiserBeta   float64
	normalize    bool
	maxDen       int
}

// Option configures the converter.
type Option func(*config)

// WithChannels sets the number of interleaved channels. The default is 2.
func WithChannels(n int) Option {
	return func(cfg *config) {
		cfg.channels = n
	}
}

// WithRounding selects how accumulated sums are narrowed to int16.
func WithRounding(r core.Rounding) Option {
	return func(cfg *config) {
		cfg.rounding = r
	}
}

// WithWorkers spreads channels and output blocks across n goroutines.
// n <= 0 uses GOMAXPROCS. The default is 1; the output does not depend on n.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		cfg.workers = n
	}
}

// WithFilterLength sets the tap count designed by NewForRates. Even values
// are rounded up to the next odd length.
func WithFilterLength(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.filterLength = n | 1
		}
	}
}

// WithWindow selects the taper designed by NewForRates.
func WithWindow(t window.Type) Option {
	return func(cfg *config) {
		cfg.window = t
	}
}

// WithKaiserBeta sets the Kaiser beta used with window.TypeKaiser by NewForRates.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta >= 0 {
			cfg.kaiserBeta = beta
		}
	}
}

// WithNormalize makes NewForRates design taps with unity DC gain.
func WithNormalize() Option {
	return func(cfg *config) {
		cfg.normalize = true
	}
}

// WithMaxDenominator caps denominator size for rate-ratio approximation.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func defaultConfig() config {
	return config{
		channels:     2,
		rounding:     core.RoundTruncate,
		workers:      1,
		filterLength: DefaultFilterLength,
		window:       window.TypeHamming,
		kaiserBeta:   8.6,
		maxDen:       4096,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Converter performs rational L/M sample-rate conversion of interleaved
// int16 buffers. A Converter holds only read-only state and is safe for
// concurrent use.
type Converter struct {
	up   int
	down int

	taps     sinc.Taps
	channels int
	rounding core.Rounding
	workers  int
}

// New designs the filter described by spec and returns a converter for
// spec.Up/spec.Down.
func New(spec sinc.Spec, opts ...Option) (*Converter, error) {
	taps, err := sinc.Design(spec)
	if err != nil {
		return nil, err
	}

	return newConverter(taps, spec.Up, spec.Down, applyOptions(opts))
}

// NewWithTaps returns a converter that applies precomputed taps. The taps are
// copied; they need not come from sinc.Design.
func NewWithTaps(taps []float64, up, down int, opts ...Option) (*Converter, error) {
	return newConverter(sinc.Taps(taps).Clone(), up, down, applyOptions(opts))
}

// NewForRates creates a converter for inRate -> outRate. Integral rates are
// reduced exactly (44100 -> 8000 gives 80/441); others are approximated by
// continued fractions. The cutoff is pi/max(L, M) so that upsampling
// suppresses images and downsampling suppresses aliases.
func NewForRates(inRate, outRate float64, opts ...Option) (*Converter, error) {
	cfg := applyOptions(opts)

	up, down, err := RatioForRates(inRate, outRate, cfg.maxDen)
	if err != nil {
		return nil, err
	}

	spec := sinc.Spec{
		Length:     cfg.filterLength,
		Up:         up,
		Down:       down,
		Window:     cfg.window,
		KaiserBeta: cfg.kaiserBeta,
		Normalize:  cfg.normalize,
	}
	if up > down {
		spec.Cutoff = math.Pi / float64(up)
	}

	taps, err := sinc.Design(spec)
	if err != nil {
		return nil, err
	}

	return newConverter(taps, up, down, cfg)
}

func newConverter(taps sinc.Taps, up, down int, cfg config) (*Converter, error) {
	if up <= 0 || down <= 0 {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidRatio, up, down)
	}

	if len(taps) == 0 {
		return nil, ErrEmptyTaps
	}

	if cfg.channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, cfg.channels)
	}

	return &Converter{
		up:       up,
		down:     down,
		taps:     taps,
		channels: cfg.channels,
		rounding: cfg.rounding,
		workers:  max(1, cfg.workers),
	}, nil
}

// Resample converts frames of interleaved input with the given taps and
// ratio as a one-shot helper.
func Resample(in []int16, frames int, taps []float64, up, down int, opts ...Option) ([]int16, int, error) {
	c, err := NewWithTaps(taps, up, down, opts...)
	if err != nil {
		return nil, 0, err
	}

	return c.Convert(in, frames)
}

// OutputFrames returns floor(frames*L/M), the number of frames Convert
// produces for frames input frames.
func (c *Converter) OutputFrames(frames int) int {
	if frames <= 0 {
		return 0
	}

	return frames * c.up / c.down
}

// Convert resamples the first frames frames of the interleaved buffer in and
// returns a newly allocated interleaved buffer with its frame count. in is
// only read. Either the complete output is returned or an error.
func (c *Converter) Convert(in []int16, frames int) ([]int16, int, error) {
	if err := c.checkInput(len(in), frames); err != nil {
		return nil, 0, err
	}

	outFrames := c.OutputFrames(frames)
	out := make([]int16, outFrames*c.channels)

	c.forEachSpan(outFrames, func(s span) {
		for m := s.from; m < s.to; m++ {
			sum := convolve(in, frames, c.channels, s.ch, c.taps, c.up, c.down, m)
			out[m*c.channels+s.ch] = core.QuantizeInt16(sum, c.rounding)
		}
	})

	return out, outFrames, nil
}

// ConvertFloat is Convert without quantization: it returns the raw float64
// accumulator of every output sample.
func (c *Converter) ConvertFloat(in []float64, frames int) ([]float64, int, error) {
	if err := c.checkInput(len(in), frames); err != nil {
		return nil, 0, err
	}

	outFrames := c.OutputFrames(frames)
	out := make([]float64, outFrames*c.channels)

	c.forEachSpan(outFrames, func(s span) {
		for m := s.from; m < s.to; m++ {
			out[m*c.channels+s.ch] = convolve(in, frames, c.channels, s.ch, c.taps, c.up, c.down, m)
		}
	})

	return out, outFrames, nil
}

func (c *Converter) checkInput(n, frames int) error {
	if frames < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrames, frames)
	}

	if n < frames*c.channels {
		return fmt.Errorf("%w: %d samples for %d frames of %d channels",
			ErrShortInput, n, frames, c.channels)
	}

	return nil
}

// Ratio returns the up/down conversion factors.
func (c *Converter) Ratio() (up, down int) {
	return c.up, c.down
}

// Channels returns the interleaved channel count.
func (c *Converter) Channels() int {
	return c.channels
}

// Rounding returns the quantization mode.
func (c *Converter) Rounding() core.Rounding {
	return c.rounding
}

// Taps returns a copy of the filter taps.
func (c *Converter) Taps() sinc.Taps {
	return c.taps.Clone()
}

// Latency returns the filter's group delay in output frames: the center tap
// offset measured on the upsampled timeline, divided by M.
func (c *Converter) Latency() float64 {
	return float64(c.taps.Center()) / float64(c.down)
}
