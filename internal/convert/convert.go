// Package convert runs conversion jobs: it reads WAV input, builds the
// converter for the input's rate, writes the converted WAV and dumps the
// filter taps.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cwbudde/algo-rateconv/dsp/filter/sinc"
	"github.com/cwbudde/algo-rateconv/dsp/resample"
	"github.com/cwbudde/algo-rateconv/internal/config"
	"github.com/cwbudde/algo-rateconv/internal/wavio"
)

var (
	// ErrChannelMismatch indicates input whose channel count differs from the job's.
	ErrChannelMismatch = errors.New("convert: channel count mismatch")
	// ErrFractionalRate indicates a ratio that maps the input rate to a non-integer rate.
	ErrFractionalRate = errors.New("convert: output rate is not an integer")
	// ErrNoInput indicates a batch directory without WAV files.
	ErrNoInput = errors.New("convert: no .wav files found")
)

// defaultKaiserBeta is used when a job selects the Kaiser window without a beta.
const defaultKaiserBeta = 8.6

// Result describes one converted file.
type Result struct {
	Input, Output         string
	InputRate, OutputRate int
	Channels              int
	InputFrames           int
	OutputFrames          int
	Up, Down              int
	Taps                  int
	CoeffsPath            string
	Elapsed               time.Duration
}

type converterKey struct {
	rate, channels int
}

// Runner executes a job. It caches one converter per input rate and
// channel count, so a batch of equal-format files designs its filter once.
type Runner struct {
	job    config.Job
	engine EngineKind
	logger *slog.Logger

	converters map[converterKey]*resample.Converter
	dumped     map[[2]int]string
}

// NewRunner validates job and returns a runner for it. A nil logger
// discards log output.
func NewRunner(job config.Job, logger *slog.Logger) (*Runner, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	engine, err := ParseEngine(job.Engine)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Runner{
		job:        job,
		engine:     engine,
		logger:     logger,
		converters: make(map[converterKey]*resample.Converter),
		dumped:     make(map[[2]int]string),
	}, nil
}

// Run converts the job's input file, or every .wav file of its directory.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	if r.job.Dir == "" {
		res, err := r.File(ctx, r.job.Input, r.job.Output)
		if err != nil {
			return nil, err
		}

		return []Result{res}, nil
	}

	inputs, err := ListWAV(r.job.Dir)
	if err != nil {
		return nil, err
	}

	outDir := r.job.Output
	if outDir == "" {
		outDir = r.job.Dir
	} else if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("convert: create %s: %w", outDir, err)
	}

	if sameDir(outDir, r.job.Dir) && r.job.Filter.Up == 0 {
		inputs = r.skipOutputs(inputs)
		if len(inputs) == 0 {
			return nil, fmt.Errorf("%w in %s besides previous outputs", ErrNoInput, r.job.Dir)
		}
	}

	results := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := r.File(ctx, in, outDir)
		if err != nil {
			return results, err
		}

		results = append(results, res)
	}

	return results, nil
}

// File converts one WAV file. out may name the output file, a directory to
// place "<name>_<rate>.wav" in, or be empty for the input's directory.
func (r *Runner) File(ctx context.Context, in, out string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := time.Now()

	clip, err := wavio.ReadFile(in)
	if err != nil {
		return Result{}, err
	}

	if r.job.Channels > 0 && clip.Channels != r.job.Channels {
		return Result{}, fmt.Errorf("%w: %s has %d channels, want %d",
			ErrChannelMismatch, in, clip.Channels, r.job.Channels)
	}

	r.logger.Debug("read input", "path", in, "rate", clip.SampleRate,
		"channels", clip.Channels, "frames", clip.Frames())

	res := Result{
		Input:       in,
		InputRate:   clip.SampleRate,
		Channels:    clip.Channels,
		InputFrames: clip.Frames(),
	}

	engine, err := r.engineFor(clip.SampleRate, clip.Channels, &res)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", in, err)
	}

	samples, frames, err := engine.Convert(clip.Samples, clip.Frames())
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", in, err)
	}

	res.OutputFrames = frames
	res.Output = outputPath(in, out, res.OutputRate)

	if err := wavio.WriteFile(res.Output, wavio.Clip{
		SampleRate: res.OutputRate,
		Channels:   clip.Channels,
		Samples:    samples,
	}); err != nil {
		return Result{}, err
	}

	res.Elapsed = time.Since(start)

	r.logger.Info("converted", "input", in, "output", res.Output,
		"ratio", fmt.Sprintf("%d/%d", res.Up, res.Down),
		"frames_in", res.InputFrames, "frames_out", res.OutputFrames,
		"elapsed", res.Elapsed)

	return res, nil
}

func (r *Runner) engineFor(rate, channels int, res *Result) (Engine, error) {
	if r.engine == EngineSoxr {
		outRate, up, down, err := r.soxrRate(rate)
		if err != nil {
			return nil, err
		}

		res.OutputRate, res.Up, res.Down = outRate, up, down

		return soxrEngine{inRate: rate, outRate: outRate, channels: channels, rounding: r.job.RoundingMode()}, nil
	}

	c, err := r.Converter(rate, channels)
	if err != nil {
		return nil, err
	}

	res.Up, res.Down = c.Ratio()
	res.OutputRate = rate * res.Up / res.Down
	res.Taps = c.Taps().Len()

	path, err := r.dumpTaps(c)
	if err != nil {
		return nil, err
	}

	res.CoeffsPath = path

	if r.engine == EngineDirect {
		return newDirectEngine(c), nil
	}

	return c, nil
}

func (r *Runner) soxrRate(rate int) (outRate, up, down int, err error) {
	f := r.job.Filter
	if f.Up > 0 {
		up, down = f.Up, f.Down
	} else {
		up, down, err = resample.RatioForRates(float64(rate), float64(r.job.OutputRate), 0)
		if err != nil {
			return 0, 0, 0, err
		}
	}

	if rate*up%down != 0 {
		return 0, 0, 0, fmt.Errorf("%w: %d*%d/%d", ErrFractionalRate, rate, up, down)
	}

	return rate * up / down, up, down, nil
}

// Converter returns the polyphase converter the job uses for input at rate
// with the given channel count.
func (r *Runner) Converter(rate, channels int) (*resample.Converter, error) {
	key := converterKey{rate: rate, channels: channels}
	if c, ok := r.converters[key]; ok {
		return c, nil
	}

	c, err := Build(r.job, rate, channels)
	if err != nil {
		return nil, err
	}

	up, down := c.Ratio()
	r.logger.Debug("designed filter", "rate", rate, "up", up, "down", down,
		"taps", c.Taps().Len(), "window", r.job.Filter.WindowType())

	r.converters[key] = c

	return c, nil
}

// Build creates the polyphase converter described by job for input at
// rate. The ratio comes from the job's explicit up/down or from rate and
// the job's output rate; taps are designed or loaded from the job's taps
// file.
func Build(job config.Job, rate, channels int) (*resample.Converter, error) {
	f := job.Filter

	opts := []resample.Option{
		resample.WithChannels(channels),
		resample.WithRounding(job.RoundingMode()),
		resample.WithWorkers(job.Workers),
	}

	var (
		c   *resample.Converter
		err error
	)

	switch {
	case f.TapsPath != "":
		up, down := f.Up, f.Down
		if up == 0 {
			up, down, err = resample.RatioForRates(float64(rate), float64(job.OutputRate), 0)
			if err != nil {
				return nil, err
			}
		}

		var taps sinc.Taps

		taps, err = sinc.LoadText(f.TapsPath)
		if err != nil {
			return nil, err
		}

		c, err = resample.NewWithTaps(taps, up, down, opts...)
	case f.Up > 0:
		c, err = resample.New(Spec(f), opts...)
	default:
		opts = append(opts,
			resample.WithFilterLength(f.Length),
			resample.WithWindow(f.WindowType()),
			resample.WithKaiserBeta(kaiserBeta(f)),
		)
		if f.Normalize {
			opts = append(opts, resample.WithNormalize())
		}

		c, err = resample.NewForRates(float64(rate), float64(job.OutputRate), opts...)
	}

	if err != nil {
		return nil, err
	}

	up, down := c.Ratio()
	if rate*up%down != 0 {
		return nil, fmt.Errorf("%w: %d*%d/%d", ErrFractionalRate, rate, up, down)
	}

	return c, nil
}

// Spec returns the filter design for an explicit up/down job.
func Spec(f config.Filter) sinc.Spec {
	return sinc.Spec{
		Length:     f.Length,
		Up:         f.Up,
		Down:       f.Down,
		Window:     f.WindowType(),
		KaiserBeta: kaiserBeta(f),
		Normalize:  f.Normalize,
	}
}

func kaiserBeta(f config.Filter) float64 {
	if f.KaiserBeta > 0 {
		return f.KaiserBeta
	}

	return defaultKaiserBeta
}

// dumpTaps writes the taps once per ratio. Batch jobs suffix the path with
// the ratio so that differently rated inputs do not overwrite each other.
func (r *Runner) dumpTaps(c *resample.Converter) (string, error) {
	if r.job.CoeffsPath == "" {
		return "", nil
	}

	up, down := c.Ratio()
	if path, ok := r.dumped[[2]int{up, down}]; ok {
		return path, nil
	}

	path := r.job.CoeffsPath
	if r.job.Dir != "" {
		ext := filepath.Ext(path)
		path = fmt.Sprintf("%s_%d-%d%s", strings.TrimSuffix(path, ext), up, down, ext)
	}

	if err := c.Taps().SaveText(path); err != nil {
		return "", err
	}

	r.dumped[[2]int{up, down}] = path
	r.logger.Info("wrote filter coefficients", "path", path, "taps", c.Taps().Len())

	return path, nil
}

// OutputName returns "<name>_<rate>.wav" for input.
func OutputName(input string, rate int) string {
	base := filepath.Base(input)
	return fmt.Sprintf("%s_%d.wav", strings.TrimSuffix(base, filepath.Ext(base)), rate)
}

func outputPath(in, out string, rate int) string {
	if out == "" {
		return filepath.Join(filepath.Dir(in), OutputName(in, rate))
	}

	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, OutputName(in, rate))
	}

	return out
}

// skipOutputs drops files named like the outputs of this job, so that
// converting a directory in place twice does not convert its own results.
func (r *Runner) skipOutputs(inputs []string) []string {
	suffix := fmt.Sprintf("_%d.wav", r.job.OutputRate)

	kept := inputs[:0:0]
	for _, in := range inputs {
		if strings.HasSuffix(strings.ToLower(filepath.Base(in)), suffix) {
			r.logger.Debug("skipping previous output", "path", in)
			continue
		}

		kept = append(kept, in)
	}

	return kept
}

func sameDir(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// ListWAV returns the .wav files of dir in name order. Subdirectories are
// not searched.
func ListWAV(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("convert: list %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}

		files = append(files, filepath.Join(dir, e.Name()))
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInput, dir)
	}

	return files, nil
}
