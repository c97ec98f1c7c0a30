package commands

import (
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-rateconv/internal/config"
)

// filterFlags are the filter design flags shared by convert, design and windows.
type filterFlags struct {
	rate       int
	length     int
	up, down   int
	window     string
	kaiserBeta float64
	normalize  bool
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&f.rate, "rate", "r", 8000, "output sample rate in Hz")
	fs.IntVar(&f.length, "length", 1025, "filter length in taps (odd)")
	fs.IntVar(&f.up, "up", 0, "upsampling factor L (overrides --rate together with --down)")
	fs.IntVar(&f.down, "down", 0, "downsampling factor M")
	fs.StringVar(&f.window, "window", "hamming", "window taper: hamming, hann, blackman, kaiser, rectangular")
	fs.Float64Var(&f.kaiserBeta, "kaiser-beta", 8.6, "Kaiser window beta")
	fs.BoolVar(&f.normalize, "normalize", false, "scale taps for unity passband gain")
}

// apply copies the flags the user set onto j.
func (f *filterFlags) apply(fs *pflag.FlagSet, j *config.Job) {
	if fs.Changed("rate") {
		j.OutputRate = f.rate
	}

	if fs.Changed("length") {
		j.Filter.Length = f.length
	}

	if fs.Changed("up") {
		j.Filter.Up = f.up
	}

	if fs.Changed("down") {
		j.Filter.Down = f.down
	}

	if fs.Changed("window") {
		j.Filter.Window = f.window
	}

	if fs.Changed("kaiser-beta") {
		j.Filter.KaiserBeta = f.kaiserBeta
	}

	if fs.Changed("normalize") {
		j.Filter.Normalize = f.normalize
	}
}
