package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rateconv/internal/convert"
)

type convertOptions struct {
	filter filterFlags

	output   string
	dir      string
	rounding string
	workers  int
	channels int
	coeffs   string
	tapsFile string
	engine   string
}

func newConvertCommand(g *globals) *cobra.Command {
	var o convertOptions

	cmd := &cobra.Command{
		Use:   "convert [input.wav]",
		Short: "Convert a WAV file or a directory of WAV files",
		Long: `Convert 16-bit PCM WAV audio to another sample rate.

The output is written next to the input as <name>_<rate>.wav unless -o
names a file or directory. The designed filter taps are dumped to
filter_coeffs.txt (--coeffs "" disables the dump).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := g.loadJob()
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			o.filter.apply(fs, &job)

			if len(args) == 1 {
				job.Input = args[0]
			}

			if fs.Changed("dir") {
				job.Dir = o.dir
			}

			if fs.Changed("output") {
				job.Output = o.output
			}

			if fs.Changed("rounding") {
				job.Rounding = o.rounding
			}

			if fs.Changed("workers") {
				job.Workers = o.workers
			}

			if fs.Changed("channels") {
				job.Channels = o.channels
			}

			if fs.Changed("coeffs") {
				job.CoeffsPath = o.coeffs
			}

			if fs.Changed("taps-file") {
				job.Filter.TapsPath = o.tapsFile
			}

			if fs.Changed("engine") {
				job.Engine = o.engine
			}

			runner, err := convert.NewRunner(job, g.logger)
			if err != nil {
				return err
			}

			results, err := runner.Run(cmd.Context())
			printResults(cmd, results)

			return err
		},
	}

	fs := cmd.Flags()
	o.filter.register(fs)
	fs.StringVarP(&o.output, "output", "o", "", "output file, or output directory with --dir")
	fs.StringVar(&o.dir, "dir", "", "convert every .wav file in this directory")
	fs.StringVar(&o.rounding, "rounding", "truncate", "int16 narrowing: truncate or nearest")
	fs.IntVarP(&o.workers, "workers", "j", 1, "conversion goroutines (0 = all CPUs)")
	fs.IntVar(&o.channels, "channels", 0, "required channel count (0 = any)")
	fs.StringVar(&o.coeffs, "coeffs", "filter_coeffs.txt", "coefficient dump path")
	fs.StringVar(&o.tapsFile, "taps-file", "", "load taps from a coefficient dump instead of designing them")
	fs.StringVar(&o.engine, "engine", "polyphase", "conversion engine: polyphase, direct or soxr")

	return cmd
}

func printResults(cmd *cobra.Command, results []convert.Result) {
	if len(results) == 0 {
		return
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Input\tOutput\tRate\tL/M\tFrames\tElapsed\n")

	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d -> %d\t%d/%d\t%d -> %d\t%s\n",
			r.Input, r.Output, r.InputRate, r.OutputRate, r.Up, r.Down,
			r.InputFrames, r.OutputFrames, r.Elapsed.Round(time.Millisecond))
	}

	_ = tw.Flush()
}
