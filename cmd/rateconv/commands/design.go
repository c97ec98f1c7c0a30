package commands

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rateconv/dsp/core"
	"github.com/cwbudde/algo-rateconv/dsp/resample"
	"github.com/cwbudde/algo-rateconv/internal/convert"
)

// responseFFTSize is the FFT length used for the response report.
const responseFFTSize = 1 << 18

type designOptions struct {
	filter filterFlags

	inRate   int
	output   string
	exact    bool
	response bool
	freqs    []float64
}

func newDesignCommand(g *globals) *cobra.Command {
	var o designOptions

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Design the anti-aliasing filter and dump its taps",
		Long: `Design the windowed-sinc filter for a conversion and write its taps,
one value per line with 15 decimals. Use -o - to print them. With --exact
each value is written in its shortest round-trip form instead, so that a
--taps file reproduces the filter bit for bit.

With --response a frequency response report is printed instead of the
taps going to stdout: per-phase gain in dB at the given frequencies of the
input signal, the -3 and -6 dB points and the group delay.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := g.loadJob()
			if err != nil {
				return err
			}

			o.filter.apply(cmd.Flags(), &job)

			if err := job.Filter.Validate(); err != nil {
				return err
			}

			c, err := convert.Build(job, o.inRate, 1)
			if err != nil {
				return err
			}

			taps := c.Taps()
			up, down := c.Ratio()
			g.logger.Debug("designed filter", "taps", taps.Len(), "up", up, "down", down)

			out := cmd.OutOrStdout()

			write, save := taps.WriteText, taps.SaveText
			if o.exact {
				write, save = taps.WriteTextExact, taps.SaveTextExact
			}

			switch o.output {
			case "-":
				if !o.response {
					return write(out)
				}
			case "":
			default:
				if err := save(o.output); err != nil {
					return err
				}

				g.logger.Info("wrote filter coefficients", "path", o.output, "taps", taps.Len())
			}

			if o.response {
				return printResponse(out, c, float64(o.inRate), o.freqs)
			}

			return nil
		},
	}

	fs := cmd.Flags()
	o.filter.register(fs)
	fs.IntVar(&o.inRate, "in-rate", 44100, "input sample rate in Hz")
	fs.StringVarP(&o.output, "output", "o", "filter_coeffs.txt", `coefficient file ("-" for stdout, "" for none)`)
	fs.BoolVar(&o.exact, "exact", false, "write shortest round-trip values instead of 15 decimals")
	fs.BoolVar(&o.response, "response", false, "print the frequency response report")
	fs.Float64SliceVar(&o.freqs, "freq", []float64{1000, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 20000},
		"report frequencies in Hz")

	return cmd
}

func printResponse(w io.Writer, c *resample.Converter, inRate float64, freqs []float64) error {
	taps := c.Taps()
	up, down := c.Ratio()
	filterRate := inRate * float64(up)

	spec, err := taps.MagnitudeResponse(responseFFTSize, filterRate)
	if err != nil {
		return err
	}

	gd, err := taps.GroupDelay(responseFFTSize, 8)
	if err != nil {
		return err
	}

	gains := taps.PhaseGains(up)
	minGain, maxGain := math.Inf(1), math.Inf(-1)
	for _, v := range gains {
		minGain = min(minGain, v)
		maxGain = max(maxGain, v)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Taps\t%d\n", taps.Len())
	fmt.Fprintf(tw, "Ratio\t%d/%d (%.0f Hz -> %.6g Hz)\n", up, down, inRate, inRate*float64(up)/float64(down))
	fmt.Fprintf(tw, "Filter rate\t%.0f Hz\n", filterRate)
	fmt.Fprintf(tw, "Phase gain\t%.4f .. %.4f\n", minGain, maxGain)
	fmt.Fprintf(tw, "-3 dB\t%.0f Hz\n", spec.FrequencyBelow(-3))
	fmt.Fprintf(tw, "-6 dB\t%.0f Hz\n", spec.FrequencyBelow(-6))
	fmt.Fprintf(tw, "Group delay\t%.2f taps (%.3f output frames)\n", gd[0], c.Latency())
	fmt.Fprintf(tw, "\nFrequency [Hz]\tGain\tGain [dB]\n")

	for _, f := range freqs {
		if f < 0 || f > filterRate/2 {
			continue
		}

		g := taps.PassbandGain(f, inRate, up)
		fmt.Fprintf(tw, "%.0f\t%.6f\t%.2f\n", f, g, core.LinearToDB(g))
	}

	return tw.Flush()
}
