package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rateconv/dsp/window"
	"github.com/cwbudde/algo-rateconv/internal/convert"
)

// windowTypes lists the tapers the designer supports, in report order.
var windowTypes = []window.Type{
	window.TypeHamming,
	window.TypeHann,
	window.TypeBlackman,
	window.TypeKaiser,
	window.TypeRectangular,
}

type windowsOptions struct {
	filter filterFlags
	inRate int
}

func newWindowsCommand(g *globals) *cobra.Command {
	var o windowsOptions

	cmd := &cobra.Command{
		Use:   "windows [name ...]",
		Short: "Compare window tapers for a conversion",
		Long: `Design the conversion filter once per window taper and compare the
results: the taper's nominal sidelobe level, the measured -6 dB point and
the gain at the output Nyquist frequency and at 1.5x the output rate.

Without arguments every supported window is listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := g.loadJob()
			if err != nil {
				return err
			}

			o.filter.apply(cmd.Flags(), &job)

			types := windowTypes
			if len(args) > 0 {
				types = types[:0:0]
				for _, name := range args {
					t, err := window.ParseType(name)
					if err != nil {
						return err
					}

					types = append(types, t)
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Window\tSidelobe [dB]\t-6 dB [Hz]\tNyquist [dB]\t1.5x rate [dB]\n")

			for _, t := range types {
				job.Filter.Window = t.String()

				c, err := convert.Build(job, o.inRate, 1)
				if err != nil {
					return err
				}

				up, down := c.Ratio()
				taps := c.Taps()
				filterRate := float64(o.inRate * up)
				outRate := float64(o.inRate*up) / float64(down)

				spec, err := taps.MagnitudeResponse(responseFFTSize, filterRate)
				if err != nil {
					return err
				}

				g.logger.Debug("designed filter", "window", t, "taps", taps.Len())

				ref := taps.MagnitudeDB(0, filterRate)
				fmt.Fprintf(tw, "%s\t%.1f\t%.0f\t%.1f\t%.1f\n",
					t,
					window.Info(t).HighestSidelobe,
					spec.FrequencyBelow(-6),
					taps.MagnitudeDB(outRate/2, filterRate)-ref,
					taps.MagnitudeDB(1.5*outRate, filterRate)-ref,
				)
			}

			return tw.Flush()
		},
	}

	fs := cmd.Flags()
	o.filter.register(fs)
	fs.IntVar(&o.inRate, "in-rate", 44100, "input sample rate in Hz")

	return cmd
}
