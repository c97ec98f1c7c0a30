package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rateconv/dsp/core"
	"github.com/cwbudde/algo-rateconv/dsp/spectrum"
	"github.com/cwbudde/algo-rateconv/internal/wavio"
)

type analyzeOptions struct {
	tones []float64
	skip  float64
}

func newAnalyzeCommand(g *globals) *cobra.Command {
	var o analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <file.wav>",
		Short: "Measure tone levels per channel of a WAV file",
		Long: `Measure the amplitude of one or more tones in every channel of a WAV
file with the Goertzel algorithm. Run it on the input and the output of a
conversion to see the passband gain and the leftover of stopband tones.

--skip trims that many seconds from both ends to leave out filter
transients.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clip, err := wavio.ReadFile(args[0])
			if err != nil {
				return err
			}

			g.logger.Debug("read input", "path", args[0], "rate", clip.SampleRate,
				"channels", clip.Channels, "frames", clip.Frames())

			skip := int(o.skip * float64(clip.SampleRate))
			frames := clip.Frames()
			if skip < 0 || 2*skip >= frames {
				skip = 0
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "File\t%s (%d Hz, %d ch, %.3f s)\n", args[0], clip.SampleRate, clip.Channels, clip.Duration())
			fmt.Fprintf(tw, "Channel\tFrequency [Hz]\tAmplitude\tLevel [dBFS]\n")

			var x []float64
			for ch := range clip.Channels {
				x = core.Deinterleave(x, clip.Samples, clip.Channels, ch)
				block := x[skip : frames-skip]

				tones, err := spectrum.MeasureTones(block, o.tones, float64(clip.SampleRate))
				if err != nil {
					return err
				}

				for _, tone := range tones {
					fmt.Fprintf(tw, "%d\t%.1f\t%.2f\t%.2f\n", ch, tone.Frequency, tone.Amplitude, tone.DBFS)
				}
			}

			return tw.Flush()
		},
	}

	fs := cmd.Flags()
	fs.Float64SliceVarP(&o.tones, "tone", "t", []float64{1000}, "tone frequencies in Hz")
	fs.Float64Var(&o.skip, "skip", 0.05, "seconds trimmed from both ends")

	return cmd
}
