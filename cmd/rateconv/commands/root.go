package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rateconv/internal/config"
)

// globals holds the persistent flags and the logger built from them.
type globals struct {
	verbose  bool
	cfgFile  string
	envFiles []string

	logger *slog.Logger
}

// NewRootCommand builds the command tree. Each call returns an independent
// tree with fresh flag state.
func NewRootCommand() *cobra.Command {
	g := &globals{logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:   "rateconv",
		Short: "Rational L/M sample-rate converter for 16-bit PCM WAV",
		Long: `rateconv - windowed-sinc sample-rate conversion for 16-bit PCM audio.

The input is upsampled by L, low-pass filtered and downsampled by M in a
single polyphase pass. By default a 1025-tap Hamming-windowed sinc
converts to 8 kHz, which for 44.1 kHz input is L/M = 80/441.

Settings are resolved in this order, later wins:
  defaults < job file (--config) < RATECONV_* environment < flags

Examples:
  rateconv convert input.wav
  rateconv convert --dir ./music --rate 16000 -o ./out
  rateconv design --response
  rateconv analyze input_8000.wav --tone 1000`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			g.logger = newLogger(cmd.ErrOrStderr(), g.verbose)
			return config.LoadDotEnv(g.envFiles...)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")
	pf.StringVarP(&g.cfgFile, "config", "c", "", "job file (YAML)")
	pf.StringSliceVar(&g.envFiles, "env-file", nil, "dotenv files with RATECONV_* settings (default .env)")

	root.AddCommand(
		newConvertCommand(g),
		newDesignCommand(g),
		newAnalyzeCommand(g),
		newWindowsCommand(g),
		newInitCommand(g),
		newVersionCommand(g),
	)

	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadJob resolves the job settings from defaults, the job file and the
// environment. Flags are applied by the caller.
func (g *globals) loadJob() (config.Job, error) {
	j := config.Default()

	if g.cfgFile != "" {
		var err error

		j, err = config.Load(g.cfgFile)
		if err != nil {
			return config.Job{}, err
		}

		g.logger.Debug("loaded job file", "path", g.cfgFile)
	}

	if err := j.ApplyEnv(); err != nil {
		return config.Job{}, err
	}

	return j, nil
}
