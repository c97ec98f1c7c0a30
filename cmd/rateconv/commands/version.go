package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rateconv/cmd/rateconv/internal/build"
)

func newVersionCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, build.String())

			if g.verbose {
				fmt.Fprintf(out, "  go:     %s\n", runtime.Version())
			}
		},
	}
}
