package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rateconv/internal/config"
)

func newInitCommand(g *globals) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [job.yaml]",
		Short: "Write a job file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "rateconv.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			g.logger.Info("wrote job file", "path", path)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
