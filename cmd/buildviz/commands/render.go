package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.trai.ch/buildviz/internal/app"
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newRenderCmd() *cobra.Command {
	var (
		output string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "render SNAPSHOT",
		Short: "Render a recorded build as a Graphviz DOT graph",
		Args:  snapshotArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.RenderOptions{
				ConfigPath: c.configPath,
				Snapshot:   args[0],
				Output:     output,
				Stdout:     cmd.OutOrStdout(),
			}
			if watch {
				return c.app.Watch(cmd.Context(), opts)
			}
			return c.app.Render(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "DOT file to write (default: stdout)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Render again whenever the snapshot changes")

	return cmd
}

// snapshotArg requires exactly one snapshot path. A missing or extra path is
// reported as invalid snapshot input.
func snapshotArg(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		return nil
	}
	return errors.Join(domain.ErrInvalidSnapshot,
		zerr.With(zerr.New("render takes exactly one snapshot file"), "args", len(args)))
}
