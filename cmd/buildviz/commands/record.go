package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/buildviz/internal/app"
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newRecordCmd() *cobra.Command {
	var events, output string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a build from a stream of lifecycle notifications",
		Long: "Reads newline-delimited JSON lifecycle notifications and keeps a snapshot of the\n" +
			"build up to date after every change. The snapshot path comes from --output, the\n" +
			"settings file, or the first project property naming it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in io.Reader = cmd.InOrStdin()
			if events != "-" {
				f, err := os.Open(events)
				if err != nil {
					return zerr.With(zerr.Wrap(err, domain.ErrEventStreamFailed.Error()), "path", events)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			return c.app.Record(cmd.Context(), in, app.RecordOptions{
				ConfigPath: c.configPath,
				Output:     output,
			})
		},
	}

	cmd.Flags().StringVarP(&events, "events", "e", "-", "Notification stream to read, - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Snapshot file to write")

	return cmd
}
