// Package commands implements the CLI commands for buildviz.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/buildviz/internal/app"
	"go.trai.ch/buildviz/internal/build"
	"go.trai.ch/buildviz/internal/core/ports"
)

// CLI represents the command line interface for buildviz.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command

	configPath string
	logJSON    bool
}

// Application represents the application logic interface.
type Application interface {
	Record(ctx context.Context, r io.Reader, opts app.RecordOptions) error
	Render(ctx context.Context, opts app.RenderOptions) error
	Watch(ctx context.Context, opts app.RenderOptions) error
}

// jsonSwitcher is implemented by loggers that can emit JSON.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "buildviz",
		Short:         "Record build lifecycles and render them as Graphviz graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Settings file (default: nearest buildviz.yaml)")
	rootCmd.PersistentFlags().BoolVar(&c.logJSON, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		if s, ok := c.logger.(jsonSwitcher); ok && c.logJSON {
			s.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newRecordCmd())
	rootCmd.AddCommand(c.newRenderCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the stream read by "record --events -". Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}
