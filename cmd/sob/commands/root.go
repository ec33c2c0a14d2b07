// Package commands implements the CLI commands for the sob build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/sob/internal/app"
	"go.trai.ch/sob/internal/build"
)

// CLI represents the command line interface for sob.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	jsonLog func(enable bool)
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, targetNames []string, opts app.BuildOptions) error
	Plan(ctx context.Context, targetNames []string) error
	Check(ctx context.Context) error
	Graph(ctx context.Context, targetNames []string) error
	Status(ctx context.Context, targetNames []string) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	Watch(ctx context.Context, targetNames []string, opts app.WatchOptions) error
}

// Option configures a CLI.
type Option func(*CLI)

// WithJSONLogs registers the function called with the value of --json-logs before any command runs.
func WithJSONLogs(fn func(enable bool)) Option {
	return func(c *CLI) {
		c.jsonLog = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "sob",
		Short:         "A dependency-driven build orchestrator for native code",
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

	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.jsonLog == nil {
			return
		}
		enable, _ := cmd.Flags().GetBool("json-logs")
		c.jsonLog(enable)
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
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
