package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sob/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [targets...]",
		Short: "Build targets and their dependencies",
		Long:  "Build the given targets, or the default target of sob.yaml when none is given.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			trace, _ := cmd.Flags().GetBool("trace")
			noRecord, _ := cmd.Flags().GetBool("no-record")
			tui, _ := cmd.Flags().GetBool("tui")

			return c.app.Build(cmd.Context(), args, app.BuildOptions{
				Jobs:     jobs,
				Trace:    trace,
				NoRecord: noRecord,
				TUI:      tui,
			})
		},
	}
	cmd.Flags().IntP("jobs", "j", 1, "Number of commands to run at once")
	cmd.Flags().Bool("trace", false, "Print the frame stack of the first failure")
	cmd.Flags().Bool("no-record", false, "Do not persist build records")
	cmd.Flags().Bool("tui", false, "Show an interactive progress view")
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [targets...]",
		Short: "Rebuild targets whenever project files change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			return c.app.Watch(cmd.Context(), args, app.WatchOptions{Jobs: jobs})
		},
	}
	cmd.Flags().IntP("jobs", "j", 1, "Number of commands to run at once")
	return cmd
}
