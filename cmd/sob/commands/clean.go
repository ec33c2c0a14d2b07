package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sob/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts and records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, _ := cmd.Flags().GetBool("records")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{}

			switch {
			case all:
				opts.Artifacts = true
				opts.Records = true
			case records:
				opts.Records = true
			default:
				// Default behavior: clean build artifacts
				opts.Artifacts = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("records", "r", false, "Clean the build record store only")
	cmd.Flags().BoolP("all", "a", false, "Clean artifacts and build records")

	return cmd
}
