package cmd

import (
	"github.com/dendrascience/datagz/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates and returns the version subcommand for the datagz CLI.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.Fprint(cmd.OutOrStdout(), "datagz")
		},
	}
}
