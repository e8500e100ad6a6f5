package cmd

import (
	"errors"
	"log"

	"github.com/dendrascience/datagz/prep"
	"github.com/dendrascience/datagz/util"
	"github.com/spf13/cobra"
)

// NewRunCmd creates and returns the run subcommand for the datagz CLI.
// It is the same operation the root command performs.
func NewRunCmd(flags *sharedFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Hash and gzip every file in the data directory",
		Long: `Hash and gzip every file directly inside the data directory.

The directory digest is written to .hash first (unless --no-hash), then each
eligible file is compressed into <name>.gz, replacing any previous artifact.
Existing .gz files and the .hash sentinel are never compressed again.

A missing data directory is reported but does not fail the run unless
--strict is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrep(cmd, flags, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making changes")

	return cmd
}

func runPrep(cmd *cobra.Command, flags *sharedFlags, dryRun bool) error {
	s, err := flags.settings(cmd)
	if err != nil {
		return err
	}
	opts := s.Options
	opts.DryRun = dryRun

	_, err = prep.Run(opts, cmd.OutOrStdout())
	if errors.Is(err, util.ErrDataDirMissing) && !s.Strict {
		log.Printf("skipping pre-build step: %v", err)
		return nil
	}
	return err
}
