package cmd

import (
	"errors"
	"fmt"

	"github.com/dendrascience/datagz/prep"
	"github.com/spf13/cobra"
)

// ErrVerifyFailed is returned when the data directory does not match its
// artifacts.
var ErrVerifyFailed = errors.New("data directory is out of date")

// NewVerifyCmd creates and returns the verify subcommand for the datagz CLI.
func NewVerifyCmd(flags *sharedFlags) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check .hash and .gz artifacts against the data directory",
		Long: `Check that the data directory matches what the last run produced.

This recomputes the digest and compares it with .hash, checks that every
eligible file has a .gz artifact that is not older than the file itself, and
reports artifacts whose source file is gone. Exits non-zero on any problem.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.settings(cmd)
			if err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Verifying %s (hash: %t, algorithm: %s)\n",
					s.Options.Dir, s.Options.EnableHash, s.Options.HashAlgo)
			}
			report, err := prep.Verify(s.Options, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("%w: %d problems", ErrVerifyFailed, len(report.Problems()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}
