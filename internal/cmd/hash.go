package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dendrascience/datagz/util"
	"github.com/spf13/cobra"
)

// ErrHashDisabled is returned by hash when hashing is turned off.
var ErrHashDisabled = errors.New("hashing is disabled (--no-hash or enable_hash: false)")

// NewHashCmd creates and returns the hash subcommand for the datagz CLI.
// It prints the directory digest without writing the sentinel.
func NewHashCmd(flags *sharedFlags) *cobra.Command {
	var (
		showTag bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the data directory digest",
		Long: `Print the aggregate digest of the data directory.

This computes exactly what run would write to .hash, without touching any
file. Useful for comparing a working tree against a device that reports
its filesystem hash. With --verbose each eligible file's own digest is
listed first, in the order the files feed the aggregate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.settings(cmd)
			if err != nil {
				return err
			}
			if !s.Options.EnableHash {
				return ErrHashDisabled
			}
			out := cmd.OutOrStdout()
			if verbose {
				names, err := util.EligibleFiles(s.Options.Dir)
				if err != nil {
					return err
				}
				for _, name := range names {
					fileHash, err := util.GetFileHash(filepath.Join(s.Options.Dir, name), s.Options.HashAlgo)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s  %s\n", fileHash, name)
				}
			}
			digest, err := util.DirectoryHash(s.Options.Dir, s.Options.HashAlgo)
			if err != nil {
				return err
			}
			if showTag {
				fmt.Fprintf(out, "%s [tag %s]\n", digest, util.DigestTag(digest))
				return nil
			}
			fmt.Fprintln(out, digest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTag, "tag", false, "Also print the short digest tag")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List the digest of every eligible file")

	return cmd
}
