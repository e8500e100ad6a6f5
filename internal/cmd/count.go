package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dendrascience/datagz/util"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand for the datagz CLI.
// It counts the files a run would compress.
func NewCountCmd(flags *sharedFlags) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count eligible files in the data directory",
		Long: `Count the files a run would compress and their total size.

Only files directly inside the data directory are counted; existing .gz
artifacts and the .hash sentinel are excluded, as is everything in
subdirectories.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.settings(cmd)
			if err != nil {
				return err
			}
			return runCount(cmd, s.Options.Dir, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every file")

	return cmd
}

func runCount(cmd *cobra.Command, dir string, verbose bool) error {
	names, err := util.EligibleFiles(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var total int64
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		total += info.Size()
		if verbose {
			fmt.Fprintf(out, "%10s  %s\n", humanize.Bytes(uint64(info.Size())), name)
		}
	}

	fmt.Fprintf(out, "Total files: %d (%s)\n", len(names), humanize.Bytes(uint64(total)))
	return nil
}
