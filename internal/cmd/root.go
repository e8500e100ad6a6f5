package cmd

import (
	"github.com/dendrascience/datagz/internal/config"
	"github.com/dendrascience/datagz/util"
	"github.com/dendrascience/datagz/version"
	"github.com/spf13/cobra"
)

// sharedFlags holds the persistent flags every data-directory command reads.
type sharedFlags struct {
	configPath string
	dir        string
	noHash     bool
	hashAlgo   string
	level      int
	strict     bool
}

// NewRootCmd creates and returns the root cobra command for the datagz CLI.
// Invoked without a subcommand it performs the pre-build run, so a build hook
// can call the binary with no arguments.
func NewRootCmd() *cobra.Command {
	flags := &sharedFlags{}
	var dryRun bool

	rootCmd := &cobra.Command{
		Use:   "datagz",
		Short: "datagz - gzip a firmware data directory before the filesystem upload",
		Long: `datagz prepares the data/ directory of a firmware project before its
LittleFS image is built and uploaded.

Every file directly inside the data directory is gzip-compressed into a
<name>.gz sibling, and an aggregate content hash of the directory is written
to data/.hash so the device can detect changed web assets.

Use subcommands to perform different operations:
  - run: Hash and compress the data directory (default)
  - hash: Print the directory digest without writing anything
  - verify: Check .hash and artifacts against the directory
  - count: Count eligible files and their size
  - seed: Generate sample data for trying the pipeline`,
		Version:      version.GetFullVersion(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrep(cmd, flags, dryRun)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to a YAML config file (or set "+config.EnvVar+")")
	pf.StringVarP(&flags.dir, "dir", "d", "data", "Data directory to process")
	pf.BoolVar(&flags.noHash, "no-hash", false, "Skip the "+util.HashFileName+" sentinel")
	pf.StringVar(&flags.hashAlgo, "hash-algo", string(util.MD5), "Digest algorithm: "+util.HashAlgorithmNames())
	pf.IntVarP(&flags.level, "level", "l", util.DefaultLevel, "gzip compression level (1-9)")
	pf.BoolVar(&flags.strict, "strict", false, "Fail when the data directory is missing")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making changes")

	groupBuild := "build"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupBuild,
		Title: "Build Steps",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	runCmd := NewRunCmd(flags)
	hashCmd := NewHashCmd(flags)
	verifyCmd := NewVerifyCmd(flags)
	countCmd := NewCountCmd(flags)
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	runCmd.GroupID = groupBuild
	hashCmd.GroupID = groupBuild
	verifyCmd.GroupID = groupUtilities
	countCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// settings resolves defaults, the config file and explicitly set flags, in
// that order of precedence.
func (f *sharedFlags) settings(cmd *cobra.Command) (config.Settings, error) {
	s, err := config.Resolve(f.configPath)
	if err != nil {
		return s, err
	}
	changed := cmd.Flags().Changed
	if changed("dir") {
		s.Options.Dir = f.dir
	}
	if changed("no-hash") {
		s.Options.EnableHash = !f.noHash
	}
	if changed("hash-algo") {
		algo, err := util.ParseHashAlgorithm(f.hashAlgo)
		if err != nil {
			return s, err
		}
		s.Options.HashAlgo = algo
	}
	if changed("level") {
		s.Options.Level = f.level
	}
	if changed("strict") {
		s.Strict = f.strict
	}
	return s, s.Options.Validate()
}
