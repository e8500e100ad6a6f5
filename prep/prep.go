package prep

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dendrascience/datagz/util"
	"github.com/dustin/go-humanize"
)

// Options controls a single pre-build run.
type Options struct {
	// Dir is the data directory, usually "data" relative to the build root.
	Dir string
	// EnableHash writes the directory digest to the sentinel file before
	// compressing.
	EnableHash bool
	HashAlgo   util.HashAlgorithm
	// Level is the gzip level, 1 through 9.
	Level int
	// DryRun reports what would happen without touching the filesystem.
	DryRun bool
}

// DefaultOptions returns the options the firmware build uses when nothing is
// configured.
func DefaultOptions() Options {
	return Options{
		Dir:        "data",
		EnableHash: true,
		HashAlgo:   util.MD5,
		Level:      util.DefaultLevel,
	}
}

// Validate checks the options before anything touches the disk.
func (o Options) Validate() error {
	if o.Dir == "" {
		return errors.New("data directory must not be empty")
	}
	if _, err := util.ParseHashAlgorithm(string(o.HashAlgo)); err != nil {
		return err
	}
	return util.ValidateLevel(o.Level)
}

// Summary is what a run produced.
type Summary struct {
	Digest     string
	Compressed int
	Results    []util.CompressResult
}

// Run performs the pre-build step: hash the data directory (if enabled),
// then compress every eligible file into a .gz sibling. Progress lines go to
// out.
//
// A missing data directory is reported and returned as util.ErrDataDirMissing
// without touching anything; callers decide whether that fails the build.
// Any other error aborts the run and leaves earlier artifacts in place.
func Run(opts Options, out io.Writer) (Summary, error) {
	if err := opts.Validate(); err != nil {
		return Summary{}, err
	}

	fmt.Fprintf(out, "🗜️  [pre-build] compressing files in %s/ for LittleFS...\n", opts.Dir)
	if opts.DryRun {
		fmt.Fprintln(out, "DRY RUN - no changes will be made")
	}

	if err := util.EnsureDirectory(opts.Dir); err != nil {
		if errors.Is(err, util.ErrDataDirMissing) {
			fmt.Fprintf(out, "❌ %s/ directory not found!\n", opts.Dir)
		}
		return Summary{}, err
	}

	var summary Summary
	if opts.EnableHash {
		digest, err := util.DirectoryHash(opts.Dir, opts.HashAlgo)
		if err != nil {
			return summary, fmt.Errorf("hashing %s: %w", opts.Dir, err)
		}
		if !opts.DryRun {
			if err := util.WriteHashFile(opts.Dir, digest); err != nil {
				return summary, err
			}
		}
		summary.Digest = digest
		fmt.Fprintf(out, "📦 filesystem hash (%s): %s [tag %s]\n", opts.HashAlgo, digest, util.DigestTag(digest))
	}

	names, err := util.EligibleFiles(opts.Dir)
	if err != nil {
		return summary, err
	}
	for _, name := range names {
		input := filepath.Join(opts.Dir, name)
		output := util.CompressedPath(input)
		if opts.DryRun {
			fmt.Fprintf(out, "  would compress %s -> %s\n", name, filepath.Base(output))
			continue
		}
		result, err := util.CompressFile(input, output, opts.Level)
		if err != nil {
			return summary, fmt.Errorf("compressing %s: %w", input, err)
		}
		summary.Results = append(summary.Results, result)
		summary.Compressed++
		fmt.Fprintf(out, "✓ %s -> %s (%.1f%% smaller, %s -> %s)\n",
			result.Name, result.Output, result.Reduction(),
			humanize.Bytes(uint64(result.OriginalSize)), humanize.Bytes(uint64(result.CompressedSize)))
	}

	if opts.DryRun {
		fmt.Fprintf(out, "%d files would be compressed\n", len(names))
		return summary, nil
	}
	fmt.Fprintf(out, "✅ %d files compressed!\n", summary.Compressed)
	return summary, nil
}
