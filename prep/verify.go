package prep

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/datagz/util"
)

// Report is the outcome of Verify.
type Report struct {
	StoredDigest   string
	ComputedDigest string
	// HashChecked is false when hashing is disabled.
	HashChecked bool
	HashMissing bool
	// Missing lists eligible files without a .gz artifact.
	Missing []string
	// Stale lists eligible files modified after their artifact was written.
	Stale []string
	// Orphaned lists artifacts whose source file no longer exists.
	Orphaned []string
}

// Problems returns one human-readable line per issue found.
func (r Report) Problems() []string {
	var problems []string
	switch {
	case r.HashMissing:
		problems = append(problems, fmt.Sprintf("missing %s sentinel", util.HashFileName))
	case r.HashChecked && r.StoredDigest != r.ComputedDigest:
		problems = append(problems, fmt.Sprintf("digest mismatch: stored %s, computed %s", r.StoredDigest, r.ComputedDigest))
	}
	for _, name := range r.Missing {
		problems = append(problems, fmt.Sprintf("no artifact for %s", name))
	}
	for _, name := range r.Stale {
		problems = append(problems, fmt.Sprintf("artifact older than %s", name))
	}
	for _, name := range r.Orphaned {
		problems = append(problems, fmt.Sprintf("orphaned artifact %s", name))
	}
	return problems
}

// OK reports whether the directory matches what a fresh run would produce.
func (r Report) OK() bool {
	return len(r.Problems()) == 0
}

// Verify compares the data directory with the artifacts and sentinel left by
// the last Run. It reads file metadata and content for hashing only; nothing
// is decompressed or written.
func Verify(opts Options, out io.Writer) (Report, error) {
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}
	if err := util.EnsureDirectory(opts.Dir); err != nil {
		if errors.Is(err, util.ErrDataDirMissing) {
			fmt.Fprintf(out, "❌ %s/ directory not found!\n", opts.Dir)
		}
		return Report{}, err
	}

	var report Report
	if opts.EnableHash {
		report.HashChecked = true
		stored, err := util.ReadHashFile(opts.Dir)
		switch {
		case os.IsNotExist(err):
			report.HashMissing = true
		case err != nil:
			return report, err
		default:
			report.StoredDigest = stored
		}
		computed, err := util.DirectoryHash(opts.Dir, opts.HashAlgo)
		if err != nil {
			return report, err
		}
		report.ComputedDigest = computed
	}

	names, err := util.EligibleFiles(opts.Dir)
	if err != nil {
		return report, err
	}
	sources := make(map[string]bool, len(names))
	for _, name := range names {
		sources[name] = true
		src, err := os.Stat(filepath.Join(opts.Dir, name))
		if err != nil {
			return report, err
		}
		artifact, err := os.Stat(util.CompressedPath(filepath.Join(opts.Dir, name)))
		if os.IsNotExist(err) {
			report.Missing = append(report.Missing, name)
			continue
		}
		if err != nil {
			return report, err
		}
		if src.ModTime().After(artifact.ModTime()) {
			report.Stale = append(report.Stale, name)
		}
	}

	dirents, err := os.ReadDir(opts.Dir)
	if err != nil {
		return report, err
	}
	for _, v := range dirents {
		if v.IsDir() || !strings.HasSuffix(v.Name(), util.CompressedSuffix) {
			continue
		}
		if !sources[strings.TrimSuffix(v.Name(), util.CompressedSuffix)] {
			report.Orphaned = append(report.Orphaned, v.Name())
		}
	}

	for _, problem := range report.Problems() {
		fmt.Fprintf(out, "  - %s\n", problem)
	}
	if report.OK() {
		fmt.Fprintf(out, "✅ %s/ is up to date (%d files)\n", opts.Dir, len(names))
	} else {
		fmt.Fprintf(out, "❌ %s/ has %d problems\n", opts.Dir, len(report.Problems()))
	}
	return report, nil
}
