package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// CompressedSuffix is appended to a file name to form its artifact name.
	CompressedSuffix = ".gz"

	// HashFileName is the sentinel file that holds the directory digest.
	HashFileName = ".hash"

	// ChunkSize is the read size used when streaming file content.
	ChunkSize = 8192
)

// IsEligibleName reports whether a directory entry name may be hashed and
// compressed. It does not look at the filesystem.
func IsEligibleName(name string) bool {
	return !strings.HasSuffix(name, CompressedSuffix) && name != HashFileName
}

// CompressedPath returns the artifact path for path, appending the suffix
// rather than replacing the extension: index.html -> index.html.gz.
func CompressedPath(path string) string {
	return path + CompressedSuffix
}

// EnsureDirectory returns ErrDataDirMissing if dir does not exist and
// ErrExpectedDirectory if it is not a directory.
func EnsureDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrDataDirMissing, dir)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrExpectedDirectory, dir)
	}
	return nil
}

// EligibleFiles returns the names of all eligible files directly inside dir,
// sorted by name. Subdirectories are not descended into. Symlinks count when
// they resolve to a regular file.
func EligibleFiles(dir string) ([]string, error) {
	if err := EnsureDirectory(dir); err != nil {
		return nil, err
	}
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	names := []string{}
	for _, v := range dirents {
		if !IsEligibleName(v.Name()) {
			continue
		}
		if v.Type().IsRegular() {
			names = append(names, v.Name())
			continue
		}
		if v.Type()&os.ModeSymlink == 0 {
			continue
		}
		info, statErr := os.Stat(filepath.Join(dir, v.Name()))
		if statErr != nil {
			// dangling link
			continue
		}
		if info.Mode().IsRegular() {
			names = append(names, v.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// copyChunked copies src to dst through a single ChunkSize buffer. It never
// delegates to ReaderFrom or WriterTo. Do not replace it with io.Copy or
// io.CopyBuffer: both hand off to those interfaces and lose the fixed bound.
func copyChunked(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, ChunkSize)
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			w, err := dst.Write(buf[:n])
			written += int64(w)
			if err != nil {
				return written, err
			}
			if w != n {
				return written, io.ErrShortWrite
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
