package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
)

// DefaultLevel matches the level the firmware build has always shipped with.
const DefaultLevel = gzip.BestCompression

// CompressResult describes one compressed artifact.
type CompressResult struct {
	Name           string
	Output         string
	OriginalSize   int64
	CompressedSize int64
}

// Reduction returns the percentage by which the artifact is smaller than the
// original. Empty originals report 0 instead of dividing by zero; the gzip
// header alone makes their artifact larger anyway.
func (r CompressResult) Reduction() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return (1 - float64(r.CompressedSize)/float64(r.OriginalSize)) * 100
}

// ValidateLevel checks that level is a usable gzip level.
func ValidateLevel(level int) error {
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		return fmt.Errorf("%w: got %d", ErrInvalidLevel, level)
	}
	return nil
}

// CompressFile writes a gzip copy of input to output, replacing anything
// already at output. Content is streamed in ChunkSize pieces so memory use
// does not depend on the file size.
func CompressFile(input, output string, level int) (result CompressResult, err error) {
	if err = ValidateLevel(level); err != nil {
		return CompressResult{}, err
	}
	info, err := os.Stat(input)
	if err != nil {
		return CompressResult{}, err
	}
	if info.IsDir() {
		return CompressResult{}, ErrExpectedFile
	}

	in, err := os.Open(input)
	if err != nil {
		return CompressResult{}, err
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return CompressResult{}, err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", output, closeErr)
		}
	}()

	zw, err := gzip.NewWriterLevel(out, level)
	if err != nil {
		return CompressResult{}, err
	}
	// gzip stores ModTime.Unix() verbatim; the zero time.Time would encode as 2042.
	zw.ModTime = time.Unix(0, 0)
	originalSize, err := copyChunked(zw, in)
	if err != nil {
		zw.Close()
		return CompressResult{}, fmt.Errorf("compressing %s: %w", input, err)
	}
	if err = zw.Close(); err != nil {
		return CompressResult{}, fmt.Errorf("flushing %s: %w", output, err)
	}

	compressedSize, err := out.Seek(0, io.SeekCurrent)
	if err != nil {
		return CompressResult{}, err
	}

	return CompressResult{
		Name:           filepath.Base(input),
		Output:         filepath.Base(output),
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
	}, nil
}
