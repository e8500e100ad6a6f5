package util

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/colorhash"
	"github.com/zeebo/blake3"
)

// HashAlgorithm names a digest used for the directory hash.
type HashAlgorithm string

const (
	// MD5 is what the device firmware compares against by default.
	MD5    HashAlgorithm = "md5"
	SHA256 HashAlgorithm = "sha256"
	BLAKE3 HashAlgorithm = "blake3"
)

// HashAlgorithms lists the supported algorithms in display order.
var HashAlgorithms = []HashAlgorithm{MD5, SHA256, BLAKE3}

// HashAlgorithmNames returns the supported names joined for help text,
// e.g. "md5, sha256 or blake3".
func HashAlgorithmNames() string {
	names := make([]string, len(HashAlgorithms))
	for i, algo := range HashAlgorithms {
		names[i] = string(algo)
	}
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// ParseHashAlgorithm validates an algorithm name.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	switch algo := HashAlgorithm(name); algo {
	case MD5, SHA256, BLAKE3:
		return algo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownHashAlgorithm, name)
	}
}

// NewHash returns a fresh accumulator for algo.
func NewHash(algo HashAlgorithm) (hash.Hash, error) {
	switch algo {
	case MD5:
		return md5.New(), nil
	case SHA256:
		return sha256.New(), nil
	case BLAKE3:
		return blake3.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHashAlgorithm, algo)
	}
}

// DirectoryHash computes one digest over every eligible file in dir.
// Files are visited in name order and their contents are fed, back to back,
// through a single accumulator, so the result depends on names only through
// that order. It returns the digest as lowercase hex.
func DirectoryHash(dir string, algo HashAlgorithm) (string, error) {
	h, err := NewHash(algo)
	if err != nil {
		return "", err
	}
	names, err := EligibleFiles(dir)
	if err != nil {
		return "", err
	}
	for _, name := range names {
		if err := hashInto(h, filepath.Join(dir, name)); err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashInto(h hash.Hash, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := copyChunked(h, f); err != nil {
		return fmt.Errorf("hashing %s: %w", path, err)
	}
	return nil
}

// GetFileHash hashes a single file with algo and returns the hex digest.
func GetFileHash(path string, algo HashAlgorithm) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	h, err := NewHash(algo)
	if err != nil {
		return "", err
	}
	if err := hashInto(h, path); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteHashFile stores digest verbatim, without a trailing newline, in the
// sentinel file inside dir, replacing any previous content.
func WriteHashFile(dir, digest string) error {
	path := filepath.Join(dir, HashFileName)
	if err := os.WriteFile(path, []byte(digest), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadHashFile returns the digest stored in the sentinel file inside dir.
func ReadHashFile(dir string) (string, error) {
	b, err := os.ReadFile(filepath.Join(dir, HashFileName))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DigestTag derives a short three digit tag from a digest, handy for
// eyeballing whether two build logs saw the same data.
func DigestTag(digest string) string {
	tag := colorhash.HashString(digest) % 1000
	if tag < 0 {
		tag = -tag
	}
	return fmt.Sprintf("%03d", tag)
}
