package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")
	ErrDataDirMissing    = errors.New("data directory not found")

	// Hash errors
	ErrUnknownHashAlgorithm = errors.New("unknown hash algorithm")

	// Compression errors
	ErrInvalidLevel = errors.New("gzip level must be between 1 and 9")
)
