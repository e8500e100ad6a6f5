// Package util provides the file-level building blocks for datagz.
//
// This package contains the two leaf operations of the pre-build step plus the
// directory enumeration rules they share. Everything here is synchronous and
// works on a single flat directory.
//
// Key Components:
//
// Enumeration:
//   - EligibleFiles lists regular files directly inside the data directory
//   - Compressed artifacts (*.gz) and the sentinel hash file (.hash) are skipped
//   - Names are returned sorted so callers see a stable order on every OS
//
// Compression:
//   - CompressFile streams a file through gzip into <name>.gz
//   - Bounded memory: input is copied in ChunkSize pieces
//   - Output headers carry no name or timestamp, so reruns are byte-identical
//
// Hashing:
//   - DirectoryHash feeds all eligible files, in name order, through one digest
//   - md5 (default), sha256 and blake3 are supported
//   - WriteHashFile records the hex digest in the sentinel file
package util
