// Package main provides the datagz command-line interface.
//
// datagz is the pre-build step of a firmware project: before the LittleFS image
// is built and uploaded, it gzips every file in data/ into a <name>.gz sibling
// and records an aggregate content hash in data/.hash.
//
// The build tool calls the binary with no arguments. Subcommands are:
//   - run: Hash and compress the data directory (also the default)
//   - hash: Print the directory digest
//   - verify: Check .hash and artifacts against the directory
//   - count: Count eligible files
//   - seed: Generate sample data
package main
