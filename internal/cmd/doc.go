// Package cmd provides the command-line interface implementation for datagz.
//
// This package contains all the subcommand implementations for the datagz CLI tool.
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Runs the pre-build step when called without a subcommand
//   - run: Hash and gzip the data directory
//   - hash: Print the directory digest
//   - verify: Check .hash and .gz artifacts against the directory
//   - count: Count eligible files
//   - seed: Generate sample data
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. Settings are resolved from defaults, an optional
// YAML config file and explicitly set flags, in that order.
package cmd
