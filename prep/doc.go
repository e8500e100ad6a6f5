// Package prep runs the datagz pre-build step over a data directory.
//
// Run is the explicit entry point the build invokes before uploading the
// LittleFS image: it records the directory digest in the .hash sentinel and
// writes a gzip sibling for every eligible file. Verify checks a directory
// against what the last run left behind. Nothing in this package runs at
// import time.
package prep
