package prep

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dendrascience/datagz/util"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDataDir(t *testing.T, files map[string]string) Options {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.Mkdir(dir, 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	opts := DefaultOptions()
	opts.Dir = dir
	return opts
}

func gunzip(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	b, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(b)
}

func TestRun_Example(t *testing.T) {
	opts := setupDataDir(t, map[string]string{"a.txt": "hi", "b.json": "{}"})

	var out bytes.Buffer
	summary, err := Run(opts, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Compressed)
	assert.Equal(t, "hi", gunzip(t, filepath.Join(opts.Dir, "a.txt.gz")))
	assert.Equal(t, "{}", gunzip(t, filepath.Join(opts.Dir, "b.json.gz")))

	// md5("hi" + "{}")
	assert.Equal(t, "1a4a43fd2d7a514a74d7238756846c7b", summary.Digest)
	stored, err := os.ReadFile(filepath.Join(opts.Dir, util.HashFileName))
	require.NoError(t, err)
	assert.Equal(t, summary.Digest, string(stored))

	assert.Contains(t, out.String(), "1a4a43fd2d7a514a74d7238756846c7b")
	assert.Contains(t, out.String(), "✓ a.txt -> a.txt.gz")
	assert.Contains(t, out.String(), "2 files compressed")
}

func TestRun_SkipsArtifactsAndSentinel(t *testing.T) {
	opts := setupDataDir(t, map[string]string{
		"index.html":   "<html></html>",
		"style.css.gz": "already compressed",
		".hash":        "stale",
	})
	require.NoError(t, os.Mkdir(filepath.Join(opts.Dir, "img"), 0755))

	summary, err := Run(opts, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Compressed)
	assert.NoFileExists(t, filepath.Join(opts.Dir, "style.css.gz.gz"))
	assert.NoFileExists(t, filepath.Join(opts.Dir, ".hash.gz"))
	assert.NoFileExists(t, filepath.Join(opts.Dir, "img.gz"))
	assert.FileExists(t, filepath.Join(opts.Dir, "index.html.gz"))

	// the sentinel is rewritten from eligible files only
	digest, err := util.DirectoryHash(opts.Dir, util.MD5)
	require.NoError(t, err)
	assert.Equal(t, digest, summary.Digest)
}

func TestRun_Idempotent(t *testing.T) {
	opts := setupDataDir(t, map[string]string{
		"app.js":       "const app = {};\n",
		"wsManager.js": "export class WsManager {}\n",
		"empty.txt":    "",
	})

	_, err := Run(opts, io.Discard)
	require.NoError(t, err)
	first := readArtifacts(t, opts.Dir)

	_, err = Run(opts, io.Discard)
	require.NoError(t, err)
	second := readArtifacts(t, opts.Dir)

	assert.Len(t, first, 4)
	assert.Equal(t, first, second)
}

func readArtifacts(t *testing.T, dir string) map[string][]byte {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.gz"))
	require.NoError(t, err)
	artifacts := make(map[string][]byte)
	for _, m := range matches {
		b, err := os.ReadFile(m)
		require.NoError(t, err)
		artifacts[filepath.Base(m)] = b
	}
	hash, err := os.ReadFile(filepath.Join(dir, util.HashFileName))
	require.NoError(t, err)
	artifacts[util.HashFileName] = hash
	return artifacts
}

func TestRun_MissingDirectory(t *testing.T) {
	parent := t.TempDir()
	opts := DefaultOptions()
	opts.Dir = filepath.Join(parent, "data")

	var out bytes.Buffer
	summary, err := Run(opts, &out)

	assert.ErrorIs(t, err, util.ErrDataDirMissing)
	assert.Equal(t, Summary{}, summary)
	assert.Contains(t, out.String(), "directory not found")

	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_HashDisabled(t *testing.T) {
	opts := setupDataDir(t, map[string]string{"a.txt": "hi"})
	opts.EnableHash = false

	summary, err := Run(opts, io.Discard)
	require.NoError(t, err)

	assert.Empty(t, summary.Digest)
	assert.Equal(t, 1, summary.Compressed)
	assert.NoFileExists(t, filepath.Join(opts.Dir, util.HashFileName))
}

func TestRun_DryRun(t *testing.T) {
	opts := setupDataDir(t, map[string]string{"a.txt": "hi", "b.json": "{}"})
	opts.DryRun = true

	var out bytes.Buffer
	summary, err := Run(opts, &out)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Compressed)
	assert.NotEmpty(t, summary.Digest)
	assert.NoFileExists(t, filepath.Join(opts.Dir, "a.txt.gz"))
	assert.NoFileExists(t, filepath.Join(opts.Dir, util.HashFileName))
	assert.Contains(t, out.String(), "2 files would be compressed")
}

func TestRun_ZeroByteFile(t *testing.T) {
	opts := setupDataDir(t, map[string]string{"empty.txt": ""})

	var out bytes.Buffer
	summary, err := Run(opts, &out)
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	assert.Equal(t, float64(0), summary.Results[0].Reduction())
	assert.Contains(t, out.String(), "(0.0% smaller")
	assert.Equal(t, "", gunzip(t, filepath.Join(opts.Dir, "empty.txt.gz")))
}

func TestRun_FailureKeepsEarlierArtifacts(t *testing.T) {
	opts := setupDataDir(t, map[string]string{"a.txt": "hi", "b.json": "{}", "c.css": "body{}"})
	// a directory where b.json's artifact belongs makes os.Create fail
	require.NoError(t, os.Mkdir(filepath.Join(opts.Dir, "b.json.gz"), 0755))

	summary, err := Run(opts, io.Discard)
	require.Error(t, err)

	var pathErr *os.PathError
	assert.True(t, errors.As(err, &pathErr), "want wrapped *os.PathError, got %v", err)
	assert.Contains(t, err.Error(), "b.json")

	assert.Equal(t, 1, summary.Compressed)
	assert.Equal(t, "hi", gunzip(t, filepath.Join(opts.Dir, "a.txt.gz")))
	assert.NoFileExists(t, filepath.Join(opts.Dir, "c.css.gz"))

	expected, err := util.DirectoryHash(opts.Dir, util.MD5)
	require.NoError(t, err)
	stored, err := os.ReadFile(filepath.Join(opts.Dir, util.HashFileName))
	require.NoError(t, err)
	assert.Equal(t, expected, string(stored))
}

func TestRun_InvalidOptions(t *testing.T) {
	opts := setupDataDir(t, map[string]string{"a.txt": "hi"})

	bad := opts
	bad.Level = 11
	_, err := Run(bad, io.Discard)
	assert.ErrorIs(t, err, util.ErrInvalidLevel)

	bad = opts
	bad.HashAlgo = "sha1"
	_, err = Run(bad, io.Discard)
	assert.ErrorIs(t, err, util.ErrUnknownHashAlgorithm)

	bad = opts
	bad.Dir = ""
	_, err = Run(bad, io.Discard)
	assert.Error(t, err)

	assert.NoFileExists(t, filepath.Join(opts.Dir, "a.txt.gz"))
}
