package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dendrascience/datagz/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Defaults(t *testing.T) {
	t.Setenv(EnvVar, "")

	s, err := Resolve("")
	require.NoError(t, err)

	assert.Equal(t, "data", s.Options.Dir)
	assert.True(t, s.Options.EnableHash)
	assert.Equal(t, util.MD5, s.Options.HashAlgo)
	assert.Equal(t, util.DefaultLevel, s.Options.Level)
	assert.False(t, s.Strict)
}

func TestResolve_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datagz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: web
enable_hash: false
hash_algorithm: blake3
level: 6
strict: true
`), 0644))

	s, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, "web", s.Options.Dir)
	assert.False(t, s.Options.EnableHash)
	assert.Equal(t, util.BLAKE3, s.Options.HashAlgo)
	assert.Equal(t, 6, s.Options.Level)
	assert.True(t, s.Strict)
}

func TestResolve_EnvVar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datagz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: 1\n"), 0644))
	t.Setenv(EnvVar, path)

	s, err := Resolve("")
	require.NoError(t, err)

	assert.Equal(t, 1, s.Options.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "data", s.Options.Dir)
	assert.True(t, s.Options.EnableHash)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "empty document", data: ""},
		{name: "only comments", data: "# nothing here\n"},
		{name: "partial", data: "strict: true\n"},
		{name: "unknown key", data: "datadir: web\n", wantErr: true},
		{name: "wrong type", data: "level: high\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApply_InvalidValues(t *testing.T) {
	s := Defaults()

	algo := "crc32"
	err := (&Config{HashAlgorithm: &algo}).Apply(&s)
	assert.ErrorIs(t, err, util.ErrUnknownHashAlgorithm)

	level := 0
	err = (&Config{Level: &level}).Apply(&s)
	assert.ErrorIs(t, err, util.ErrInvalidLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
