// Package config loads datagz settings from an optional YAML file.
//
// The file is chosen by the --config flag or the DATAGZ_CONFIG environment
// variable. There is no automatic discovery: without either, the built-in
// defaults apply, which is what the firmware build relies on when it calls
// datagz with no arguments.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/datagz/prep"
	"github.com/dendrascience/datagz/util"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "DATAGZ_CONFIG"

// Config mirrors the settings a run accepts. Pointer fields distinguish
// "not set" from the zero value so only set keys override defaults.
type Config struct {
	// DataDir is the directory to process, relative to the working directory.
	DataDir *string `yaml:"data_dir"`

	// EnableHash toggles the .hash sentinel.
	EnableHash *bool `yaml:"enable_hash"`

	// HashAlgorithm is one of md5, sha256, blake3.
	HashAlgorithm *string `yaml:"hash_algorithm"`

	// Level is the gzip compression level.
	Level *int `yaml:"level"`

	// Strict turns a missing data directory into a failed run.
	Strict *bool `yaml:"strict"`
}

// Settings is a fully resolved configuration.
type Settings struct {
	Options prep.Options
	Strict  bool
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{Options: prep.DefaultOptions()}
}

// Path returns the config file to load: flagValue if set, otherwise the
// environment variable. An empty result means no file.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvVar)
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data. Unknown keys are rejected so typos do not
// silently fall back to defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// Apply overlays the keys present in c onto s.
func (c *Config) Apply(s *Settings) error {
	if c == nil {
		return nil
	}
	if c.DataDir != nil {
		s.Options.Dir = *c.DataDir
	}
	if c.EnableHash != nil {
		s.Options.EnableHash = *c.EnableHash
	}
	if c.HashAlgorithm != nil {
		algo, err := util.ParseHashAlgorithm(*c.HashAlgorithm)
		if err != nil {
			return err
		}
		s.Options.HashAlgo = algo
	}
	if c.Level != nil {
		if err := util.ValidateLevel(*c.Level); err != nil {
			return err
		}
		s.Options.Level = *c.Level
	}
	if c.Strict != nil {
		s.Strict = *c.Strict
	}
	return nil
}

// Resolve returns defaults overlaid with the config file selected by
// flagValue or the environment, if any.
func Resolve(flagValue string) (Settings, error) {
	s := Defaults()
	path := Path(flagValue)
	if path == "" {
		return s, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return s, err
	}
	if err := cfg.Apply(&s); err != nil {
		return s, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}
