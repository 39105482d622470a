package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/dgallion1/numbook/internal/envs"
	"gopkg.in/yaml.v3"
)

// BookConfigFile is the per-book configuration looked up in a book directory.
const BookConfigFile = "numbook.yaml"

// BookConfig is the per-book rendering configuration.
type BookConfig struct {
	// Prefix prepends section numbers to environment counters.
	Prefix bool `yaml:"prefix" json:"prefix"`
	// Environments adjusts the built-in environment set.
	Environments map[string]envs.Override `yaml:"environments" json:"environments"`
}

// Registry builds the finalized environment registry: built-in defaults with
// the configured overrides applied.
func (c BookConfig) Registry() envs.Registry {
	reg := envs.Defaults()
	reg.Apply(c.Environments)
	return reg
}

// LoadBookConfig reads numbook.yaml from the root of fsys. A missing file is
// the valid degenerate configuration: defaults, no prefix.
func LoadBookConfig(fsys fs.FS) (BookConfig, error) {
	var cfg BookConfig
	data, err := fs.ReadFile(fsys, BookConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", BookConfigFile, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", BookConfigFile, err)
	}
	return cfg, nil
}
