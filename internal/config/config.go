// Package config reads the settings file of the switchflow command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

type Color string

const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

type Config struct {
	// Tests includes the test variants of the loaded packages.
	Tests bool  `yaml:"tests"`
	Color Color `yaml:"color"`
	// Exclude holds path.Match patterns of package paths to skip.
	Exclude []string `yaml:"exclude"`
}

var ErrBadColor = errors.New("invalid color setting")

func Default() Config {
	return Config{Color: ColorAuto}
}

// Load reads the configuration at filename. Settings missing from the file
// keep their default values.
func Load(filename string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return cfg, fmt.Errorf("%s: %w %q", filename, ErrBadColor, cfg.Color)
	}

	for _, pattern := range cfg.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return cfg, fmt.Errorf("%s: exclude pattern %q: %w", filename, pattern, err)
		}
	}

	return cfg, nil
}

// Excluded reports whether the package with the given import path should be
// skipped.
func (c Config) Excluded(pkgPath string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := path.Match(pattern, pkgPath); ok {
			return true
		}
	}
	return false
}
