// Package config loads prove.toml project manifests, grounded on original_source/prove/src/prove/config.py's
// ProveConfig dataclass.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Package describes the [package] table.
type Package struct {
	Name    string   `toml:"name"`
	Version string   `toml:"version"`
	Authors []string `toml:"authors"`
	License string   `toml:"license"`
}

// Build describes the [build] table.
type Build struct {
	Target   string `toml:"target"`
	Optimize bool   `toml:"optimize"`
}

// Test describes the [test] table.
type Test struct {
	PropertyRounds int `toml:"property_rounds"`
}

// Config is the parsed prove.toml manifest, defaulted the same way
// config.py's ProveConfig dataclass defaults its fields.
type Config struct {
	Package Package `toml:"package"`
	Build   Build   `toml:"build"`
	Test    Test    `toml:"test"`
}

// Default returns a Config with the same defaults as a bare ProveConfig().
func Default() Config {
	return Config{
		Package: Package{Name: "untitled", Version: "0.0.0"},
		Build:   Build{Target: "native", Optimize: false},
		Test:    Test{PropertyRounds: 1000},
	}
}

// Find walks up from start (a file or directory) looking for a prove.toml,
// mirroring config.py's find_config.
func Find(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolving start path: %w", err)
	}
	info, err := os.Stat(abs)
	if err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	for {
		candidate := filepath.Join(abs, "prove.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("config: no prove.toml found in any parent directory of %s", start)
		}
		abs = parent
	}
}

// Load parses the prove.toml file at path into a Config, applying the same
// per-table defaults as config.py's load_config when a table or field is
// absent.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.Package.Name == "" {
		cfg.Package.Name = "untitled"
	}
	if cfg.Package.Version == "" {
		cfg.Package.Version = "0.0.0"
	}
	if cfg.Build.Target == "" {
		cfg.Build.Target = "native"
	}
	if cfg.Test.PropertyRounds == 0 {
		cfg.Test.PropertyRounds = 1000
	}
	return cfg, nil
}
