package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultNtfsUndelete = "/sbin/ntfsundelete"

	configDirName  = "ntfsundeletetree"
	configFileName = "config.toml"
)

// Config holds the settings shared by all commands
type Config struct {
	NtfsUndelete string `toml:"ntfsundelete"` // path to the scan/recovery tool
	Catalog      string `toml:"catalog"`      // SQLite scan catalog, empty disables it
	Verbose      bool   `toml:"verbose"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{NtfsUndelete: DefaultNtfsUndelete}
}

// Path returns the location of the user's config file
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

// Load reads the user's config file, if any, and applies environment
// overrides: NTFSUNDELETE for the tool path and NTFSUNDELETETREE_CATALOG
// for the catalog.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return applyEnv(Default()), nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return applyEnv(Default()), err
	}
	return applyEnv(cfg), nil
}

// LoadFile reads a TOML config file on top of the defaults. A missing
// file yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.NtfsUndelete == "" {
		cfg.NtfsUndelete = DefaultNtfsUndelete
	}
	return cfg, nil
}

func applyEnv(cfg Config) Config {
	if env := os.Getenv("NTFSUNDELETE"); env != "" {
		cfg.NtfsUndelete = env
	}
	if env := os.Getenv("NTFSUNDELETETREE_CATALOG"); env != "" {
		cfg.Catalog = env
	}
	return cfg
}
