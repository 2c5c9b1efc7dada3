package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Origins of the file layer, reported in Config.Source.
const (
	OriginDefaults = "defaults"
	OriginFlag     = "flag"
	OriginWorkDir  = "working directory"
	OriginUserDir  = "user config dir"
)

// Source records which file, if any, was layered over the defaults.
type Source struct {
	Origin string
	Path   string
}

func (s Source) String() string {
	if s.Path == "" {
		return s.Origin
	}
	return fmt.Sprintf("%s (%s)", s.Path, s.Origin)
}

// Load loads configuration with priority: defaults < file < flags.
// An explicit -config path must exist; otherwise ./config.yaml and the
// user config dir are tried in that order.
func Load() (*Config, error) {
	cfg := Default()

	src := Source{Origin: OriginFlag, Path: ConfigPath()}
	if src.Path == "" {
		src = findConfigFile()
	}

	if src.Path != "" {
		if err := loadFromFile(cfg, src.Path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", src, err)
		}
	}
	cfg.Source = src

	applyFlags(cfg)

	return cfg, nil
}

// findConfigFile returns the first existing config file, or the defaults
// source when there is none.
func findConfigFile() Source {
	candidates := []Source{
		{Origin: OriginWorkDir, Path: "config.yaml"},
		{Origin: OriginUserDir, Path: filepath.Join(ConfigDir(), "config.yaml")},
	}

	for _, c := range candidates {
		if info, err := os.Stat(c.Path); err == nil && !info.IsDir() {
			return c
		}
	}
	return Source{Origin: OriginDefaults}
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Orrery")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Orrery")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "orrery")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "orrery")
	}
}

// loadFromFile decodes a YAML file over cfg. Keys the config does not
// know are rejected so a misspelt body field is not silently ignored.
// A bodies list in the file replaces the default one; an empty file
// changes nothing.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
