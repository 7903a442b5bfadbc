// Package config loads the artifact capture configuration: the artifacts
// root directory and a per-plugin capture mode. It is consumed by the
// top-level façade to decide which plugin factories to register; the manager
// itself never reads configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode controls when a plugin keeps its artifacts.
type Mode string

const (
	// ModeNone disables the plugin entirely.
	ModeNone Mode = "none"
	// ModeFailing keeps artifacts of failing tests only.
	ModeFailing Mode = "failing"
	// ModeAll keeps artifacts of every test.
	ModeAll Mode = "all"
)

// PluginConfig is the per-plugin section of the capture configuration.
type PluginConfig struct {
	// Mode decides when the plugin keeps artifacts; empty means ModeNone.
	Mode Mode `yaml:"mode"`
}

// Config is the root capture configuration.
type Config struct {
	// RootDir is the artifacts root directory.
	RootDir string `yaml:"rootDir"`
	// Plugins maps plugin-kind identifiers to their capture settings.
	// Plugins absent from the map are disabled.
	Plugins map[string]PluginConfig `yaml:"plugins"`
}

// Default returns a configuration with the artifacts root set to "artifacts"
// and no plugins enabled.
func Default() Config {
	return Config{RootDir: "artifacts", Plugins: map[string]PluginConfig{}}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks modes and the root directory.
func (c Config) Validate() error {
	if c.RootDir == "" {
		return fmt.Errorf("rootDir must not be empty")
	}
	for name, pc := range c.Plugins {
		switch pc.Mode {
		case "", ModeNone, ModeFailing, ModeAll:
		default:
			return fmt.Errorf("plugin %s: unknown mode %q", name, pc.Mode)
		}
	}
	return nil
}

// PluginMode returns the effective mode for a plugin kind; ModeNone when the
// plugin is not configured.
func (c Config) PluginMode(name string) Mode {
	pc, ok := c.Plugins[name]
	if !ok || pc.Mode == "" {
		return ModeNone
	}
	return pc.Mode
}

// PluginEnabled reports whether a plugin kind should be registered.
func (c Config) PluginEnabled(name string) bool {
	return c.PluginMode(name) != ModeNone
}
