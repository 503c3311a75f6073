// Package config provides the configuration schema of faultline.
package config

import (
	"os"
	"path/filepath"
)

const (
	// ProjectFileName is the project configuration file, looked up in the working directory.
	ProjectFileName = ".faultline.toml"

	// EnvPrefix prefixes every configuration environment variable.
	EnvPrefix = "FAULTLINE_"
)

// Config is the root configuration.
type Config struct {
	// Log configures the logging sink.
	Log *LogConfig `json:"log,omitempty" koanf:"log" toml:"log"`

	// Guard configures crash guards.
	Guard *GuardConfig `json:"guard,omitempty" koanf:"guard" toml:"guard"`

	// Dumps configures where dumps are written and how long they are kept.
	Dumps *DumpConfig `json:"dumps,omitempty" koanf:"dumps" toml:"dumps"`

	// Context configures the per-thread error context stack.
	Context *ContextConfig `json:"context,omitempty" koanf:"context" toml:"context"`
}

// GetLog returns the log section, creating it if it doesn't exist.
func (c *Config) GetLog() *LogConfig {
	if c.Log == nil {
		c.Log = &LogConfig{}
	}

	return c.Log
}

// GetGuard returns the guard section, creating it if it doesn't exist.
func (c *Config) GetGuard() *GuardConfig {
	if c.Guard == nil {
		c.Guard = &GuardConfig{}
	}

	return c.Guard
}

// GetDumps returns the dumps section, creating it if it doesn't exist.
func (c *Config) GetDumps() *DumpConfig {
	if c.Dumps == nil {
		c.Dumps = &DumpConfig{}
	}

	return c.Dumps
}

// GetContext returns the context section, creating it if it doesn't exist.
func (c *Config) GetContext() *ContextConfig {
	if c.Context == nil {
		c.Context = &ContextConfig{}
	}

	return c.Context
}

// GlobalConfigPath returns the path of the global configuration file.
func GlobalConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}

		dir = filepath.Join(home, ".config")
	}

	return filepath.Join(dir, "faultline", "config.toml")
}
