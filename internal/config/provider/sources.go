package provider

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-labs/faultline/pkg/config"
)

// DefaultsSource provides the built-in defaults.
type DefaultsSource struct{}

// NewDefaultsSource creates a new DefaultsSource.
func NewDefaultsSource() *DefaultsSource {
	return &DefaultsSource{}
}

// Name returns the source name.
func (*DefaultsSource) Name() string {
	return "defaults"
}

// Load merges the defaults.
func (*DefaultsSource) Load(k *koanf.Koanf) error {
	defaults := map[string]any{
		"log.level":                config.DefaultLogLevel,
		"log.format":               config.DefaultLogFormat,
		"guard.label":              config.DefaultGuardLabel,
		"guard.report_level":       config.DefaultReportLevel,
		"dumps.max_dumps":          config.DefaultMaxDumps,
		"dumps.max_age":            config.DefaultMaxAge.String(),
		"context.max_depth":        config.DefaultMaxDepth,
		"context.max_field_length": config.DefaultMaxFieldLength,
	}

	return errors.Wrap(k.Load(confmap.Provider(defaults, delim), nil), "loading defaults")
}

// FileSource loads a TOML configuration file. A missing file contributes nothing.
type FileSource struct {
	name string
	path string
}

// NewGlobalFileSource creates a FileSource for the global config file.
func NewGlobalFileSource() *FileSource {
	return &FileSource{name: "global config file", path: config.GlobalConfigPath()}
}

// NewProjectFileSource creates a FileSource for the project config file in workDir.
func NewProjectFileSource(workDir string) *FileSource {
	return &FileSource{name: "project config file", path: filepath.Join(workDir, config.ProjectFileName)}
}

// NewFileSource creates a FileSource for an explicit path.
func NewFileSource(path string) *FileSource {
	return &FileSource{name: "config file " + path, path: path}
}

// Name returns the source name.
func (s *FileSource) Name() string {
	return s.name
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// IsAvailable checks if the file exists.
func (s *FileSource) IsAvailable() bool {
	if s.path == "" {
		return false
	}

	info, err := os.Stat(s.path)

	return err == nil && !info.IsDir()
}

// Load merges the file.
func (s *FileSource) Load(k *koanf.Koanf) error {
	if !s.IsAvailable() {
		return ErrNoConfig
	}

	if err := k.Load(file.Provider(s.path), toml.Parser()); err != nil {
		return errors.Wrapf(err, "parsing %s", s.path)
	}

	return nil
}

// EnvSource loads configuration from environment variables.
// Environment variables follow the pattern: FAULTLINE_SECTION_KEY
// Examples:
// - FAULTLINE_LOG_LEVEL=debug
// - FAULTLINE_DUMPS_MAX_AGE=48h
// - FAULTLINE_CONTEXT_MAX_DEPTH=64
type EnvSource struct {
	environ func() []string
}

// NewEnvSource creates a new EnvSource reading the process environment.
func NewEnvSource() *EnvSource {
	return &EnvSource{environ: os.Environ}
}

// NewEnvSourceFrom creates an EnvSource reading the given KEY=VALUE pairs.
func NewEnvSourceFrom(environ []string) *EnvSource {
	return &EnvSource{environ: func() []string { return environ }}
}

// Name returns the source name.
func (*EnvSource) Name() string {
	return "environment variables"
}

// Load merges every FAULTLINE_ variable that names a configuration key.
func (s *EnvSource) Load(k *koanf.Koanf) error {
	provider := env.Provider(delim, env.Opt{
		Prefix:        config.EnvPrefix,
		TransformFunc: envKey,
		EnvironFunc:   s.environ,
	})

	return errors.Wrap(k.Load(provider, nil), "loading environment")
}

// envKey maps FAULTLINE_DUMPS_MAX_AGE to dumps.max_age. Empty variables and variables
// without a section are dropped.
func envKey(key, value string) (string, any) {
	if value == "" {
		return "", nil
	}

	key = strings.ToLower(strings.TrimPrefix(key, config.EnvPrefix))

	section, field, ok := strings.Cut(key, "_")
	if !ok || field == "" {
		return "", nil
	}

	switch section {
	case "log", "guard", "dumps", "context":
		return section + delim + field, value
	default:
		return "", nil
	}
}

// FlagSource loads configuration from CLI flags keyed by dotted path.
type FlagSource struct {
	flags map[string]any
}

// NewFlagSource creates a new FlagSource.
func NewFlagSource(flags map[string]any) *FlagSource {
	return &FlagSource{flags: flags}
}

// Name returns the source name.
func (*FlagSource) Name() string {
	return "CLI flags"
}

// Load merges the flags.
func (s *FlagSource) Load(k *koanf.Koanf) error {
	if len(s.flags) == 0 {
		return ErrNoConfig
	}

	return errors.Wrap(k.Load(confmap.Provider(s.flags, delim), nil), "loading flags")
}
