package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// ErrConfigExists is returned by WriteFile when the target exists and force is not set.
var ErrConfigExists = errors.New("configuration file already exists")

const header = "# faultline configuration\n\n"

// DefaultConfig returns a configuration with every default spelled out.
func DefaultConfig() *Config {
	timestamp := false
	color := true
	quiet := false
	debuggerCheck := true
	maxDumps := DefaultMaxDumps
	maxDepth := DefaultMaxDepth
	maxField := DefaultMaxFieldLength

	return &Config{
		Log: &LogConfig{
			Level:     DefaultLogLevel,
			Format:    DefaultLogFormat,
			Timestamp: &timestamp,
			Color:     &color,
			Quiet:     &quiet,
		},
		Guard: &GuardConfig{
			Label:         DefaultGuardLabel,
			DebuggerCheck: &debuggerCheck,
			ReportLevel:   DefaultReportLevel,
		},
		Dumps: &DumpConfig{
			MaxDumps: &maxDumps,
			MaxAge:   Duration(DefaultMaxAge),
		},
		Context: &ContextConfig{
			MaxDepth:       &maxDepth,
			MaxFieldLength: &maxField,
		},
	}
}

// Writer renders configurations as TOML.
type Writer struct{}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Render encodes cfg as TOML.
func (*Writer) Render(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(header)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)

	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "encoding configuration")
	}

	return buf.Bytes(), nil
}

// WriteFile writes cfg to path, creating parent directories. An existing file is only
// replaced when force is set.
func (w *Writer) WriteFile(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Wrapf(ErrConfigExists, "%s", path)
		}
	}

	data, err := w.Render(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	return nil
}
