package config

import (
	"time"

	"github.com/smykla-labs/faultline/pkg/errcode"
)

const (
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultGuardLabel     = "faultline"
	DefaultReportLevel    = "debug"
	DefaultMaxDumps       = 20
	DefaultMaxAge         = 7 * 24 * time.Hour
	DefaultMaxDepth       = 32
	DefaultMaxFieldLength = 256
)

// LogConfig configures the logging sink.
type LogConfig struct {
	// Level is the minimum level written (trace, debug, info, warn, error, disabled).
	// Default: "info"
	Level string `json:"level,omitempty" koanf:"level" toml:"level"`

	// Format is the output encoding (console, json).
	// Default: "console"
	Format string `json:"format,omitempty" koanf:"format" toml:"format"`

	// Timestamp adds a timestamp to every line.
	// Default: false
	Timestamp *bool `json:"timestamp,omitempty" koanf:"timestamp" toml:"timestamp"`

	// Color enables colored console output when writing to a terminal.
	// Default: true
	Color *bool `json:"color,omitempty" koanf:"color" toml:"color"`

	// Quiet suppresses output; callbacks still receive lines.
	// Default: false
	Quiet *bool `json:"quiet,omitempty" koanf:"quiet" toml:"quiet"`
}

// GetLevel returns the log level, defaulting to "info".
func (l *LogConfig) GetLevel() string {
	if l == nil || l.Level == "" {
		return DefaultLogLevel
	}

	return l.Level
}

// GetFormat returns the log format, defaulting to "console".
func (l *LogConfig) GetFormat() string {
	if l == nil || l.Format == "" {
		return DefaultLogFormat
	}

	return l.Format
}

// IsTimestampEnabled returns whether lines carry a timestamp.
func (l *LogConfig) IsTimestampEnabled() bool {
	if l == nil || l.Timestamp == nil {
		return false
	}

	return *l.Timestamp
}

// IsColorEnabled returns whether console output may be colored.
func (l *LogConfig) IsColorEnabled() bool {
	if l == nil || l.Color == nil {
		return true
	}

	return *l.Color
}

// IsQuiet returns whether output is suppressed.
func (l *LogConfig) IsQuiet() bool {
	if l == nil || l.Quiet == nil {
		return false
	}

	return *l.Quiet
}

// GuardConfig configures crash guards.
type GuardConfig struct {
	// Label is the default guard label.
	// Default: "faultline"
	Label string `json:"label,omitempty" koanf:"label" toml:"label"`

	// DebuggerCheck skips guarded work when a debugger is attached.
	// Default: true
	DebuggerCheck *bool `json:"debugger_check,omitempty" koanf:"debugger_check" toml:"debugger_check"`

	// ReportLevel is the lowest error level whose reports log the error context.
	// Default: "debug"
	ReportLevel string `json:"report_level,omitempty" koanf:"report_level" toml:"report_level"`
}

// GetLabel returns the guard label, defaulting to "faultline".
func (g *GuardConfig) GetLabel() string {
	if g == nil || g.Label == "" {
		return DefaultGuardLabel
	}

	return g.Label
}

// IsDebuggerCheckEnabled returns whether guards look for a debugger.
func (g *GuardConfig) IsDebuggerCheckEnabled() bool {
	if g == nil || g.DebuggerCheck == nil {
		return true
	}

	return *g.DebuggerCheck
}

// GetReportLevel returns the parsed report level. Unknown names yield LevelDebug; Validate
// rejects them.
func (g *GuardConfig) GetReportLevel() errcode.Level {
	name := DefaultReportLevel
	if g != nil && g.ReportLevel != "" {
		name = g.ReportLevel
	}

	level, err := errcode.LevelString(name)
	if err != nil {
		return errcode.LevelDebug
	}

	return level
}

// DumpConfig configures dump storage.
type DumpConfig struct {
	// Dir is the dump directory.
	// Default: "" (the faultline directory under the system temp dir)
	Dir string `json:"dir,omitempty" koanf:"dir" toml:"dir"`

	// MaxDumps is the number of dumps kept by prune. Zero keeps all.
	// Default: 20
	MaxDumps *int `json:"max_dumps,omitempty" koanf:"max_dumps" toml:"max_dumps"`

	// MaxAge is the age after which prune removes dumps. Zero keeps all.
	// Default: "168h" (7 days)
	MaxAge Duration `json:"max_age,omitempty" koanf:"max_age" toml:"max_age"`
}

// GetMaxDumps returns the retained dump count, defaulting to 20.
func (d *DumpConfig) GetMaxDumps() int {
	if d == nil || d.MaxDumps == nil {
		return DefaultMaxDumps
	}

	return *d.MaxDumps
}

// GetMaxAge returns the dump retention age, defaulting to 7 days.
func (d *DumpConfig) GetMaxAge() time.Duration {
	if d == nil || d.MaxAge == 0 {
		return DefaultMaxAge
	}

	return d.MaxAge.ToDuration()
}

// ContextConfig configures the error context stack.
type ContextConfig struct {
	// MaxDepth is the number of frames kept before the oldest is evicted.
	// Default: 32
	MaxDepth *int `json:"max_depth,omitempty" koanf:"max_depth" toml:"max_depth"`

	// MaxFieldLength is the byte limit of frame names and data.
	// Default: 256
	MaxFieldLength *int `json:"max_field_length,omitempty" koanf:"max_field_length" toml:"max_field_length"`
}

// GetMaxDepth returns the context depth, defaulting to 32.
func (c *ContextConfig) GetMaxDepth() int {
	if c == nil || c.MaxDepth == nil {
		return DefaultMaxDepth
	}

	return *c.MaxDepth
}

// GetMaxFieldLength returns the field byte limit, defaulting to 256.
func (c *ContextConfig) GetMaxFieldLength() int {
	if c == nil || c.MaxFieldLength == nil {
		return DefaultMaxFieldLength
	}

	return *c.MaxFieldLength
}
