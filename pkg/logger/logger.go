// Package logger provides the structured logging sink used across faultline.
package logger

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Logger is the logging sink consumed by the diagnostic and crash guard packages.
// Key/value pairs follow the message, as in log/slog.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)

	// With returns a child logger that adds kv to every line.
	With(kv ...any) Logger
}

// Format selects the output encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Callback receives every emitted line with its severity.
type Callback func(level zerolog.Level, line string)

// Options configures New.
type Options struct {
	// Writer is the output stream. Default: os.Stdout.
	Writer io.Writer

	// Format is the encoding. Default: FormatConsole.
	Format Format

	// Level is the minimum emitted severity. The zero value is zerolog.DebugLevel.
	Level zerolog.Level

	// Timestamp adds a time field to every line.
	Timestamp bool

	// NoColor disables ANSI colors in console output. Colors are always disabled when
	// Writer is not a terminal.
	NoColor bool

	// Quiet suppresses output to Writer. Callback still receives every line.
	Quiet bool

	// Callback, when set, is invoked for every emitted line.
	Callback Callback

	// Fields are attached to every line.
	Fields map[string]any
}

type zlogger struct {
	z zerolog.Logger
}

// New creates a zerolog-backed Logger.
func New(opts Options) Logger {
	out := opts.Writer
	if out == nil {
		out = os.Stdout
	}

	if opts.Quiet {
		out = io.Discard
	} else if opts.Format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    opts.NoColor || !isTerminal(out),
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(out).Level(opts.Level).With()
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}

	if len(opts.Fields) > 0 {
		ctx = ctx.Fields(opts.Fields)
	}

	z := ctx.Logger()
	if opts.Callback != nil {
		z = z.Hook(callbackHook{fn: opts.Callback})
	}

	return &zlogger{z: z}
}

// NewNoOpLogger returns a Logger that discards everything.
func NewNoOpLogger() Logger {
	return &zlogger{z: zerolog.Nop()}
}

func (l *zlogger) Debug(msg string, kv ...any) { l.z.Debug().Fields(kv).Msg(msg) }
func (l *zlogger) Info(msg string, kv ...any)  { l.z.Info().Fields(kv).Msg(msg) }
func (l *zlogger) Warn(msg string, kv ...any)  { l.z.Warn().Fields(kv).Msg(msg) }
func (l *zlogger) Error(msg string, kv ...any) { l.z.Error().Fields(kv).Msg(msg) }

func (l *zlogger) With(kv ...any) Logger {
	return &zlogger{z: l.z.With().Fields(kv).Logger()}
}

type callbackHook struct {
	fn Callback
}

func (h callbackHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	h.fn(level, msg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// ParseLevel parses a level name. The second result is false for empty or unknown input.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace", "diagnostics":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

// ParseBool parses a boolean flag value. The second result is false for empty or invalid input.
func ParseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}

	return v, true
}
