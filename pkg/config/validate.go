package config

import (
	"github.com/cockroachdb/errors"

	"github.com/smykla-labs/faultline/pkg/errcode"
	"github.com/smykla-labs/faultline/pkg/logger"
)

var (
	// ErrInvalidLogLevel is returned for an unknown log or report level.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat is returned for an unknown log format.
	ErrInvalidLogFormat = errors.New("invalid log format")

	// ErrInvalidDepth is returned when the context depth is below the minimum.
	ErrInvalidDepth = errors.New("invalid context depth")

	// ErrInvalidFieldLength is returned for a non-positive field length.
	ErrInvalidFieldLength = errors.New("invalid context field length")

	// ErrInvalidMaxDumps is returned for a negative dump count.
	ErrInvalidMaxDumps = errors.New("invalid max dumps")
)

// minDepth mirrors diag.MinMaxDepth without importing diag into the schema.
const minDepth = 2

// Validate checks a configuration. Nil sections are valid.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if cfg.Log != nil {
		if cfg.Log.Level != "" {
			if _, ok := logger.ParseLevel(cfg.Log.Level); !ok {
				return errors.Wrapf(ErrInvalidLogLevel, "log.level %q", cfg.Log.Level)
			}
		}

		switch logger.Format(cfg.Log.GetFormat()) {
		case logger.FormatConsole, logger.FormatJSON:
		default:
			return errors.Wrapf(ErrInvalidLogFormat, "log.format %q", cfg.Log.Format)
		}
	}

	if cfg.Guard != nil && cfg.Guard.ReportLevel != "" {
		if _, err := errcode.LevelString(cfg.Guard.ReportLevel); err != nil {
			return errors.Wrapf(ErrInvalidLogLevel, "guard.report_level %q", cfg.Guard.ReportLevel)
		}
	}

	if cfg.Context != nil {
		if depth := cfg.Context.GetMaxDepth(); depth < minDepth {
			return errors.Wrapf(ErrInvalidDepth, "context.max_depth %d is below %d", depth, minDepth)
		}

		if n := cfg.Context.GetMaxFieldLength(); n <= 0 {
			return errors.Wrapf(ErrInvalidFieldLength, "context.max_field_length %d", n)
		}
	}

	if cfg.Dumps != nil {
		if n := cfg.Dumps.GetMaxDumps(); n < 0 {
			return errors.Wrapf(ErrInvalidMaxDumps, "dumps.max_dumps %d", n)
		}
	}

	return nil
}
