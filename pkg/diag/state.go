package diag

import (
	"fmt"

	"github.com/smykla-labs/faultline/internal/metrics"
	"github.com/smykla-labs/faultline/pkg/errcode"
	"github.com/smykla-labs/faultline/pkg/logger"
)

// State is the diagnostic state of one thread: its error register and its lazily created
// context stack. A State must only be used by the goroutine that owns it.
type State struct {
	register Register
	stack    *ContextStack

	log         logger.Logger
	metrics     *metrics.Recorder
	maxDepth    int
	maxField    int
	reportLevel errcode.Level
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the sink for context lines and overflow warnings.
func WithLogger(log logger.Logger) Option {
	return func(s *State) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics sets the recorder for report and overflow counters.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *State) { s.metrics = rec }
}

// WithMaxDepth sets the context stack capacity. Values below MinMaxDepth are ignored.
func WithMaxDepth(depth int) Option {
	return func(s *State) {
		if depth >= MinMaxDepth {
			s.maxDepth = depth
		}
	}
}

// WithMaxFieldLength sets the byte limit for frame names and data.
func WithMaxFieldLength(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.maxField = n
		}
	}
}

// WithReportLevel sets the minimum level at which Report logs the error context.
// The default logs on every report.
func WithReportLevel(level errcode.Level) Option {
	return func(s *State) { s.reportLevel = level }
}

// NewState creates the diagnostic state for one thread.
func NewState(opts ...Option) *State {
	s := &State{
		log:         logger.NewNoOpLogger(),
		maxDepth:    DefaultMaxDepth,
		maxField:    DefaultMaxFieldLength,
		reportLevel: errcode.LevelNone,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Report records code and, when level reaches the report threshold, logs the current error
// context. The context lines are emitted before Report returns.
func (s *State) Report(level errcode.Level, code errcode.Code) {
	s.register.Set(code)
	s.metrics.Report(level.String())

	if level.AtLeast(s.reportLevel) {
		s.LogContext(level)
	}
}

// Error returns the last reported code and resets the register.
func (s *State) Error() errcode.Code {
	return s.register.Read()
}

// LastError returns the last reported code without resetting the register.
func (s *State) LastError() errcode.Code {
	return s.register.Peek()
}

// PushContext pushes a named frame onto the error context stack.
func (s *State) PushContext(name, data string) {
	if !ContextEnabled {
		return
	}

	if s.stack == nil {
		s.stack = NewContextStack(s.maxDepth, s.maxField)
		s.stack.OnOverflow(s.overflow)
	}

	s.stack.Push(name, data)
}

// PopContext removes the innermost frame. It is a no-op on an empty or never used stack.
func (s *State) PopContext() {
	if s.stack == nil {
		return
	}

	s.stack.Pop()
}

// Context returns the live error context, or nil when the feature is compiled out or nothing
// was ever pushed by this thread.
func (s *State) Context() *ErrorContext {
	if s.stack == nil {
		return nil
	}

	return s.stack.Current()
}

// Frames returns a copy of the current frames, outermost first.
func (s *State) Frames() []Frame {
	return s.stack.Frames()
}

// LogContext writes one line per context frame, outermost first, at level.
func (s *State) LogContext(level errcode.Level) {
	ctx := s.Context()
	if ctx == nil {
		return
	}

	for _, frame := range ctx.Frame {
		s.emit(level, FormatFrame(frame))
	}
}

// Warnf logs the error context followed by a warning message.
func (s *State) Warnf(format string, args ...any) {
	s.LogContext(errcode.LevelWarning)
	s.log.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs the error context and an error message, then records code.
// The context is logged once.
func (s *State) Errorf(level errcode.Level, code errcode.Code, format string, args ...any) {
	s.LogContext(errcode.LevelError)
	s.log.Error(fmt.Sprintf(format, args...), "code", code.String())

	s.register.Set(code)
	s.metrics.Report(level.String())
}

func (s *State) overflow(evicted Frame, depth int) {
	s.metrics.ContextOverflow()
	s.log.Warn("error context overflow, evicted oldest frame",
		"max_depth", depth,
		"evicted", evicted.Name,
	)
}

func (s *State) emit(level errcode.Level, line string) {
	switch level {
	case errcode.LevelNone, errcode.LevelDebug:
		s.log.Debug(line)
	case errcode.LevelInfo:
		s.log.Info(line)
	case errcode.LevelWarning:
		s.log.Warn(line)
	default:
		s.log.Error(line)
	}
}
