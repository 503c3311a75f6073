package crashguard

import (
	"sync"
	"sync/atomic"

	"github.com/smykla-labs/faultline/internal/crashdump"
	"github.com/smykla-labs/faultline/internal/metrics"
	"github.com/smykla-labs/faultline/pkg/logger"
	"github.com/smykla-labs/faultline/pkg/thread"
)

//go:generate go tool mockgen -source=engine.go -destination=mock_dumpwriter_test.go -package=crashguard_test DumpWriter

// DumpHandler receives the path of the written dump, or "" when the dump failed.
//
// It runs while a fault is being handled and must not fault itself: a fault raised by the
// handler terminates the process.
type DumpHandler = func(path string)

// DumpWriter synthesizes and persists dumps.
type DumpWriter interface {
	NewCrashInfo(label string) *crashdump.CrashInfo
	Write(info *crashdump.CrashInfo) (string, error)
}

// StateObserver is told about every scope state transition.
type StateObserver func(label string, from, to GuardState)

type registration struct {
	handler DumpHandler
	label   string
}

// registry is immutable once published. Writers copy it under Engine.mu.
type registry struct {
	process *registration
	threads map[thread.ID]registration
}

func (r *registry) clone() *registry {
	next := &registry{
		process: r.process,
		threads: make(map[thread.ID]registration, len(r.threads)),
	}

	for id, reg := range r.threads {
		next.threads[id] = reg
	}

	return next
}

// Engine runs guarded work and owns thread guard registrations.
type Engine struct {
	writer   DumpWriter
	dumpDir  string
	version  string
	log      logger.Logger
	metrics  *metrics.Recorder
	observer StateObserver

	mu  sync.Mutex
	reg atomic.Pointer[registry]
}

// Option configures an Engine.
type Option func(*Engine)

// WithDumpWriter sets the dump writer.
func WithDumpWriter(w DumpWriter) Option {
	return func(e *Engine) {
		if w != nil {
			e.writer = w
		}
	}
}

// WithDumpDir sets the directory of the default dump writer. It has no effect together with
// WithDumpWriter.
func WithDumpDir(dir string) Option {
	return func(e *Engine) {
		e.dumpDir = dir
	}
}

// WithVersion sets the application version recorded by the default dump writer.
func WithVersion(version string) Option {
	return func(e *Engine) {
		e.version = version
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(e *Engine) {
		e.metrics = rec
	}
}

// WithStateObserver sets a callback receiving scope state transitions.
func WithStateObserver(fn StateObserver) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// New creates an Engine. Without options dumps go to crashdump.DefaultDir and nothing is
// logged or counted.
func New(opts ...Option) *Engine {
	e := &Engine{
		log: logger.NewNoOpLogger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.writer == nil {
		e.writer = crashdump.NewWriter(e.dumpDir, crashdump.WithVersion(e.version))
	}

	e.reg.Store(&registry{threads: map[thread.ID]registration{}})

	return e
}

var (
	defaultMu     sync.Mutex
	defaultEngine *Engine
)

// Default returns the process-wide engine, creating it on first use.
func Default() *Engine {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultEngine == nil {
		defaultEngine = New(WithMetrics(metrics.Default()))
	}

	return defaultEngine
}

// SetDefault replaces the process-wide engine.
func SetDefault(e *Engine) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultEngine = e
}

func (e *Engine) update(fn func(r *registry)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.reg.Load().clone()
	fn(next)
	e.reg.Store(next)
}

// lookup is lock-free so it can run on the fault path.
func (e *Engine) lookup(id thread.ID) (registration, bool) {
	r := e.reg.Load()

	if reg, ok := r.threads[id]; ok {
		return reg, true
	}

	if r.process != nil {
		return *r.process, true
	}

	return registration{}, false
}

// SetThreadGuard installs the process-wide thread guard registration and makes the engine
// the default guard of package thread. It replaces any earlier registration.
func (e *Engine) SetThreadGuard(handler DumpHandler, label string) {
	e.update(func(r *registry) {
		r.process = &registration{handler: handler, label: label}
	})

	thread.SetDefaultGuard(e)

	e.log.Debug("thread guard installed", "label", label)
}

// ClearThreadGuard removes the process-wide registration. Thread faults are no longer
// contained unless a per-thread registration exists.
func (e *Engine) ClearThreadGuard() {
	e.update(func(r *registry) {
		r.process = nil
	})
}

// SetGuardFor installs a registration for a single thread. It takes precedence over the
// process-wide registration.
func (e *Engine) SetGuardFor(id thread.ID, handler func(path string), label string) {
	e.update(func(r *registry) {
		r.threads[id] = registration{handler: handler, label: label}
	})

	e.log.Debug("thread guard installed", "label", label, "thread", uint64(id))
}

// ClearGuardFor removes the registration of a single thread.
func (e *Engine) ClearGuardFor(id thread.ID) {
	if _, ok := e.reg.Load().threads[id]; !ok {
		return
	}

	e.update(func(r *registry) {
		delete(r.threads, id)
	})
}

var _ thread.Guard = (*Engine)(nil)
