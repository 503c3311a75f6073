// Package thread runs units of work on their own goroutines with a stable identity, a priority
// hint and exclusively owned diagnostic state.
//
// Thread bodies run under the Guard configured with WithGuard, or the process default installed
// with SetDefaultGuard when none was given. Without a guard a faulting body terminates the
// process, exactly as a bare goroutine would.
//
// Go cannot stop a goroutine from the outside. Terminate cancels the thread's context; bodies
// that run for long should watch Context().Done().
package thread

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/smykla-labs/faultline/pkg/diag"
)

var (
	// ErrNotStarted is returned when joining a thread that was never started.
	ErrNotStarted = errors.New("thread not started")

	// ErrAlreadyStarted is returned when starting a thread twice.
	ErrAlreadyStarted = errors.New("thread already started")

	// ErrNoGuard is returned by SetGuard when the thread has no guard.
	ErrNoGuard = errors.New("thread has no crash guard")
)

// ID identifies a thread for the lifetime of the process. Zero is never assigned.
type ID uint64

// Func is a thread body. Its return value becomes the thread result.
type Func func(t *Thread, arg any) any

// Guard intercepts faults raised by thread bodies.
type Guard interface {
	// RunThread runs body for thread id and reports whether a fault was contained.
	RunThread(id ID, st *diag.State, body func()) bool

	// SetGuardFor installs a registration that applies to thread id only.
	SetGuardFor(id ID, handler func(path string), label string)
}

type guardHolder struct {
	guard Guard
}

var (
	lastID       atomic.Uint64
	defaultGuard atomic.Pointer[guardHolder]
)

// SetDefaultGuard sets the guard used by threads created without WithGuard. Passing nil
// removes it. Threads resolve their guard when started.
func SetDefaultGuard(g Guard) {
	if g == nil {
		defaultGuard.Store(nil)
		return
	}

	defaultGuard.Store(&guardHolder{guard: g})
}

// DefaultGuard returns the guard set with SetDefaultGuard, or nil.
func DefaultGuard() Guard {
	if h := defaultGuard.Load(); h != nil {
		return h.guard
	}

	return nil
}

// Thread is a goroutine with identity and owned diagnostic state.
type Thread struct {
	id       ID
	name     string
	priority Priority
	fn       Func

	guard   Guard
	state   *diag.State
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	started chan struct{}
	done    chan struct{}

	startOnce sync.Once
	running   atomic.Bool
	crashed   atomic.Bool
	result    any
}

// Option configures a Thread.
type Option func(*Thread)

// WithGuard sets the guard for this thread, overriding the process default.
func WithGuard(g Guard) Option {
	return func(t *Thread) { t.guard = g }
}

// WithDiag configures the thread's diagnostic state.
func WithDiag(opts ...diag.Option) Option {
	return func(t *Thread) { t.state = diag.NewState(opts...) }
}

// WithContext sets the parent context. Cancelling it terminates the thread.
func WithContext(ctx context.Context) Option {
	return func(t *Thread) {
		if ctx != nil {
			t.parent = ctx
		}
	}
}

// New creates a thread. It does not start it.
func New(fn Func, name string, priority Priority, opts ...Option) *Thread {
	t := &Thread{
		id:       ID(lastID.Add(1)),
		name:     name,
		priority: priority,
		fn:       fn,
		parent:   context.Background(),
		started:  make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	if t.state == nil {
		t.state = diag.NewState()
	}

	ctx, cancel := context.WithCancel(diag.WithState(t.parent, t.state))
	t.ctx = ctx
	t.cancel = cancel

	return t
}

// Start runs the body with arg on a new goroutine.
func (t *Thread) Start(arg any) error {
	err := ErrAlreadyStarted

	t.startOnce.Do(func() {
		err = nil

		if t.guard == nil {
			t.guard = DefaultGuard()
		}

		t.running.Store(true)

		go t.run(arg)
	})

	return err
}

func (t *Thread) run(arg any) {
	defer close(t.done)
	defer t.cancel()
	defer t.running.Store(false)

	close(t.started)

	body := func() {
		t.result = t.fn(t, arg)
	}

	if t.guard == nil {
		body()
		return
	}

	if t.guard.RunThread(t.id, t.state, body) {
		t.crashed.Store(true)
	}
}

// Join waits for the thread to finish and returns its result.
func (t *Thread) Join(ctx context.Context) (any, error) {
	if !t.IsStarted() {
		return nil, ErrNotStarted
	}

	select {
	case <-t.done:
		return t.result, nil
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "joining thread %q", t.name)
	}
}

// Terminate asks the thread to stop by cancelling its context.
func (t *Thread) Terminate() {
	t.cancel()
}

// SetGuard installs a crash guard registration for the remaining lifetime of this thread.
// It is meant to be called from the thread body.
func (t *Thread) SetGuard(handler func(path string), label string) error {
	g := t.guard
	if g == nil {
		g = DefaultGuard()
	}

	if g == nil {
		return ErrNoGuard
	}

	g.SetGuardFor(t.id, handler, label)

	return nil
}

// ID returns the thread identity.
func (t *Thread) ID() ID { return t.id }

// Name returns the thread name.
func (t *Thread) Name() string { return t.name }

// Priority returns the priority hint.
func (t *Thread) Priority() Priority { return t.priority }

// Diag returns the thread's diagnostic state. Only the thread body may use it while running.
func (t *Thread) Diag() *diag.State { return t.state }

// Context returns the thread context. It carries the diagnostic state and is cancelled by
// Terminate or when the body returns.
func (t *Thread) Context() context.Context { return t.ctx }

// Done is closed when the body has returned.
func (t *Thread) Done() <-chan struct{} { return t.done }

// IsStarted reports whether Start was called.
func (t *Thread) IsStarted() bool {
	select {
	case <-t.started:
		return true
	default:
		return t.running.Load()
	}
}

// IsRunning reports whether the body is executing.
func (t *Thread) IsRunning() bool {
	return t.running.Load()
}

// Crashed reports whether the guard contained a fault raised by the body.
func (t *Thread) Crashed() bool {
	return t.crashed.Load()
}
