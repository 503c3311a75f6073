package crashguard

import (
	"fmt"
	"runtime/debug"

	"github.com/cockroachdb/errors"

	"github.com/smykla-labs/faultline/internal/crashdump"
	"github.com/smykla-labs/faultline/internal/debugger"
	"github.com/smykla-labs/faultline/pkg/diag"
	"github.com/smykla-labs/faultline/pkg/thread"
)

type runConfig struct {
	state    *diag.State
	threadID thread.ID
	attached func() bool
}

// RunOption configures a single guarded call.
type RunOption func(*runConfig)

// WithDiag includes the error context and last error of st in the dump.
func WithDiag(st *diag.State) RunOption {
	return func(c *runConfig) {
		c.state = st
	}
}

// WithThread records the calling thread in the dump.
func WithThread(id thread.ID) RunOption {
	return func(c *runConfig) {
		c.threadID = id
	}
}

// WithDebuggerCheck replaces the debugger detection used by RunChecked.
func WithDebuggerCheck(attached func() bool) RunOption {
	return func(c *runConfig) {
		c.attached = attached
	}
}

func newRunConfig(opts []RunOption) runConfig {
	cfg := runConfig{attached: debugger.Attached}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Run calls work(arg) under a guard labelled label. A nil engine means Default().
//
// If work returns normally its result is returned with StatusCompleted. If it faults the
// fault is contained, handler is called once and the zero R is returned with
// StatusDumpGenerated or StatusDumpFailed.
func Run[A, R any](
	e *Engine,
	work func(A) R,
	arg A,
	handler DumpHandler,
	label string,
	opts ...RunOption,
) (result R, status Status) {
	if e == nil {
		e = Default()
	}

	if !interceptionSupported {
		return work(arg), StatusCompleted
	}

	cfg := newRunConfig(opts)

	sc := e.newScope()
	sc.arm(registration{handler: handler, label: label})

	prev := armFaults()

	defer func() {
		p := recover()

		restoreFaults(prev)

		if p == nil {
			sc.to(StateUnarmed)
			return
		}

		var zero R

		result = zero
		status = e.contain(sc, p, debug.Stack(), cfg)
	}()

	return work(arg), StatusCompleted
}

// RunChecked behaves like Run unless a debugger is attached, in which case work is not
// called and StatusDebuggerPresentSkipped is returned.
func RunChecked[A, R any](
	e *Engine,
	work func(A) R,
	arg A,
	handler DumpHandler,
	label string,
	opts ...RunOption,
) (R, Status) {
	if e == nil {
		e = Default()
	}

	cfg := newRunConfig(opts)

	if cfg.attached != nil && cfg.attached() {
		e.log.Info("debugger attached, guard not armed", "label", label)

		var zero R

		return zero, StatusDebuggerPresentSkipped
	}

	return Run(e, work, arg, handler, label, opts...)
}

// RunThread runs a thread body. Faults are contained when a registration for id, or the
// process-wide one, exists at the time of the fault; otherwise they propagate.
func (e *Engine) RunThread(id thread.ID, st *diag.State, body func()) (crashed bool) {
	if !interceptionSupported {
		body()
		return false
	}

	cfg := runConfig{state: st, threadID: id}

	sc := e.newScope()
	if reg, ok := e.lookup(id); ok {
		sc.arm(reg)
	}

	prev := armFaults()

	defer e.ClearGuardFor(id)

	defer func() {
		p := recover()

		restoreFaults(prev)

		if p == nil {
			if sc.state == StateArmed {
				sc.to(StateUnarmed)
			}

			return
		}

		reg, ok := e.lookup(id)
		if !ok {
			panic(p)
		}

		if sc.state == StateUnarmed {
			sc.arm(reg)
		} else {
			sc.label, sc.handler = reg.label, reg.handler
		}

		e.contain(sc, p, debug.Stack(), cfg)

		crashed = true
	}()

	body()

	return false
}

// contain handles a recovered fault. A fault raised while handling escapes as a
// *ReentrantFault, and a *ReentrantFault is always re-raised.
func (e *Engine) contain(sc *scope, p any, stack []byte, cfg runConfig) Status {
	if rf, ok := p.(*ReentrantFault); ok {
		panic(rf)
	}

	sc.to(StateFaulted)

	fault := classify(p, stack)

	e.metrics.Fault(fault.Kind.String())
	e.log.Error("fault contained",
		"label", sc.label,
		"kind", fault.Kind.String(),
		"value", fmt.Sprint(fault.Value),
	)

	defer func() {
		if q := recover(); q != nil {
			sc.to(StateDisarmedOnReentrantFault)
			e.metrics.Reentrant()
			e.log.Error("fault while handling fault", "label", sc.label, "value", fmt.Sprint(q))

			panic(&ReentrantFault{Label: sc.label, First: fault, Second: q})
		}
	}()

	sc.to(StateDumping)

	status := StatusDumpGenerated

	path, err := e.writeDump(sc.label, fault, cfg)
	if err != nil {
		status = StatusDumpFailed
		path = ""

		e.metrics.Dump("failed")
		e.log.Error("writing dump failed", "label", sc.label, "error", err.Error())
	} else {
		e.metrics.Dump("generated")
		e.log.Info("dump written", "label", sc.label, "path", path)
	}

	sc.to(StateCallback)

	if sc.handler != nil {
		sc.handler(path)
	}

	sc.to(StateResumed)

	return status
}

func (e *Engine) writeDump(label string, fault Fault, cfg runConfig) (string, error) {
	info := e.writer.NewCrashInfo(label)
	if info == nil {
		return "", errors.New("dump writer returned no crash info")
	}

	info.FaultKind = fault.Kind.String()
	info.PanicValue = fmt.Sprint(fault.Value)
	info.FaultAddr = fault.Addr
	info.StackTrace = string(fault.Stack)

	if cfg.threadID != 0 {
		info.Thread = &crashdump.ThreadInfo{ID: uint64(cfg.threadID)}
	}

	if st := cfg.state; st != nil {
		for _, f := range st.Frames() {
			info.Context = append(info.Context, crashdump.ContextFrame{Name: f.Name, Data: f.Data})
		}

		if code := st.LastError(); !code.IsNone() {
			info.LastError = code.String()
		}
	}

	path, err := e.writer.Write(info)
	if err != nil {
		return "", errors.Wrapf(err, "writing dump for %q", label)
	}

	return path, nil
}
