// Package crashguard runs work under a guard that contains otherwise fatal faults.
//
// A guarded call arms fault interception for the calling goroutine
// (runtime/debug.SetPanicOnFault) and recovers any panic raised by the work: memory faults,
// nil dereferences, integer division by zero, other runtime errors and explicit panics. On a
// fault the engine writes a dump, calls the dump handler exactly once with the dump path, and
// returns StatusDumpGenerated to the guard's caller. If the dump cannot be written the handler
// still runs, with an empty path, and the status is StatusDumpFailed.
//
//	_, status := crashguard.Run(engine, work, arg, func(path string) {
//		telemetry.ReportCrash(path)
//	}, "import")
//
// Control resumes at the guard by unwinding: deferred calls of the faulted frames still run,
// but execution never continues inside them.
//
// Faults the Go runtime treats as fatal (concurrent map writes, stack exhaustion, out of
// memory) cannot be contained and terminate the process as they would without a guard.
//
// # Debuggers
//
// Run does not look for a debugger. Callers that may run under one use RunChecked, which
// skips the work and returns StatusDebuggerPresentSkipped when a debugger is attached.
//
// # Thread guards
//
// SetThreadGuard installs a registration consulted by thread bodies started through package
// thread; it stays armed for each thread's whole lifetime. SetGuardFor installs one for a
// single thread and takes precedence. Registrations follow last-writer-wins.
//
// # Reentrant faults
//
// A fault raised while a fault is being handled (inside dump synthesis or the dump handler)
// is never contained. It propagates as a *ReentrantFault panic through every enclosing guard
// and terminates the process.
//
// On js and wasip1 guards degrade to plain invocation.
package crashguard
