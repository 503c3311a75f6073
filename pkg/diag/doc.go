// Package diag keeps per-thread diagnostic state: a read-once error register and a bounded
// stack of named context frames that give reported errors their provenance.
//
// Go has no goroutine-local storage, so the per-thread state is an explicit *State value. Each
// goroutine owns its State exclusively and never shares it, which is what lets every operation run
// without locks. Threads started through package thread get one automatically; other goroutines
// create one with NewState and may carry it in a context.Context with WithState.
//
// # Error register
//
// Report stores an error code; Error returns it and resets the register to errcode.None, so each
// reported code is observed by at most one reader:
//
//	st.Report(errcode.LevelWarning, errcode.AccessDenied)
//	st.Error() // errcode.AccessDenied
//	st.Error() // errcode.None
//
// # Error context
//
// PushContext and PopContext maintain a stack of frames. Reporting an error logs one line per
// frame, outermost first:
//
//	When loading config: /etc/app.toml
//
// The stack has a fixed maximum depth. Pushing beyond it evicts the oldest frame and logs a
// warning. Popping an empty stack does nothing.
//
// Building with the noerrcontext tag compiles the context stack out: push and pop become no-ops
// and Context always returns nil. ContextEnabled reports which variant was built.
package diag
