//go:build noerrcontext

package diag

// ContextEnabled reports whether the error context stack is compiled in.
const ContextEnabled = false

// ContextStack is compiled out in this build. All operations are no-ops.
type ContextStack struct{}

// NewContextStack returns a stack that records nothing.
func NewContextStack(int, int) *ContextStack {
	return &ContextStack{}
}

// OnOverflow does nothing.
func (*ContextStack) OnOverflow(func(Frame, int)) {}

// Push does nothing.
func (*ContextStack) Push(string, string) {}

// Pop does nothing.
func (*ContextStack) Pop() {}

// Current always returns nil.
func (*ContextStack) Current() *ErrorContext {
	return nil
}

// Frames always returns nil.
func (*ContextStack) Frames() []Frame {
	return nil
}

// MaxDepth returns zero.
func (*ContextStack) MaxDepth() int {
	return 0
}
