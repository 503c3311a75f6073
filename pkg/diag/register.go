package diag

import "github.com/smykla-labs/faultline/pkg/errcode"

// Register is a single-slot error code cell with read-once semantics.
// It must only be used by the goroutine that owns it.
type Register struct {
	current errcode.Code
}

// Set stores code, replacing any unread value.
func (r *Register) Set(code errcode.Code) {
	r.current = code
}

// Read returns the stored code and resets the register to errcode.None.
func (r *Register) Read() errcode.Code {
	code := r.current
	r.current = errcode.None

	return code
}

// Peek returns the stored code without resetting it.
func (r *Register) Peek() errcode.Code {
	return r.current
}
