//go:build !noerrcontext

package diag

// ContextEnabled reports whether the error context stack is compiled in.
const ContextEnabled = true

// ContextStack is a bounded stack of frames owned by a single goroutine.
type ContextStack struct {
	frames     []Frame
	view       ErrorContext
	maxField   int
	onOverflow func(evicted Frame, depth int)
}

// NewContextStack creates a stack holding at most maxDepth frames, each field truncated to
// maxField bytes. Values below the minimums fall back to the defaults.
func NewContextStack(maxDepth, maxField int) *ContextStack {
	if maxDepth < MinMaxDepth {
		maxDepth = DefaultMaxDepth
	}

	if maxField <= 0 {
		maxField = DefaultMaxFieldLength
	}

	s := &ContextStack{
		frames:   make([]Frame, maxDepth),
		maxField: maxField,
	}
	s.view.Frame = s.frames[:0]

	return s
}

// OnOverflow sets the function called after a push evicted the oldest frame.
func (s *ContextStack) OnOverflow(fn func(evicted Frame, depth int)) {
	s.onOverflow = fn
}

// Push appends a frame. When the stack is full the oldest frame is evicted first.
func (s *ContextStack) Push(name, data string) {
	frame := Frame{
		Name: truncate(name, s.maxField),
		Data: truncate(data, s.maxField),
	}

	depth := s.view.Depth
	if depth == len(s.frames) {
		evicted := s.frames[0]
		copy(s.frames, s.frames[1:])
		s.frames[depth-1] = frame

		if s.onOverflow != nil {
			s.onOverflow(evicted, depth)
		}

		return
	}

	s.frames[depth] = frame
	s.setDepth(depth + 1)
}

// Pop removes the innermost frame. Popping an empty stack is a no-op.
func (s *ContextStack) Pop() {
	depth := s.view.Depth
	if depth == 0 {
		return
	}

	s.frames[depth-1] = Frame{}
	s.setDepth(depth - 1)
}

// Current returns the live view of the stack.
func (s *ContextStack) Current() *ErrorContext {
	if s == nil {
		return nil
	}

	return &s.view
}

// Frames returns a copy of the frames, outermost first.
func (s *ContextStack) Frames() []Frame {
	if s == nil || s.view.Depth == 0 {
		return nil
	}

	out := make([]Frame, s.view.Depth)
	copy(out, s.view.Frame)

	return out
}

// MaxDepth returns the stack capacity.
func (s *ContextStack) MaxDepth() int {
	return len(s.frames)
}

func (s *ContextStack) setDepth(depth int) {
	s.view.Depth = depth
	s.view.Frame = s.frames[:depth]
}
