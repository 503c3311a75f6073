package diag

import "context"

type stateKey struct{}

// WithState returns a copy of ctx carrying st.
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

// FromContext returns the State carried by ctx, if any.
func FromContext(ctx context.Context) (*State, bool) {
	if ctx == nil {
		return nil, false
	}

	st, ok := ctx.Value(stateKey{}).(*State)

	return st, ok && st != nil
}
