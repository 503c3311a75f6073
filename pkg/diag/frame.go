package diag

import "unicode/utf8"

const (
	// DefaultMaxDepth is the context stack capacity used when none is configured.
	DefaultMaxDepth = 32

	// MinMaxDepth is the smallest accepted context stack capacity.
	MinMaxDepth = 2

	// DefaultMaxFieldLength bounds frame names and data, in bytes.
	DefaultMaxFieldLength = 256
)

// Frame is a named diagnostic breadcrumb. Both fields are immutable once pushed.
type Frame struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// ErrorContext is the live view of a context stack. Frame[0] is the outermost frame and
// len(Frame) == Depth always holds.
type ErrorContext struct {
	Depth int
	Frame []Frame
}

// contextPlaceholder names frames pushed with an empty name.
const contextPlaceholder = "<something>"

// FormatFrame renders a frame as a context line: "When <name>: <data>".
func FormatFrame(f Frame) string {
	name := f.Name
	if name == "" {
		name = contextPlaceholder
	}

	return "When " + name + ": " + f.Data
}

// truncate shortens s to at most limit bytes without splitting a UTF-8 sequence.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut]
}
