// Package errcode defines the error codes and severity levels recorded by the diagnostic subsystem.
package errcode

//go:generate go tool enumer -type=Code -transform=snake -text -output=code_enumer.go
//go:generate go run ../../tools/enumerfix code_enumer.go

// Code is a recorded error code. None is the rest state of an error register.
type Code uint8

const (
	// None means no error has been recorded.
	None Code = iota
	// InvalidValue is reported when an argument or stored value is not acceptable.
	InvalidValue
	// UnsupportedPlatform is reported when an operation is not available on this platform.
	UnsupportedPlatform
	// NotImplemented is reported by operations that exist only as placeholders.
	NotImplemented
	// OutOfMemory is reported when an allocation could not be satisfied.
	OutOfMemory
	// MemoryLeak is reported when allocations outlive their owner.
	MemoryLeak
	// MemoryAlignment is reported on misaligned memory access or allocation requests.
	MemoryAlignment
	// InternalFailure is reported on broken internal invariants.
	InternalFailure
	// AccessDenied is reported when a resource exists but may not be used.
	AccessDenied
	// ExceptionRaised is reported when a contained fault was observed.
	ExceptionRaised
	// SystemCallFail is reported when an operating system call fails.
	SystemCallFail
	// UnknownType is reported for unrecognised type identifiers.
	UnknownType
	// UnknownResource is reported when a named resource does not exist.
	UnknownResource
	// Deprecated is reported when a deprecated API is used.
	Deprecated
	// Assert is reported by failed assertions.
	Assert
	// Script is reported by script evaluation failures.
	Script
	// Corrupt is reported when stored data fails validation.
	Corrupt
	// Network is reported on network failures.
	Network
	// Timeout is reported when an operation ran out of time.
	Timeout
)

// IsNone reports whether c is the rest state.
func (c Code) IsNone() bool {
	return c == None
}
