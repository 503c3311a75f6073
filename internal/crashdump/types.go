// Package crashdump synthesizes and manages diagnostic dumps for contained faults.
package crashdump

import (
	"time"
)

// FormatVersion is the version of the dump document written by this package.
const FormatVersion = "1.0.0"

// CrashInfo contains all diagnostic information about a contained fault.
type CrashInfo struct {
	// ID is the unique identifier for this crash dump. It is also the file name stem.
	ID string `json:"id"`

	// FormatVersion is the dump document version.
	FormatVersion string `json:"format_version"`

	// Timestamp is when the fault occurred.
	Timestamp time.Time `json:"timestamp"`

	// Label names the guard that contained the fault.
	Label string `json:"label"`

	// FaultKind classifies the fault (memory_access, arithmetic, abort, runtime).
	FaultKind string `json:"fault_kind"`

	// PanicValue is the recovered value, formatted.
	PanicValue string `json:"panic_value"`

	// FaultAddr is the faulting address for memory faults, zero otherwise.
	FaultAddr uintptr `json:"fault_addr,omitempty"`

	// StackTrace is the stack trace of the faulting goroutine.
	StackTrace string `json:"stack_trace"`

	// Runtime contains runtime information at the time of the fault.
	Runtime RuntimeInfo `json:"runtime"`

	// Thread describes the faulting thread when the fault happened on a managed thread.
	Thread *ThreadInfo `json:"thread,omitempty"`

	// Context is the error context of the faulting thread, outermost first.
	Context []ContextFrame `json:"context,omitempty"`

	// LastError is the unread error code of the faulting thread, if any.
	LastError string `json:"last_error,omitempty"`

	// Metadata contains additional diagnostic information.
	Metadata DumpMetadata `json:"metadata"`
}

// RuntimeInfo contains Go runtime information at the time of the fault.
type RuntimeInfo struct {
	// GOOS is the operating system (e.g., "darwin", "linux").
	GOOS string `json:"goos"`

	// GOARCH is the architecture (e.g., "amd64", "arm64").
	GOARCH string `json:"goarch"`

	// GoVersion is the Go version used to build the binary.
	GoVersion string `json:"go_version"`

	// NumGoroutine is the number of goroutines at fault time.
	NumGoroutine int `json:"num_goroutine"`

	// NumCPU is the number of CPUs available.
	NumCPU int `json:"num_cpu"`

	// PID is the process id.
	PID int `json:"pid"`
}

// ThreadInfo identifies the faulting thread.
type ThreadInfo struct {
	ID uint64 `json:"id"`
}

// ContextFrame is one error context frame at the time of the fault.
type ContextFrame struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// DumpMetadata contains additional context about the crash dump.
type DumpMetadata struct {
	// Version is the faultline version.
	Version string `json:"version"`

	// User is the user running the process.
	User string `json:"user,omitempty"`

	// Hostname is the machine hostname.
	Hostname string `json:"hostname,omitempty"`

	// WorkingDir is the current working directory.
	WorkingDir string `json:"working_dir,omitempty"`
}

// DumpSummary provides a short summary for listing crash dumps.
type DumpSummary struct {
	// ID is the unique identifier for this crash dump.
	ID string `json:"id"`

	// Timestamp is when the fault occurred.
	Timestamp time.Time `json:"timestamp"`

	// Label names the guard that contained the fault.
	Label string `json:"label"`

	// FaultKind classifies the fault.
	FaultKind string `json:"fault_kind"`

	// PanicValue is a truncated version of the panic value.
	PanicValue string `json:"panic_value"`

	// FilePath is the path to the dump file.
	FilePath string `json:"file_path"`

	// Size is the size of the dump file in bytes.
	Size int64 `json:"size"`
}
