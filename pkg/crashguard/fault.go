package crashguard

import (
	"fmt"
	"runtime"
	"strings"
)

//go:generate go tool enumer -type=FaultKind -trimprefix=Fault -transform=snake -output=faultkind_enumer.go
//go:generate go run ../../tools/enumerfix faultkind_enumer.go

// FaultKind classifies a contained fault.
type FaultKind int

const (
	// FaultAbort is an explicit panic.
	FaultAbort FaultKind = iota
	// FaultMemoryAccess is an illegal memory access.
	FaultMemoryAccess
	// FaultArithmetic is an arithmetic trap such as integer division by zero.
	FaultArithmetic
	// FaultRuntime is any other runtime error.
	FaultRuntime
)

// Fault describes a contained fault.
type Fault struct {
	Kind  FaultKind
	Value any
	// Addr is the faulting address when the runtime reports one.
	Addr  uintptr
	Stack []byte
}

// addresser is implemented by runtime errors raised for faults at known addresses.
type addresser interface {
	Addr() uintptr
}

func classify(value any, stack []byte) Fault {
	fault := Fault{Kind: FaultAbort, Value: value, Stack: stack}

	if a, ok := value.(addresser); ok {
		fault.Kind = FaultMemoryAccess
		fault.Addr = a.Addr()

		return fault
	}

	rerr, ok := value.(runtime.Error)
	if !ok {
		return fault
	}

	msg := rerr.Error()

	switch {
	case strings.Contains(msg, "invalid memory address"), strings.Contains(msg, "nil pointer"):
		fault.Kind = FaultMemoryAccess
	case strings.Contains(msg, "divide by zero"), strings.Contains(msg, "overflow"):
		fault.Kind = FaultArithmetic
	default:
		fault.Kind = FaultRuntime
	}

	return fault
}

// ReentrantFault is the panic value raised when handling a fault faulted again.
// Guards never contain it.
type ReentrantFault struct {
	Label  string
	First  Fault
	Second any
}

func (r *ReentrantFault) Error() string {
	return fmt.Sprintf("crashguard: fault while handling fault in %q: %v (first: %v)",
		r.Label, r.Second, r.First.Value)
}

var faultTarget *int32

// TriggerFault deliberately raises an illegal memory access.
//
//go:noinline
func TriggerFault() {
	*faultTarget = 1
}
