package crashguard

//go:generate go tool enumer -type=Status -trimprefix=Status -transform=snake -output=status_enumer.go
//go:generate go tool enumer -type=GuardState -trimprefix=State -transform=snake -output=guardstate_enumer.go
//go:generate go run ../../tools/enumerfix status_enumer.go guardstate_enumer.go

// Status is the outcome of a guarded call.
type Status int

const (
	// StatusCompleted means the work returned normally.
	StatusCompleted Status = iota
	// StatusDumpGenerated means a fault was contained, a dump written and the handler called.
	StatusDumpGenerated
	// StatusDumpFailed means a fault was contained but the dump could not be written. The
	// handler was called with an empty path.
	StatusDumpFailed
	// StatusDebuggerPresentSkipped means the guard was not armed because a debugger is attached.
	StatusDebuggerPresentSkipped
)

// Crashed reports whether the status stands for a contained fault.
func (s Status) Crashed() bool {
	return s == StatusDumpGenerated || s == StatusDumpFailed
}

// GuardState is the state of one armed scope.
type GuardState int

const (
	StateUnarmed GuardState = iota
	StateArmed
	StateFaulted
	StateDumping
	StateCallback
	StateResumed
	StateDisarmedOnReentrantFault
)

// transitions lists the legal moves of the scope state machine.
var transitions = map[GuardState][]GuardState{
	StateUnarmed:  {StateArmed},
	StateArmed:    {StateUnarmed, StateFaulted},
	StateFaulted:  {StateDumping, StateDisarmedOnReentrantFault},
	StateDumping:  {StateCallback, StateDisarmedOnReentrantFault},
	StateCallback: {StateResumed, StateDisarmedOnReentrantFault},
}

func canTransition(from, to GuardState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}
