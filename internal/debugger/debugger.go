// Package debugger reports whether a debugger is attached to the current process.
//
// Debuggers see hardware faults before the process does, so crash guards must not be armed
// while one is attached.
package debugger

import "os"

// EnvForce overrides detection when set to "1" (attached) or "0" (not attached).
const EnvForce = "FAULTLINE_DEBUGGER_ATTACHED"

// Attached reports whether a debugger is attached.
func Attached() bool {
	switch os.Getenv(EnvForce) {
	case "1":
		return true
	case "0":
		return false
	}

	return attached()
}
