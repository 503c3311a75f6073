//go:build !js && !wasip1

package crashguard

import "runtime/debug"

const interceptionSupported = true

func armFaults() bool {
	return debug.SetPanicOnFault(true)
}

func restoreFaults(prev bool) {
	debug.SetPanicOnFault(prev)
}
