//go:build js || wasip1

package crashguard

const interceptionSupported = false

func armFaults() bool { return false }

func restoreFaults(bool) {}
