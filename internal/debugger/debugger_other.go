//go:build !linux

package debugger

func attached() bool {
	return false
}
