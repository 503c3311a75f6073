//go:build linux

package debugger

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

const statusPath = "/proc/self/status"

func attached() bool {
	f, err := os.Open(statusPath)
	if err != nil {
		return false
	}
	defer f.Close()

	return tracerPID(bufio.NewScanner(f)) != 0
}

// tracerPID extracts the TracerPid field of a /proc/<pid>/status document.
func tracerPID(sc *bufio.Scanner) int {
	for sc.Scan() {
		value, ok := strings.CutPrefix(sc.Text(), "TracerPid:")
		if !ok {
			continue
		}

		pid, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0
		}

		return pid
	}

	return 0
}
