//go:build !unix

package command

import "os"

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = proc.Release()
	return true
}

// killedStatus cannot tell a forced termination from an ordinary exit here,
// so a requested kill always counts.
func killedStatus(int) bool {
	return true
}
