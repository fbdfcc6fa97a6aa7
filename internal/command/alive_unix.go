//go:build unix

package command

import (
	"errors"

	"golang.org/x/sys/unix"
)

// processAlive probes pid with signal 0.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

// killedStatus reports whether status is that of a child ended by Kill.
func killedStatus(status int) bool {
	return status == -int(unix.SIGKILL)
}
