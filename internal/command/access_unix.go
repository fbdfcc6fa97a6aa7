//go:build unix

package command

import "golang.org/x/sys/unix"

func accessible(path string, access Access) bool {
	var mode uint32
	switch access {
	case AccessExists:
		mode = unix.F_OK
	case AccessReadable:
		mode = unix.R_OK
	case AccessWritable:
		mode = unix.W_OK
	default:
		mode = unix.X_OK
	}
	return unix.Access(path, mode) == nil
}
