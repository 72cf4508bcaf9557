//go:build linux && cgo

package main

import (
	"errors"

	"golang.org/x/sys/unix"
)

// errnoOf returns the errno to report to a C caller for err. Errors that do
// not carry an errno are reported as EIO.
func errnoOf(err error) unix.Errno {
	var errno unix.Errno
	if errors.As(err, &errno) && errno != 0 {
		return errno
	}
	return unix.EIO
}
