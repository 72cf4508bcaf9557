//go:build linux

package linux

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/ardnew/smdpkt/wrapper/hal"
)

// =============================================================================
// HAL Implementation
// =============================================================================

// HAL implements the hal.HAL interface with direct Linux system calls.
// The zero value is ready to use.
type HAL struct{}

var _ hal.HAL = (*HAL)(nil)

// New creates a new Linux HAL.
func New() *HAL {
	return &HAL{}
}

// Open opens path with openat(AT_FDCWD, ...).
func (*HAL) Open(path string, flags int, mode uint32) (int, error) {
	return unix.Open(path, flags, mode)
}

// Poll waits for events on fds. EINTR is returned to the caller, as poll(2)
// does, so signal handling in the host is unaffected.
func (*HAL) Poll(fds []unix.PollFd, timeout int) (int, error) {
	return unix.Poll(fds, timeout)
}

// Fstat retrieves the status of an open descriptor.
func (*HAL) Fstat(fd int) (hal.Stat, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return hal.Stat{}, err
	}
	return hal.Stat{Mode: uint32(st.Mode), Rdev: uint64(st.Rdev)}, nil
}

// Readlink reads the target of a symbolic link.
func (*HAL) Readlink(path string, buf []byte) (int, error) {
	return unix.Readlink(path, buf)
}

// SetBlockingWrite enables the smdpkt blocking-write mode on fd.
func (*HAL) SetBlockingWrite(fd int) error {
	return IoctlSetUint(fd, BlockingWriteRequest, 1)
}

// =============================================================================
// Syscall Wrappers
// =============================================================================

// IoctlSetUint issues req on fd with a pointer to a C unsigned int holding
// value.
func IoctlSetUint(fd int, req uint, value uint32) error {
	v := value
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(unsafe.Pointer(&v)))
	if errno != 0 {
		return errno
	}
	return nil
}
