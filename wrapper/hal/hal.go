package hal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DeviceID identifies a device node by its major and minor numbers.
type DeviceID struct {
	Major uint32 // Driver class
	Minor uint32 // Instance within the class
}

// DeviceIDFromRdev splits a raw st_rdev value.
func DeviceIDFromRdev(rdev uint64) DeviceID {
	return DeviceID{Major: unix.Major(rdev), Minor: unix.Minor(rdev)}
}

// Rdev packs the identity back into an st_rdev value.
func (d DeviceID) Rdev() uint64 {
	return unix.Mkdev(d.Major, d.Minor)
}

// String returns the "major:minor" form used by /sys/dev/char.
func (d DeviceID) String() string {
	return fmt.Sprintf("%d:%d", d.Major, d.Minor)
}

// IsCharDevice reports whether a stat mode describes a character device.
func IsCharDevice(mode uint32) bool {
	return mode&unix.S_IFMT == unix.S_IFCHR
}

// Stat is the subset of a descriptor's status used for classification.
// Field widths are normalized across architectures.
type Stat struct {
	Mode uint32 // File type and permission bits (st_mode)
	Rdev uint64 // Device identity for device nodes (st_rdev)
}

// IsCharDevice reports whether the descriptor is a character device.
func (s Stat) IsCharDevice() bool {
	return IsCharDevice(s.Mode)
}

// DeviceID returns the major:minor identity of the device node.
func (s Stat) DeviceID() DeviceID {
	return DeviceIDFromRdev(s.Rdev)
}

// HAL is the set of host operations the wrapper decorates or depends on.
//
// Open and Poll are the "real" implementations being intercepted: their
// results must be returned to callers unchanged unless the wrapper
// deliberately reconciles them. Errors are reported as unix.Errno values
// wherever the host reports an errno.
type HAL interface {
	// Open opens path and returns the new descriptor.
	// mode is only meaningful when flags include O_CREAT or O_TMPFILE.
	Open(path string, flags int, mode uint32) (int, error)

	// Poll waits for events on fds, filling each entry's Revents, and
	// returns the number of entries with nonzero Revents.
	// timeout is in milliseconds, -1 for infinite, 0 for non-blocking.
	Poll(fds []unix.PollFd, timeout int) (int, error)

	// Fstat retrieves the status of an open descriptor.
	Fstat(fd int) (Stat, error)

	// Readlink reads the target of a symbolic link into buf and returns the
	// number of bytes written. It does not terminate buf, and silently
	// truncates targets longer than buf.
	Readlink(path string, buf []byte) (int, error)

	// SetBlockingWrite issues the driver control request that makes write()
	// on fd wait for completion instead of failing fast.
	SetBlockingWrite(fd int) error
}
