package wrapper

import "golang.org/x/sys/unix"

// =============================================================================
// Device Classification
// =============================================================================

// DefaultSignature is the path segment identifying the smdpkt driver family
// in a /sys/dev/char link target.
const DefaultSignature = "/smdpkt/"

// DefaultSysfsRoot is the sysfs mount point.
const DefaultSysfsRoot = "/sys"

// charDevDir is the sysfs registry of character devices, keyed by
// "major:minor", relative to the sysfs root.
const charDevDir = "/dev/char/"

// LinkPathMaxLen is the buffer size for a sysfs link target. A target that
// fills the buffer is treated as truncated.
const LinkPathMaxLen = 128

// SysfsPathMaxLen is the maximum length of a generated sysfs path before it
// spills to the heap.
const SysfsPathMaxLen = 64

// =============================================================================
// Poll Rewriting
// =============================================================================

// NoDescriptor is the Tracker value when no device is tracked.
const NoDescriptor = -1

// snapshotInline is the largest poll set whose events are snapshotted
// without allocating.
const snapshotInline = 16

// pollErrMask holds the conditions that take precedence over synthesized
// write-readiness.
const pollErrMask = unix.POLLERR | unix.POLLHUP | unix.POLLNVAL
