// Package wrapper synthesizes write-readiness for smdpkt character devices.
//
// The Qualcomm smdpkt driver supports a blocking-write mode but never reports
// POLLOUT, so programs that poll before writing (ofonod, qmicli) hang. The
// [Wrapper] decorates the host's open and poll:
//
//   - Open classifies every new descriptor. The first smdpkt device found is
//     tracked and switched into blocking-write mode.
//   - Poll strips POLLOUT from entries for the tracked descriptor, stops the
//     call from blocking on them, and reports them write-ready afterwards
//     unless the kernel reported an error or hangup.
//
// Poll rewriting is split into pure steps, [Rewrite] and [Plan.Reconcile],
// which can be tested without any descriptors at all.
//
// # Usage
//
//	w := wrapper.New(linux.New())
//	fd, err := w.Open("/dev/smdcntl0", unix.O_RDWR, 0)
//	...
//	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}
//	n, err := w.Poll(fds, -1) // returns immediately with POLLOUT set
//
// # Limitations
//
// Only one device is tracked, and it is never released: a program that opens
// a second smdpkt device gets blocking-write mode on it but no synthesized
// readiness, and a tracked descriptor that is closed and reused keeps the
// synthesis.
package wrapper
