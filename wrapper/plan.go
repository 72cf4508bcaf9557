package wrapper

import "golang.org/x/sys/unix"

// Plan records how Rewrite changed a poll set so that the result of the real
// poll can be reconciled into what the caller would have seen from a driver
// that reports write-readiness.
type Plan struct {
	Tracked  int32   // Descriptor whose write-readiness is synthesized
	Events   []int16 // Caller's requested events, by entry
	Timeout  int     // Timeout to pass to the real poll
	Stripped int     // Entries that had POLLOUT removed
}

// Rewrite prepares fds for the real poll. It snapshots every entry's events
// into snapshot (reusing its capacity), removes POLLOUT from each entry for
// the tracked descriptor that requested it, and drops the timeout to zero
// when any entry was rewritten: write-readiness on the tracked device always
// holds, so there is nothing to wait for.
//
// fds is modified in place; Plan.Reconcile or Plan.Restore puts the events
// back.
func Rewrite(tracked int32, fds []unix.PollFd, timeout int, snapshot []int16) Plan {
	p := Plan{
		Tracked: tracked,
		Events:  snapshot[:0],
		Timeout: timeout,
	}
	for i := range fds {
		p.Events = append(p.Events, fds[i].Events)
		if fds[i].Fd == tracked && fds[i].Events&unix.POLLOUT != 0 {
			fds[i].Events &^= unix.POLLOUT
			p.Timeout = 0
			p.Stripped++
		}
	}
	return p
}

// Restore puts every entry's requested events back to the snapshot.
func (p *Plan) Restore(fds []unix.PollFd) {
	for i := range fds {
		fds[i].Events = p.Events[i]
	}
}

// Reconcile restores the requested events, sets POLLOUT on every tracked
// entry that originally asked for it (unless the kernel reported POLLERR,
// POLLHUP or POLLNVAL there), and returns the number of entries with any
// result events. The count replaces the real poll's return value, which no
// longer describes the caller's request.
func (p *Plan) Reconcile(fds []unix.PollFd) int {
	p.Restore(fds)

	n := 0
	for i := range fds {
		if fds[i].Fd == p.Tracked &&
			p.Events[i]&unix.POLLOUT != 0 &&
			fds[i].Revents&pollErrMask == 0 {
			fds[i].Revents |= unix.POLLOUT
		}
		if fds[i].Revents != 0 {
			n++
		}
	}
	return n
}
