package wrapper

import (
	"github.com/joeycumines/logiface"
	"golang.org/x/sys/unix"

	"github.com/ardnew/smdpkt/pkg"
	"github.com/ardnew/smdpkt/wrapper/hal"
)

// Wrapper decorates a HAL's open and poll with smdpkt write-readiness
// synthesis. Each Wrapper owns (or shares, see WithTracker) one Tracker.
type Wrapper struct {
	hal        hal.HAL
	tracker    *Tracker
	classifier *Classifier
}

// New creates a Wrapper around h, whose Open and Poll are the real
// implementations being decorated.
func New(h hal.HAL, opts ...Option) *Wrapper {
	c := defaultConfig()
	for _, o := range opts {
		o(&c)
	}
	if c.tracker == nil {
		c.tracker = NewTracker()
	}
	return &Wrapper{
		hal:        h,
		tracker:    c.tracker,
		classifier: NewClassifier(h, c.sysfsRoot, c.signature),
	}
}

// Tracker returns the wrapper's tracked descriptor latch.
func (w *Wrapper) Tracker() *Tracker {
	return w.tracker
}

// Classifier returns the wrapper's device classifier.
func (w *Wrapper) Classifier() *Classifier {
	return w.classifier
}

// =============================================================================
// Open
// =============================================================================

// Open opens path through the HAL and returns exactly what the HAL returned.
// When the new descriptor is a target device it is tracked (if nothing is
// tracked yet) and switched into blocking-write mode; failure to switch is
// logged and otherwise ignored.
func (w *Wrapper) Open(path string, flags int, mode uint32) (int, error) {
	fd, err := w.hal.Open(path, flags, mode)
	if err != nil || fd < 0 {
		return fd, err
	}

	id, cerr := w.classifier.Classify(fd)
	if cerr != nil {
		pkg.LogTrace(pkg.ComponentClassify).
			Str("path", path).
			Int("fd", fd).
			Err(cerr).
			Log("not a target device")
		return fd, nil
	}

	w.configure(path, fd, id)
	return fd, nil
}

// configure tracks and configures a freshly opened target device.
func (w *Wrapper) configure(path string, fd int, id hal.DeviceID) {
	if w.tracker.Track(int32(fd)) {
		pkg.LogInfo(pkg.ComponentOpen).
			Str("path", path).
			Int("fd", fd).
			Str("device", id.String()).
			Log("tracking device")
	} else {
		pkg.LogWarn(pkg.ComponentOpen).
			Str("path", path).
			Int("fd", fd).
			Str("device", id.String()).
			Int("tracked", w.tracker.Descriptor()).
			Err(pkg.ErrAlreadyTracked).
			Log("write readiness will not be synthesized for this descriptor")
	}

	if err := w.hal.SetBlockingWrite(fd); err != nil {
		pkg.LogDebug(pkg.ComponentOpen).
			Int("fd", fd).
			Err(err).
			Log("blocking write mode not enabled")
	}
}

// =============================================================================
// Poll
// =============================================================================

// Poll waits for events on fds through the HAL.
//
// With no tracked device it is a pass-through. Otherwise entries for the
// tracked descriptor that request POLLOUT are rewritten, the call is made
// non-blocking if any were, and the result is reconciled so those entries
// report POLLOUT (unless the kernel reported an error condition) and the
// returned count matches the entries with result events. Requested events
// are always restored, and errors from the HAL are returned unchanged.
func (w *Wrapper) Poll(fds []unix.PollFd, timeout int) (int, error) {
	tracked, ok := w.tracker.Load()
	if !ok {
		return w.hal.Poll(fds, timeout)
	}

	var inline [snapshotInline]int16
	snapshot := inline[:0]
	if len(fds) > snapshotInline {
		snapshot = make([]int16, 0, len(fds))
	}

	plan := Rewrite(tracked, fds, timeout, snapshot)
	n, err := w.hal.Poll(fds, plan.Timeout)
	if err != nil {
		plan.Restore(fds)
		return n, err
	}

	ready := plan.Reconcile(fds)
	if plan.Stripped > 0 && pkg.LogEnabled(logiface.LevelTrace) {
		pkg.LogTrace(pkg.ComponentPoll).
			Int("fd", int(tracked)).
			Int("stripped", plan.Stripped).
			Int("timeout", timeout).
			Int("kernel", n).
			Int("ready", ready).
			Log("synthesized write readiness")
	}
	return ready, nil
}
