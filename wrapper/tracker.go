package wrapper

import "sync/atomic"

// Tracker is a write-once latch holding the tracked smdpkt descriptor.
//
// The zero value tracks nothing. Track succeeds exactly once; later calls
// leave the first descriptor in place. Load may run concurrently with Track
// and observes either no descriptor or the final one.
type Tracker struct {
	// v holds fd+1, so the zero value means "none".
	v atomic.Int32
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Track records fd if nothing is tracked yet and reports whether it did.
func (t *Tracker) Track(fd int32) bool {
	if fd < 0 {
		return false
	}
	return t.v.CompareAndSwap(0, fd+1)
}

// Load returns the tracked descriptor and whether one is set.
func (t *Tracker) Load() (int32, bool) {
	v := t.v.Load()
	return v - 1, v != 0
}

// Descriptor returns the tracked descriptor, or NoDescriptor.
func (t *Tracker) Descriptor() int {
	fd, _ := t.Load()
	return int(fd)
}

// IsSet reports whether a descriptor is tracked.
func (t *Tracker) IsSet() bool {
	return t.v.Load() != 0
}
