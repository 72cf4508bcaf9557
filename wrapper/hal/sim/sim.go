package sim

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ardnew/smdpkt/wrapper/hal"
)

// SysfsRoot is the sysfs mount point under which AddCharDevice registers
// device links.
const SysfsRoot = "/sys"

// FirstFD is the first descriptor handed out by Open (0-2 are stdio).
const FirstFD = 3

// pollErrMask holds the conditions poll(2) reports even when not requested.
const pollErrMask = unix.POLLERR | unix.POLLHUP | unix.POLLNVAL

// =============================================================================
// Simulated Objects
// =============================================================================

// nodeKind distinguishes the file types the simulation can open.
type nodeKind uint8

const (
	nodeFile nodeKind = iota // Regular file
	nodeChar                 // Character device
)

// node is a path in the simulated filesystem.
type node struct {
	kind        nodeKind
	id          hal.DeviceID // Device identity (nodeChar only)
	blockingErr error        // Result of SetBlockingWrite (nodeChar only)
}

// openFile is an open descriptor.
type openFile struct {
	path string
	node *node
}

// PollCall records one Poll invocation as seen by the simulated kernel.
type PollCall struct {
	Timeout int     // Effective timeout in milliseconds
	Events  []int16 // Requested events, by entry
}

// =============================================================================
// HAL
// =============================================================================

// HAL implements the hal.HAL interface over in-memory state.
// All methods are safe for concurrent use.
type HAL struct {
	mu      sync.Mutex
	nodes   map[string]*node
	links   map[string]string
	files   map[int]*openFile
	ready   map[int]int16
	nextFD  int
	changed chan struct{} // Closed and replaced whenever readiness changes
	pollErr error         // Returned by the next Poll, then cleared

	blocking []int      // Descriptors passed to SetBlockingWrite
	polls    []PollCall // Every Poll, in order
}

var _ hal.HAL = (*HAL)(nil)

// New creates an empty simulation.
func New() *HAL {
	return &HAL{
		nodes:   make(map[string]*node),
		links:   make(map[string]string),
		files:   make(map[int]*openFile),
		ready:   make(map[int]int16),
		nextFD:  FirstFD,
		changed: make(chan struct{}),
	}
}

// AddFile registers a regular file at path.
func (s *HAL) AddFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[path] = &node{kind: nodeFile}
}

// AddCharDevice registers a character device node at path. When link is
// non-empty, the sysfs entry SysfsRoot/dev/char/<major>:<minor> is created
// pointing at it.
func (s *HAL) AddCharDevice(path string, id hal.DeviceID, link string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[path] = &node{kind: nodeChar, id: id}
	if link != "" {
		s.links[CharDevLink(id)] = link
	}
}

// AddLink registers a symbolic link at path.
func (s *HAL) AddLink(path, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[path] = target
}

// SetBlockingWriteError makes SetBlockingWrite fail with err for the
// character device at path.
func (s *HAL) SetBlockingWriteError(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.nodes[path]; ok {
		n.blockingErr = err
	}
}

// SetReady replaces the events the kernel reports for fd and wakes blocked
// pollers.
func (s *HAL) SetReady(fd int, revents int16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready[fd] = revents
	s.notify()
}

// FailNextPoll makes the next Poll return -1 and err without scanning.
func (s *HAL) FailNextPoll(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pollErr = err
}

// Close releases fd. Pollers waiting on it observe POLLNVAL.
func (s *HAL) Close(fd int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[fd]; !ok {
		return unix.EBADF
	}
	delete(s.files, fd)
	delete(s.ready, fd)
	s.notify()
	return nil
}

// BlockingWrites returns the descriptors passed to SetBlockingWrite, in order.
func (s *HAL) BlockingWrites() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.blocking...)
}

// PollCalls returns every Poll invocation, in order.
func (s *HAL) PollCalls() []PollCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PollCall(nil), s.polls...)
}

// notify wakes pollers. Caller must hold s.mu.
func (s *HAL) notify() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// =============================================================================
// hal.HAL Methods
// =============================================================================

// Open opens a registered path, or creates a regular file with O_CREAT.
func (s *HAL) Open(path string, flags int, _ uint32) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[path]
	switch {
	case !ok && flags&unix.O_CREAT == 0:
		return -1, unix.ENOENT
	case !ok:
		n = &node{kind: nodeFile}
		s.nodes[path] = n
	case flags&(unix.O_CREAT|unix.O_EXCL) == unix.O_CREAT|unix.O_EXCL:
		return -1, unix.EEXIST
	}

	fd := s.nextFD
	s.nextFD++
	s.files[fd] = &openFile{path: path, node: n}
	return fd, nil
}

// Poll implements poll(2) semantics over the readiness table.
func (s *HAL) Poll(fds []unix.PollFd, timeout int) (int, error) {
	s.mu.Lock()

	call := PollCall{Timeout: timeout, Events: make([]int16, len(fds))}
	for i := range fds {
		call.Events[i] = fds[i].Events
	}
	s.polls = append(s.polls, call)

	if err := s.pollErr; err != nil {
		s.pollErr = nil
		s.mu.Unlock()
		return -1, err
	}

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(time.Duration(timeout) * time.Millisecond)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		n := s.scan(fds)
		if n > 0 || timeout == 0 {
			s.mu.Unlock()
			return n, nil
		}
		changed := s.changed
		s.mu.Unlock()

		select {
		case <-changed:
		case <-deadline:
			s.mu.Lock()
			n = s.scan(fds)
			s.mu.Unlock()
			return n, nil
		}

		s.mu.Lock()
	}
}

// scan fills Revents for every entry and returns the ready count.
// Caller must hold s.mu.
func (s *HAL) scan(fds []unix.PollFd) int {
	n := 0
	for i := range fds {
		fds[i].Revents = 0
		if fds[i].Fd < 0 {
			continue
		}
		fd := int(fds[i].Fd)
		if _, ok := s.files[fd]; !ok {
			fds[i].Revents = unix.POLLNVAL
			n++
			continue
		}
		fds[i].Revents = s.ready[fd] & (fds[i].Events | pollErrMask)
		if fds[i].Revents != 0 {
			n++
		}
	}
	return n
}

// Fstat reports a character device or a regular file.
func (s *HAL) Fstat(fd int) (hal.Stat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[fd]
	if !ok {
		return hal.Stat{}, unix.EBADF
	}
	if f.node.kind == nodeChar {
		return hal.Stat{Mode: unix.S_IFCHR | 0o660, Rdev: f.node.id.Rdev()}, nil
	}
	return hal.Stat{Mode: unix.S_IFREG | 0o644}, nil
}

// Readlink copies the link target into buf, truncating like readlink(2).
func (s *HAL) Readlink(path string, buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.links[path]
	if !ok {
		if _, exists := s.nodes[path]; exists {
			return -1, unix.EINVAL
		}
		return -1, unix.ENOENT
	}
	return copy(buf, target), nil
}

// SetBlockingWrite records the request for a character device.
func (s *HAL) SetBlockingWrite(fd int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[fd]
	if !ok {
		return unix.EBADF
	}
	if f.node.kind != nodeChar {
		return unix.ENOTTY
	}
	s.blocking = append(s.blocking, fd)
	return f.node.blockingErr
}

// =============================================================================
// Path Helpers
// =============================================================================

// CharDevLink returns the sysfs link path for a character device identity.
func CharDevLink(id hal.DeviceID) string {
	return SysfsRoot + "/dev/char/" + id.String()
}
