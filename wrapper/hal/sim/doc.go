// Package sim provides an in-memory HAL implementation for the smdpkt
// wrapper.
//
// This package implements the [hal.HAL] interface without touching the host
// kernel. It is designed for testing and simulation, allowing the interception
// logic to be exercised against character devices that do not exist on the
// machine running the tests.
//
// # Model
//
// The simulation keeps three tables:
//
//	nodes      path → character device (major:minor) or regular file
//	links      sysfs path → link target, e.g.
//	           /sys/dev/char/253:0 → ../../devices/virtual/smdpkt/smdcntl0
//	readiness  descriptor → events the "kernel" currently reports
//
// Poll behaves like poll(2): entries report the intersection of their
// requested events with the descriptor's readiness (plus POLLERR, POLLHUP and
// POLLNVAL, which are always reported), and the call blocks until some entry
// is ready or the timeout expires. A timeout of -1 waits until readiness
// changes, which is how a driver that never signals POLLOUT hangs its callers.
//
// # Usage
//
//	s := sim.New()
//	s.AddCharDevice("/dev/smdcntl0", hal.DeviceID{Major: 253, Minor: 0},
//	    "../../devices/virtual/smdpkt/smdcntl0")
//	w := wrapper.New(s)
//	fd, _ := w.Open("/dev/smdcntl0", unix.O_RDWR, 0)
package sim
