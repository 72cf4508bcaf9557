//go:build linux && cgo

// Command libsmdpkt is an LD_PRELOAD library that makes smdpkt character
// devices usable by programs that poll for write-readiness before writing.
//
// It replaces the C library's open and poll with versions that route through
// [wrapper.Wrapper], whose real operations are the next definitions of open
// and poll in the symbol search order.
//
// # Building
//
//	go build -buildmode=c-shared -o libsmdpkt.so ./cmd/libsmdpkt
//
// Build with -tags smdpkt_debug to log device detection to stderr.
//
// # Usage
//
//	LD_PRELOAD=/usr/lib/libsmdpkt.so ofonod -n -d
//	LD_PRELOAD=/usr/lib/libsmdpkt.so qmicli -d /dev/smdcntl8 --dms-get-ids
package main

/*
#cgo CFLAGS: -D_GNU_SOURCE -U_FORTIFY_SOURCE
#cgo LDFLAGS: -ldl
#include "shim.h"
*/
import "C"

import (
	"math"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/ardnew/smdpkt/pkg"
	"github.com/ardnew/smdpkt/wrapper"
)

// maxPollSet is the largest poll set handed to the wrapper. Larger counts
// exceed any RLIMIT_NOFILE and go straight to the real poll, which rejects
// them.
const maxPollSet = math.MaxInt32

var (
	instance *wrapper.Wrapper
	nextHAL  *realHAL
	initOnce sync.Once
)

// setup resolves the real open and poll and creates the process-wide
// wrapper around them, once.
func setup() {
	initOnce.Do(func() {
		h, err := newRealHAL()
		if err != nil {
			pkg.LogError(pkg.ComponentPreload).
				Err(err).
				Log("interposed calls will fail with ENOSYS")
		}
		nextHAL = h
		instance = wrapper.New(h)
	})
}

// preload returns the process-wide wrapper.
func preload() *wrapper.Wrapper {
	setup()
	return instance
}

// realPoll returns the HAL holding the real poll.
func realPoll() *realHAL {
	setup()
	return nextHAL
}

//export smdpktOpen
func smdpktOpen(path *C.char, flags C.int, mode C.uint, errnum *C.int) C.int {
	fd, err := preload().Open(C.GoString(path), int(flags), uint32(mode))
	return result(fd, err, errnum)
}

//export smdpktPoll
func smdpktPoll(fds *C.struct_pollfd, nfds C.nfds_t, timeout C.int, errnum *C.int) C.int {
	if nfds > maxPollSet || (fds == nil && nfds > 0) {
		n, err := realPoll().PollRaw(fds, nfds, timeout)
		return result(n, err, errnum)
	}

	var set []unix.PollFd
	if nfds > 0 {
		set = unsafe.Slice((*unix.PollFd)(unsafe.Pointer(fds)), int(nfds))
	}
	n, err := preload().Poll(set, int(timeout))
	return result(n, err, errnum)
}

// result converts a Go return pair to the C convention.
func result(n int, err error, errnum *C.int) C.int {
	if err != nil {
		*errnum = C.int(errnoOf(err))
		return -1
	}
	return C.int(n)
}

func main() {}
