//go:build linux && cgo

package main

/*
#include "shim.h"
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/ardnew/smdpkt/pkg"
	"github.com/ardnew/smdpkt/wrapper/hal"
	"github.com/ardnew/smdpkt/wrapper/hal/linux"
)

// realHAL calls the C library's open and poll, found past this library in
// the symbol search order. Classification and the ioctl use direct system
// calls through the embedded Linux HAL, which never re-enter the interposed
// symbols.
type realHAL struct {
	linux.HAL
	open unsafe.Pointer
	poll unsafe.Pointer
}

var _ hal.HAL = (*realHAL)(nil)

// newRealHAL resolves the real open and poll. A symbol that cannot be
// resolved is left nil and its operation fails with ENOSYS; the returned
// error reports every missing symbol.
func newRealHAL() (*realHAL, error) {
	h := &realHAL{}
	var errs []error
	var err error
	if h.open, err = resolveNext("open"); err != nil {
		errs = append(errs, err)
	}
	if h.poll, err = resolveNext("poll"); err != nil {
		errs = append(errs, err)
	}
	return h, errors.Join(errs...)
}

// resolveNext looks up the next definition of name after this library.
func resolveNext(name string) (unsafe.Pointer, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	sym := C.smd_dlsym_next(cname)
	if sym == nil {
		return nil, fmt.Errorf("%s: %w", name, pkg.ErrSymbolNotFound)
	}
	pkg.LogDebug(pkg.ComponentHAL).
		Str("symbol", name).
		Str("addr", fmt.Sprintf("%p", sym)).
		Log("resolved real symbol")
	return sym, nil
}

// Open calls the real open.
func (h *realHAL) Open(path string, flags int, mode uint32) (int, error) {
	if h.open == nil {
		return -1, unix.ENOSYS
	}
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	var errnum C.int
	fd := C.smd_call_open(h.open, cpath, C.int(flags), C.uint(mode), &errnum)
	if fd < 0 {
		return int(fd), unix.Errno(errnum)
	}
	return int(fd), nil
}

// Poll calls the real poll on fds in place.
func (h *realHAL) Poll(fds []unix.PollFd, timeout int) (int, error) {
	var p *C.struct_pollfd
	if len(fds) > 0 {
		p = (*C.struct_pollfd)(unsafe.Pointer(&fds[0]))
	}
	return h.PollRaw(p, C.nfds_t(len(fds)), C.int(timeout))
}

// PollRaw calls the real poll with the caller's pointer and count unchanged,
// so invalid arguments fail exactly as they would without the wrapper.
func (h *realHAL) PollRaw(fds *C.struct_pollfd, nfds C.nfds_t, timeout C.int) (int, error) {
	if h.poll == nil {
		return -1, unix.ENOSYS
	}
	var errnum C.int
	n := C.smd_call_poll(h.poll, fds, nfds, timeout, &errnum)
	if n < 0 {
		return int(n), unix.Errno(errnum)
	}
	return int(n), nil
}
