//go:build linux && cgo

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/ardnew/smdpkt/pkg"
	"github.com/ardnew/smdpkt/wrapper"
)

func newTestHAL(t *testing.T) *realHAL {
	t.Helper()
	h, err := newRealHAL()
	require.NoError(t, err)
	require.NotNil(t, h.open)
	require.NotNil(t, h.poll)
	return h
}

func TestRealHAL_Open(t *testing.T) {
	h := newTestHAL(t)

	fd, err := h.Open("/dev/null", unix.O_RDWR|unix.O_CLOEXEC, 0)
	require.NoError(t, err)
	defer unix.Close(fd)

	st, err := h.Fstat(fd)
	require.NoError(t, err)
	assert.True(t, st.IsCharDevice())
	assert.Equal(t, "1:3", st.DeviceID().String())
}

func TestRealHAL_OpenCreatesWithMode(t *testing.T) {
	h := newTestHAL(t)
	path := filepath.Join(t.TempDir(), "created")

	old := unix.Umask(0)
	defer unix.Umask(old)

	fd, err := h.Open(path, unix.O_CREAT|unix.O_EXCL|unix.O_WRONLY|unix.O_CLOEXEC, 0o640)
	require.NoError(t, err)
	defer unix.Close(fd)

	var st unix.Stat_t
	require.NoError(t, unix.Stat(path, &st))
	assert.Equal(t, uint32(0o640), uint32(st.Mode)&0o777)

	_, err = h.Open(path, unix.O_CREAT|unix.O_EXCL|unix.O_WRONLY, 0o640)
	assert.Equal(t, unix.EEXIST, err)
}

func TestRealHAL_OpenError(t *testing.T) {
	h := newTestHAL(t)

	fd, err := h.Open("/nonexistent/smdpkt", unix.O_RDONLY, 0)
	assert.Equal(t, -1, fd)
	assert.Equal(t, unix.ENOENT, err)
}

func TestRealHAL_Poll(t *testing.T) {
	h := newTestHAL(t)

	var p [2]int
	require.NoError(t, unix.Pipe2(p[:], unix.O_CLOEXEC))
	defer unix.Close(p[0])
	defer unix.Close(p[1])

	fds := []unix.PollFd{
		{Fd: int32(p[0]), Events: unix.POLLIN},
		{Fd: int32(p[1]), Events: unix.POLLOUT},
	}
	n, err := h.Poll(fds, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, fds[0].Revents)
	assert.Equal(t, int16(unix.POLLOUT), fds[1].Revents)

	_, err = unix.Write(p[1], []byte{1})
	require.NoError(t, err)
	n, err = h.Poll(fds, -1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int16(unix.POLLIN), fds[0].Revents)
}

func TestRealHAL_PollEmpty(t *testing.T) {
	h := newTestHAL(t)

	n, err := h.Poll(nil, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRealHAL_Unresolved(t *testing.T) {
	h := &realHAL{}

	fd, err := h.Open("/dev/null", unix.O_RDONLY, 0)
	assert.Equal(t, -1, fd)
	assert.Equal(t, unix.ENOSYS, err)

	n, err := h.Poll(nil, 0)
	assert.Equal(t, -1, n)
	assert.Equal(t, unix.ENOSYS, err)
}

func TestResolveNext_Missing(t *testing.T) {
	_, err := resolveNext("smdpkt_no_such_symbol")
	assert.ErrorIs(t, err, pkg.ErrSymbolNotFound)
}

func TestPreload_PassesThroughNonTargets(t *testing.T) {
	w := preload()
	require.NotNil(t, w)
	assert.Same(t, w, preload())

	fd, err := w.Open("/dev/null", unix.O_RDONLY|unix.O_CLOEXEC, 0)
	require.NoError(t, err)
	defer unix.Close(fd)
	assert.False(t, w.Tracker().IsSet())

	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := w.Poll(fds, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, wrapper.NoDescriptor, w.Tracker().Descriptor())
}
