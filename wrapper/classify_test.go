package wrapper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/ardnew/smdpkt/pkg"
	"github.com/ardnew/smdpkt/wrapper/hal"
	"github.com/ardnew/smdpkt/wrapper/hal/sim"
)

var (
	smdDevice  = hal.DeviceID{Major: 253, Minor: 0}
	smdDevice2 = hal.DeviceID{Major: 253, Minor: 1}
	ttyDevice  = hal.DeviceID{Major: 4, Minor: 64}
)

const (
	smdLink  = "../../devices/virtual/smdpkt/smdcntl0"
	smdLink2 = "../../devices/virtual/smdpkt/smdcntl1"
	ttyLink  = "../../devices/platform/serial8250/tty/ttyS0"
)

// newSim returns a simulation with two smdpkt devices, a serial port, a
// device without a sysfs link and a regular file.
func newSim() *sim.HAL {
	s := sim.New()
	s.AddCharDevice("/dev/smdcntl0", smdDevice, smdLink)
	s.AddCharDevice("/dev/smdcntl1", smdDevice2, smdLink2)
	s.AddCharDevice("/dev/ttyS0", ttyDevice, ttyLink)
	s.AddCharDevice("/dev/unlinked", hal.DeviceID{Major: 10, Minor: 200}, "")
	s.AddFile("/etc/hosts")
	return s
}

func openSim(t *testing.T, s *sim.HAL, path string) int {
	t.Helper()
	fd, err := s.Open(path, unix.O_RDWR, 0)
	require.NoError(t, err)
	return fd
}

func TestClassifier_Classify(t *testing.T) {
	s := newSim()
	c := NewClassifier(s, DefaultSysfsRoot, DefaultSignature)

	s.AddCharDevice("/dev/long", hal.DeviceID{Major: 240, Minor: 9},
		"../../devices/"+strings.Repeat("x", LinkPathMaxLen)+"/smdpkt/long")

	tests := []struct {
		path    string
		wantID  hal.DeviceID
		wantErr error
	}{
		{"/dev/smdcntl0", smdDevice, nil},
		{"/dev/smdcntl1", smdDevice2, nil},
		{"/dev/ttyS0", ttyDevice, pkg.ErrNotTarget},
		{"/dev/unlinked", hal.DeviceID{Major: 10, Minor: 200}, pkg.ErrNoDriverLink},
		{"/dev/long", hal.DeviceID{Major: 240, Minor: 9}, pkg.ErrLinkTruncated},
		{"/etc/hosts", hal.DeviceID{}, pkg.ErrNotCharDevice},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			fd := openSim(t, s, tt.path)

			id, err := c.Classify(fd)
			assert.Equal(t, tt.wantID, id)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.True(t, c.IsTarget(fd))
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, c.IsTarget(fd))
			}
		})
	}
}

func TestClassifier_StatFailure(t *testing.T) {
	c := NewClassifier(newSim(), DefaultSysfsRoot, DefaultSignature)

	_, err := c.Classify(99)
	assert.ErrorIs(t, err, pkg.ErrStat)
	assert.ErrorIs(t, err, unix.EBADF)
	assert.False(t, c.IsTarget(99))
}

func TestClassifier_LinkExactlyFillsBuffer(t *testing.T) {
	s := newSim()
	c := NewClassifier(s, DefaultSysfsRoot, DefaultSignature)

	prefix := "../../devices/virtual/smdpkt/"
	exact := prefix + strings.Repeat("a", LinkPathMaxLen-len(prefix))
	require.Len(t, exact, LinkPathMaxLen)
	s.AddCharDevice("/dev/exact", hal.DeviceID{Major: 241, Minor: 0}, exact)
	short := exact[:LinkPathMaxLen-1]
	s.AddCharDevice("/dev/short", hal.DeviceID{Major: 241, Minor: 1}, short)

	_, err := c.Classify(openSim(t, s, "/dev/exact"))
	assert.ErrorIs(t, err, pkg.ErrLinkTruncated)

	_, err = c.Classify(openSim(t, s, "/dev/short"))
	assert.NoError(t, err)
}

func TestClassifier_SignatureIsSegment(t *testing.T) {
	s := newSim()
	c := NewClassifier(s, DefaultSysfsRoot, DefaultSignature)

	s.AddCharDevice("/dev/lookalike", hal.DeviceID{Major: 242, Minor: 0},
		"../../devices/virtual/smdpkt_log/smdlog")

	_, err := c.Classify(openSim(t, s, "/dev/lookalike"))
	assert.ErrorIs(t, err, pkg.ErrNotTarget)
}

func TestClassifier_CustomSignatureAndRoot(t *testing.T) {
	s := sim.New()
	s.AddCharDevice("/dev/ttyS0", ttyDevice, "")
	s.AddLink("/host/sys/dev/char/4:64", ttyLink)

	c := NewClassifier(s, "/host/sys", "/tty/")
	assert.Equal(t, "/host/sys/dev/char/4:64", c.LinkPath(ttyDevice))
	assert.True(t, c.IsTarget(openSim(t, s, "/dev/ttyS0")))
}

func TestClassifier_LinkPath(t *testing.T) {
	c := NewClassifier(nil, DefaultSysfsRoot, DefaultSignature)

	tests := []struct {
		id   hal.DeviceID
		want string
	}{
		{hal.DeviceID{Major: 1, Minor: 3}, "/sys/dev/char/1:3"},
		{smdDevice, "/sys/dev/char/253:0"},
		{hal.DeviceID{Major: 4095, Minor: 1048575}, "/sys/dev/char/4095:1048575"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, c.LinkPath(tt.id))
		})
	}
}
