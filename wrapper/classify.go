package wrapper

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/ardnew/smdpkt/pkg"
	"github.com/ardnew/smdpkt/wrapper/hal"
)

// Classifier decides whether an open descriptor is a target device by
// resolving its sysfs character device link and looking for the driver
// signature in the target path. It has no side effects.
type Classifier struct {
	hal       hal.HAL
	prefix    string // <sysfs root>/dev/char/
	signature []byte
}

// NewClassifier creates a classifier reading sysfs under sysfsRoot and
// matching link targets containing signature.
func NewClassifier(h hal.HAL, sysfsRoot, signature string) *Classifier {
	return &Classifier{
		hal:       h,
		prefix:    sysfsRoot + charDevDir,
		signature: []byte(signature),
	}
}

// IsTarget reports whether fd refers to a target device. Every failure is
// a non-match.
func (c *Classifier) IsTarget(fd int) bool {
	_, err := c.Classify(fd)
	return err == nil
}

// Classify returns the device identity of fd if it is a target device, or an
// error wrapping one of pkg.ErrStat, pkg.ErrNotCharDevice,
// pkg.ErrNoDriverLink, pkg.ErrLinkTruncated or pkg.ErrNotTarget.
func (c *Classifier) Classify(fd int) (hal.DeviceID, error) {
	st, err := c.hal.Fstat(fd)
	if err != nil {
		return hal.DeviceID{}, fmt.Errorf("%w: %w", pkg.ErrStat, err)
	}
	if !st.IsCharDevice() {
		return hal.DeviceID{}, pkg.ErrNotCharDevice
	}

	id := st.DeviceID()
	path := c.LinkPath(id)

	var buf [LinkPathMaxLen]byte
	n, err := c.hal.Readlink(path, buf[:])
	if err != nil {
		return id, fmt.Errorf("%s: %w: %w", path, pkg.ErrNoDriverLink, err)
	}
	if n >= len(buf) {
		return id, fmt.Errorf("%s: %w", path, pkg.ErrLinkTruncated)
	}
	if !bytes.Contains(buf[:n], c.signature) {
		return id, fmt.Errorf("%s -> %s: %w", path, buf[:n], pkg.ErrNotTarget)
	}
	return id, nil
}

// LinkPath returns the sysfs registry entry for a character device.
func (c *Classifier) LinkPath(id hal.DeviceID) string {
	var buf [SysfsPathMaxLen]byte
	b := append(buf[:0], c.prefix...)
	b = strconv.AppendUint(b, uint64(id.Major), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(id.Minor), 10)
	return string(b)
}
