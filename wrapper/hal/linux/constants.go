//go:build linux

package linux

// =============================================================================
// smdpkt Ioctl
// =============================================================================

// smdpktIoctlMagic is the ioctl type byte registered by the smdpkt driver.
const smdpktIoctlMagic = 0xC2

// smdpkt ioctl command numbers.
const (
	ioctlBlockingWrite = 0 // SMD_PKT_IOCTL_BLOCKING_WRITE
)

// sizeofUint is the size of the C unsigned int argument.
const sizeofUint = 4

// BlockingWriteRequest is SMD_PKT_IOCTL_BLOCKING_WRITE, _IOR(0xC2, 0,
// unsigned int). Passing a nonzero value makes write() wait for the modem
// instead of failing with EAGAIN.
var BlockingWriteRequest = uint(ior(smdpktIoctlMagic, ioctlBlockingWrite, sizeofUint))
