package pkg

import "errors"

// Device classification errors.
var (
	// ErrStat indicates the descriptor status could not be retrieved.
	ErrStat = errors.New("fstat failed")

	// ErrNotCharDevice indicates the descriptor is not a character device.
	ErrNotCharDevice = errors.New("not a character device")

	// ErrNoDriverLink indicates the sysfs device link could not be resolved.
	ErrNoDriverLink = errors.New("driver link unavailable")

	// ErrLinkTruncated indicates the sysfs link target did not fit the buffer.
	ErrLinkTruncated = errors.New("driver link truncated")

	// ErrNotTarget indicates the device belongs to another driver family.
	ErrNotTarget = errors.New("not a target device")
)

// Interposition errors.
var (
	// ErrSymbolNotFound indicates the next definition of an intercepted
	// symbol could not be resolved.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrAlreadyTracked indicates a descriptor is already tracked and a
	// second match was not recorded.
	ErrAlreadyTracked = errors.New("descriptor already tracked")
)
