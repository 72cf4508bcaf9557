// Package hal defines the host primitives consumed by the smdpkt wrapper.
//
// The wrapper never calls the operating system directly. Everything it needs
// (the real open and poll it decorates, plus the status, link and ioctl
// calls used to classify and configure devices) is reached through the [HAL]
// interface. This keeps the interception logic testable without a kernel and
// lets the preload library substitute implementations resolved from the next
// object in the dynamic linker's search order.
//
// # Implementations
//
//   - [github.com/ardnew/smdpkt/wrapper/hal/linux]: direct system calls
//   - [github.com/ardnew/smdpkt/wrapper/hal/sim]: in-memory devices for tests
//     and examples
package hal
