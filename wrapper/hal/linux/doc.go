// Package linux provides a wrapper HAL implementation for Linux using direct
// system calls.
//
// Every operation goes straight to the kernel through [golang.org/x/sys/unix];
// no libc symbol is involved, so this HAL is safe to use from inside a
// library that is itself interposing libc's open and poll. It is designed for
// pure Go with no cgo dependencies.
//
// # Ioctl Encoding
//
// Ioctl request numbers are built with the kernel's _IOC layout. Most
// architectures use the asm-generic layout (2 direction bits, 14 size bits);
// mips and powerpc use 3 direction bits and 13 size bits with different
// direction values. See [BlockingWriteRequest].
package linux
