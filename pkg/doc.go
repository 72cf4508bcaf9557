// Package pkg provides shared utilities for the smdpkt wrapper.
//
// This package contains common functionality used by the wrapper core, its
// HAL implementations and the preload library, including:
//
//   - Structured logging via [github.com/joeycumines/logiface], written as
//     JSON lines by [github.com/joeycumines/stumpy]
//   - Sentinel error values for device classification and symbol resolution
//   - Component identifiers for log filtering
//
// # Logging
//
// Logging is quiet by default (warning level) because the wrapper runs inside
// arbitrary host processes and shares their stderr. Build with the
// smdpkt_debug tag to start at debug level, or adjust at runtime:
//
//	pkg.SetLogLevel(logiface.LevelDebug)
//	pkg.LogInfo(pkg.ComponentOpen).Int("fd", fd).Log("device tracked")
//
// # Errors
//
// Classification failures are reported as sentinel values:
//
//	if errors.Is(err, pkg.ErrNotCharDevice) {
//	    // not a candidate
//	}
package pkg
