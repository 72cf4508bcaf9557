package pkg

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Component identifies a subsystem for log filtering.
type Component string

// Wrapper component identifiers.
const (
	ComponentClassify Component = "classify"
	ComponentOpen     Component = "open"
	ComponentPoll     Component = "poll"
	ComponentHAL      Component = "hal"
	ComponentPreload  Component = "preload"
)

// Logger is the concrete logger type used by the wrapper.
type Logger = logiface.Logger[*stumpy.Event]

// Builder is a single log event under construction.
type Builder = logiface.Builder[*stumpy.Event]

var (
	// DefaultLogger is the default logger used by the wrapper.
	DefaultLogger *Logger

	// logLevel holds the minimum enabled logiface.Level, shared by every
	// logger created with NewLogger.
	logLevel atomic.Int32

	// logMutex protects logger replacement.
	logMutex sync.RWMutex
)

func init() {
	logLevel.Store(int32(defaultLogLevel))
	DefaultLogger = NewLogger(os.Stderr)
}

// SetLogLevel sets the minimum log level for all wrapper logging.
func SetLogLevel(level logiface.Level) {
	logLevel.Store(int32(level))
}

// GetLogLevel returns the current minimum log level.
func GetLogLevel() logiface.Level {
	return logiface.Level(logLevel.Load())
}

// LogEnabled reports whether events at level would currently be written.
// Hot paths check this before building an event.
func LogEnabled(level logiface.Level) bool {
	return level.Enabled() && level <= GetLogLevel()
}

// SetLogger replaces the default logger with a custom logger.
func SetLogger(logger *Logger) {
	logMutex.Lock()
	defer logMutex.Unlock()
	DefaultLogger = logger
}

// NewLogger creates a JSON lines logger writing to w. Its level follows
// SetLogLevel.
func NewLogger(w io.Writer) *Logger {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		stumpy.L.WithLevel(logiface.LevelTrace),
		stumpy.L.WithModifier(logiface.ModifierFunc[*stumpy.Event](filterLevel)),
	)
}

// filterLevel drops events above the shared level.
func filterLevel(event *stumpy.Event) error {
	if !LogEnabled(event.Level()) {
		return logiface.ErrDisabled
	}
	return nil
}

func logger() *Logger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return DefaultLogger
}

func build(level logiface.Level, component Component) *Builder {
	return logger().Build(level).Str("component", string(component))
}

// LogTrace starts a trace event for the given component. The returned
// builder is nil (and safe to use) when the level is disabled.
func LogTrace(component Component) *Builder {
	return build(logiface.LevelTrace, component)
}

// LogDebug starts a debug event for the given component.
func LogDebug(component Component) *Builder {
	return build(logiface.LevelDebug, component)
}

// LogInfo starts an informational event for the given component.
func LogInfo(component Component) *Builder {
	return build(logiface.LevelInformational, component)
}

// LogWarn starts a warning event for the given component.
func LogWarn(component Component) *Builder {
	return build(logiface.LevelWarning, component)
}

// LogError starts an error event for the given component.
func LogError(component Component) *Builder {
	return build(logiface.LevelError, component)
}
