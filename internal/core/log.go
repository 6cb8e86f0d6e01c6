package core

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the caller-supplied logger, if any. Stored as an atomic
// pointer so SetLogger can race with Logger without synchronization.
// Named "logger" rather than "log" to avoid shadowing the stdlib package.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches the slog.Default()-derived fallback so it is not
// rebuilt on every Logger call. Cleared by SetLogger(nil), which lets a
// caller pick up a later slog.SetDefault change.
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the current library logger. When no custom logger has been
// set it falls back to a cached slog.Default() with the scriptenv component
// attribute. Safe to call from any goroutine.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := slog.Default().With("component", "scriptenv")
	// If another goroutine cached first, prefer its value so all callers
	// converge on one logger instance.
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	if cached := defaultLogger.Load(); cached != nil {
		return cached
	}
	return l
}

// SetLogger replaces the library logger. A nil l resets to the default:
// slog.Default() with the component attribute, re-derived on the next
// Logger call. Safe to call concurrently with Logger.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
