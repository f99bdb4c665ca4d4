package tensorrt

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/vivym/tensorrt-go/tensorrt/internal/api"
)

// Logger receives log records from the native runtime and forwards them to a
// structured logging backend. The native library may invoke the logger from
// arbitrary internal threads, so all state is accessed atomically and the
// slog backend is relied on for handler-level thread safety.
//
// The native library expects one logger to outlive every runtime created
// with it; a single process-wide Logger is the recommended pattern.
type Logger struct {
	api     api.API
	ptr     api.Logger
	backend *slog.Logger
	minimum atomic.Int32
}

// newLogger creates a native logger bound to a slog backend. Records below
// the minimum severity are dropped before reaching the backend.
func newLogger(a api.API, backend *slog.Logger, minimum Severity) (*Logger, error) {
	if backend == nil {
		backend = slog.Default()
	}
	l := &Logger{
		api:     a,
		backend: backend,
	}
	l.minimum.Store(int32(minimum))

	ptr := a.CreateLogger(func(severity api.Severity, msg string) {
		// The callback is invoked from native call paths that are
		// noexcept; a panic must not unwind across the boundary.
		defer func() { _ = recover() }()
		l.emit(severity, msg)
	})
	if ptr == 0 {
		return nil, ErrLoggerCreation
	}
	l.ptr = ptr
	return l, nil
}

// Log submits a message at the given severity, subject to the same severity
// filter as records originating inside the native library.
func (l *Logger) Log(severity Severity, msg string) {
	l.emit(severity, msg)
}

// SetLevel updates the minimum severity forwarded to the backend.
// Out-of-range values are silently ignored.
func (l *Logger) SetLevel(severity Severity) {
	if severity < SeverityInternalError || severity > SeverityVerbose {
		return
	}
	l.minimum.Store(int32(severity))
}

// Level returns the current minimum severity.
func (l *Logger) Level() Severity {
	return Severity(l.minimum.Load())
}

func (l *Logger) emit(severity Severity, msg string) {
	// Severity values are ordered most-severe-first, so "at or above the
	// threshold" means numerically less than or equal.
	if severity > Severity(l.minimum.Load()) {
		return
	}
	switch severity {
	case SeverityInternalError:
		l.backend.Error(msg, slog.String("severity", severityName(severity)))
	case SeverityError:
		l.backend.Error(msg, slog.String("severity", severityName(severity)))
	case SeverityWarning:
		l.backend.Warn(msg, slog.String("severity", severityName(severity)))
	case SeverityInfo:
		l.backend.Info(msg, slog.String("severity", severityName(severity)))
	default:
		l.backend.Debug(msg, slog.String("severity", severityName(severity)))
	}
}

// close destroys the native logger. Called by the owning Runtime after the
// native runtime has been destroyed.
func (l *Logger) close() {
	if l.ptr != 0 {
		l.api.DestroyLogger(l.ptr)
		l.ptr = 0
	}
}

// severityName returns a human-readable name for a severity level.
func severityName(severity Severity) string {
	switch severity {
	case SeverityInternalError:
		return "InternalError"
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInfo:
		return "Info"
	case SeverityVerbose:
		return "Verbose"
	default:
		return fmt.Sprintf("Severity(%d)", severity)
	}
}
