// Package guestlog provides the guest's ambient debug tracing: the Go
// analogue of pyhost.c's compile-time DEBUG(...) macro, reintroduced as a
// runtime env-gated leveled logger in the style of the teacher-adjacent
// ClusterCockpit-cc-backend/pkg/log package (writer-based levels, no
// timestamp — the WASI host adds its own framing to stderr output).
//
// The guest is built once and reused across engine versions instead of
// being recompiled with NDEBUG, so the gate has to be a runtime check of
// TRINO_UDF_LOGLEVEL rather than a compile flag.
package guestlog

import (
	"fmt"
	"io"
	"os"
)

// Level orders the four tracing levels from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelNone disables every log call, the default when
	// TRINO_UDF_LOGLEVEL is unset or unrecognized.
	LevelNone
)

var (
	// Writer is where every level writes; overridable in tests.
	Writer io.Writer = os.Stderr
	level            = parseLevel(os.Getenv("TRINO_UDF_LOGLEVEL"))
)

func parseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelNone
	}
}

// SetLevel overrides the level parsed from TRINO_UDF_LOGLEVEL at init. Tests
// use this instead of mutating the environment.
func SetLevel(l Level) { level = l }

func logf(l Level, prefix, format string, args ...any) {
	if l < level {
		return
	}
	fmt.Fprintf(Writer, prefix+format+"\n", args...)
}

// Debugf logs Setup's and Execute's entry trace and Execute's
// successful-exit trace. Decode and Encode do not log.
func Debugf(format string, args ...any) { logf(LevelDebug, "[DEBUG] ", format, args...) }

// Infof logs coarse lifecycle events (setup completed, instance ready).
func Infof(format string, args ...any) { logf(LevelInfo, "[INFO] ", format, args...) }

// Warnf logs recoverable anomalies that do not fail the current row.
func Warnf(format string, args ...any) { logf(LevelWarn, "[WARN] ", format, args...) }

// Errorf logs a row-failing error right before it is translated and handed
// to return_error.
func Errorf(format string, args ...any) { logf(LevelError, "[ERROR] ", format, args...) }
