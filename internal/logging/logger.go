// Package logging provides a small stage-aware logger for the
// fact-checking pipeline. Every record carries the claim id and stage
// name it was emitted from, so interleaved concurrent output stays
// attributable.
package logging

import (
	"io"
	"log"
	"os"
)

var (
	debugEnabled bool
	infoLogger   = log.New(os.Stderr, "", log.LstdFlags)
	debugLogger  = log.New(os.Stderr, "", log.LstdFlags)
)

// Initialize sets up package-level output and the debug flag. Safe to
// call once at process startup; logging works with defaults even if
// Initialize is never called.
func Initialize(debugMode bool, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}
	debugEnabled = debugMode
	infoLogger = log.New(output, "", log.LstdFlags)
	debugLogger = log.New(output, "", log.LstdFlags)
}

// IsDebugEnabled reports whether debug-level records are emitted.
func IsDebugEnabled() bool {
	return debugEnabled
}

// Info logs an unscoped informational record.
func Info(format string, args ...interface{}) {
	infoLogger.Printf(format, args...)
}

// Debug logs an unscoped debug record, suppressed unless enabled.
func Debug(format string, args ...interface{}) {
	if debugEnabled {
		debugLogger.Printf("DEBUG: "+format, args...)
	}
}

// Error logs an unscoped error record.
func Error(format string, args ...interface{}) {
	infoLogger.Printf("ERROR: "+format, args...)
}

// Logger is a logger bound to a claim id and pipeline stage; every line
// it writes is prefixed with both so multi-claim, multi-stage output
// stays attributable when interleaved from concurrent goroutines.
type Logger struct {
	claimID string
	stage   string
}

// With returns a Logger bound to claimID and stage. claimID and stage
// are expected to be stable for the lifetime of the returned Logger;
// callers typically create one per pipeline stage invocation.
func With(claimID, stage string) *Logger {
	return &Logger{claimID: claimID, stage: stage}
}

func (l *Logger) prefix() string {
	return "[claim=" + l.claimID + " stage=" + l.stage + "] "
}

// Info logs an informational record scoped to this logger's claim/stage.
func (l *Logger) Info(format string, args ...interface{}) {
	infoLogger.Printf(l.prefix()+format, args...)
}

// Debug logs a debug record scoped to this logger's claim/stage.
func (l *Logger) Debug(format string, args ...interface{}) {
	if debugEnabled {
		debugLogger.Printf(l.prefix()+"DEBUG: "+format, args...)
	}
}

// Error logs an error record scoped to this logger's claim/stage.
func (l *Logger) Error(format string, args ...interface{}) {
	infoLogger.Printf(l.prefix()+"ERROR: "+format, args...)
}
