// Package logger provides stage logging for the chunkroute CLI.
//
// Debug, Info and Section output only appears with --verbose and shows how
// a plan was computed: load, graph build and search, each with its timing.
// Warnings are always written. Everything goes to stderr so stdout carries
// nothing but results.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	now               = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects all log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// emit writes one line. Lines with always unset are dropped unless verbose.
func emit(always bool, line string) {
	mu.RLock()
	defer mu.RUnlock()
	if always || verbose {
		fmt.Fprintln(output, line)
	}
}

// Debug logs a detail of the current stage.
func Debug(format string, args ...any) {
	emit(false, "[DEBUG] "+fmt.Sprintf(format, args...))
}

// Info logs a notable event such as a stored manifest.
func Info(format string, args ...any) {
	emit(false, "[INFO] "+fmt.Sprintf(format, args...))
}

// Section starts a new stage in the verbose output.
func Section(name string) {
	emit(false, "\n=== "+name+" ===")
}

// Warn logs a warning regardless of verbose mode.
func Warn(format string, args ...any) {
	emit(true, "[WARN] "+fmt.Sprintf(format, args...))
}

// Timed starts timing a stage and returns a function that logs its duration.
//
//	done := logger.Timed("build graph")
//	defer done()
func Timed(stage string) func() {
	start := now()
	return func() {
		Debug("%s took %s", stage, now().Sub(start).Round(time.Microsecond))
	}
}
