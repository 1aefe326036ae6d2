package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

var (
	verbose     = false
	disableLogs = false
	forceStdErr = false
	colors      = true

	mu     sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	logPrefixes = map[int]string{
		levelDebug: "\033[37m[DBG]\033[0m", // White
		levelInfo:  "\033[36m[INF]\033[0m", // Cyan
		levelWarn:  "\033[33m[WRN]\033[0m", // Yellow
		levelError: "\033[31m[ERR]\033[0m", // Red
	}
	plainPrefixes = map[int]string{
		levelDebug: "[DBG]",
		levelInfo:  "[INF]",
		levelWarn:  "[WRN]",
		levelError: "[ERR]",
	}
)

// SetVerbose sets the logging verbosity. If true, debug messages are displayed.
func SetVerbose(v bool) {
	verbose = v
}

// DisableLogs disables all logging.
func DisableLogs() {
	disableLogs = true
}

// SetForceStdErr sends every level to stderr. Commands that print data on
// stdout (show, env, run) use it to keep their output clean.
func SetForceStdErr(v bool) {
	forceStdErr = v
}

// SetColors toggles ANSI colored prefixes. The CLI turns them off when
// stderr is not a terminal.
func SetColors(v bool) {
	colors = v
}

// SetOutput replaces the stdout and stderr writers and returns a function
// restoring the previous ones.
func SetOutput(out, errOut io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()

	prevOut, prevErr := stdout, stderr
	stdout, stderr = out, errOut
	return func() {
		mu.Lock()
		defer mu.Unlock()
		stdout, stderr = prevOut, prevErr
	}
}

// Debugf logs a debug message if verbose is true.
func Debugf(format string, args ...interface{}) {
	if verbose {
		logMessage(levelDebug, format, args...)
	}
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	logMessage(levelInfo, format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	logMessage(levelWarn, format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	logMessage(levelError, format, args...)
}

// Fatalf logs an error message and exits the program.
func Fatalf(format string, args ...interface{}) {
	logMessage(levelError, format, args...)
	os.Exit(1)
}

// logMessage formats and writes a log message with the specified log level.
func logMessage(level int, format string, args ...interface{}) {
	if disableLogs {
		return
	}
	prefix := plainPrefixes[level]
	if colors {
		prefix = logPrefixes[level]
	}
	message := fmt.Sprintf(format, args...)
	output := prefix + " " + message + "\n"

	mu.Lock()
	defer mu.Unlock()

	if forceStdErr || level >= levelWarn {
		_, _ = io.WriteString(stderr, output)
	} else {
		_, _ = io.WriteString(stdout, output)
	}
}
