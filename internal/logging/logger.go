// Package logging provides the level-tagged logger used throughout
// respkv, writing to stderr via the standard log package.
package logging

import (
	"log"
	"os"
)

// Level names used as log-line prefixes.
const (
	levelInfo  = "[INFO]  "
	levelWarn  = "[WARN]  "
	levelError = "[ERROR] "
	levelDebug = "[DEBUG] "
)

// Logger is a thin wrapper around four *log.Logger instances, one per
// level, each writing to stderr with its own prefix.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
	debug *log.Logger
}

// New returns a ready-to-use Logger.
func New() *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		info:  log.New(os.Stderr, levelInfo, flags),
		warn:  log.New(os.Stderr, levelWarn, flags),
		error: log.New(os.Stderr, levelError, flags),
		debug: log.New(os.Stderr, levelDebug, flags),
	}
}

// Default is the process-wide logger, used by the server and the process
// entry point.
var Default = New()

func (l *Logger) Info(format string, v ...any)  { l.info.Printf(format, v...) }
func (l *Logger) Warn(format string, v ...any)  { l.warn.Printf(format, v...) }
func (l *Logger) Error(format string, v ...any) { l.error.Printf(format, v...) }
func (l *Logger) Debug(format string, v ...any) { l.debug.Printf(format, v...) }
