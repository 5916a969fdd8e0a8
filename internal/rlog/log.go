// Package rlog exports the leveled logging primitives used by both halves of
// the proxy. It is a trimmed adaptation of upspin.io/log: same
// Debug/Info/Error level loggers writing to stderr, minus the
// ExternalLogger/cloud-logging hook (this system has no log sink beyond the
// operator's terminal; see DESIGN.md).
package rlog

import (
	"log"
	"os"
)

// Level represents the severity of a log line.
type Level int

// The levels a line may be logged at.
const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
	DisabledLevel
)

// The set of loggers, one per level. Each silently drops lines below the
// process's current level.
var (
	Debug = &logger{DebugLevel, "DEBUG"}
	Info  = &logger{InfoLevel, "INFO"}
	Error = &logger{ErrorLevel, "ERROR"}
)

var (
	currentLevel = InfoLevel
	std          = log.New(os.Stderr, "", log.Ldate|log.Ltime)
)

// SetLevel sets the process-wide minimum level that will be emitted.
func SetLevel(l Level) {
	currentLevel = l
}

type logger struct {
	level Level
	tag   string
}

// Printf writes a formatted line to the log if the logger's level is enabled.
func (l *logger) Printf(format string, v ...interface{}) {
	if l.level < currentLevel {
		return
	}
	std.Printf(l.tag+": "+format, v...)
}

// Print writes a line to the log if the logger's level is enabled.
func (l *logger) Print(v ...interface{}) {
	if l.level < currentLevel {
		return
	}
	std.Print(append([]interface{}{l.tag + ": "}, v...)...)
}

// Fatal writes a line to the log and exits the process, regardless of level.
func (l *logger) Fatal(v ...interface{}) {
	std.Fatal(append([]interface{}{l.tag + ": "}, v...)...)
}

// Fatalf writes a formatted line to the log and exits the process,
// regardless of level.
func (l *logger) Fatalf(format string, v ...interface{}) {
	std.Fatalf(l.tag+": "+format, v...)
}
