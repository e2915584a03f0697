// Package logging is a small leveled logger shared by all causalflow packages.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Verbosity selects which messages are written.
type Verbosity int

const (
	LowVerbosity    Verbosity = iota // errors only
	MediumVerbosity                  // warnings and errors
	HighVerbosity                    // everything, including debug output
)

// ParseVerbosity maps the CLI flags to a verbosity.
func ParseVerbosity(quiet, verbose bool) Verbosity {
	switch {
	case quiet:
		return LowVerbosity
	case verbose:
		return HighVerbosity
	default:
		return MediumVerbosity
	}
}

type logger struct {
	mu        sync.Mutex
	verbosity Verbosity
	l         *log.Logger
}

var std = &logger{
	verbosity: MediumVerbosity,
	l:         log.New(os.Stderr, "", log.LstdFlags),
}

// Init sets the verbosity of the package logger.
func Init(v Verbosity) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.verbosity = v
}

// SetOutput redirects log output. The terminal editor logs to a file so
// messages never land on the screen.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.l.SetOutput(w)
}

// Level returns the current verbosity.
func Level() Verbosity {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.verbosity
}

func write(min Verbosity, tag, format string, args []any) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.verbosity < min {
		return
	}
	std.l.Printf("%s\t%s\t%s", tag, caller(3), fmt.Sprintf(format, args...))
}

// caller returns the short name of the function that logged.
func caller(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "?"
	}
	name := runtime.FuncForPC(pc).Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Debugf writes a debug message (HighVerbosity only).
func Debugf(format string, args ...any) {
	write(HighVerbosity, "DEBUG", format, args)
}

// Infof writes an informative message (HighVerbosity only).
func Infof(format string, args ...any) {
	write(HighVerbosity, "INFO", format, args)
}

// Warnf writes a warning unless verbosity is LowVerbosity.
func Warnf(format string, args ...any) {
	write(MediumVerbosity, "WARN", format, args)
}

// Errorf writes an error message at every verbosity.
func Errorf(format string, args ...any) {
	write(LowVerbosity, "ERROR", format, args)
}

// ReturnErrorf logs the error and returns it.
func ReturnErrorf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	write(LowVerbosity, "ERROR", "%v", []any{err})
	return err
}
