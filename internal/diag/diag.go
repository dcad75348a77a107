// Package diag provides the run's phase logger: structured, leveled
// logging via logrus, gated by verbosity. Diagnostics here are
// informational only — line/column error reporting is the job of the
// errors package, not this one.
package diag

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Logger wraps a logrus logger scoped to one compiler invocation.
type Logger struct {
	*log.Logger
}

// New creates a Logger writing to w. Debug-level phase-transition
// messages are only emitted when verbose is true.
func New(w io.Writer, verbose bool) *Logger {
	l := log.New()
	l.SetOutput(w)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if verbose {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}
	return &Logger{l}
}

// Phase logs entry into a compiler phase at Debug level.
func (l *Logger) Phase(name string) {
	l.Debugf("phase: %s", name)
}

// Fail logs the terminal error for the run at Error level.
func (l *Logger) Fail(err error) {
	l.Errorf("%v", err)
}
