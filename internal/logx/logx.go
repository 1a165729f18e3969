// Package logx adapts github.com/tliron/commonlog to the narrow
// Debugf/Infof/Warnf/Errorf contract the scan pipeline logs through.
package logx

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Verbosity mirrors commonlog.Configure's 1..5 scale (Error..Debug).
type Verbosity int

const (
	VerbosityError   Verbosity = 1
	VerbosityWarning Verbosity = 2
	VerbosityNotice  Verbosity = 3
	VerbosityInfo    Verbosity = 4
	VerbosityDebug   Verbosity = 5
)

// Logger wraps a scoped commonlog.Logger.
type Logger struct {
	backend commonlog.Logger
}

// New configures the commonlog simple backend at the given verbosity and
// returns a Logger scoped to name (e.g. "scanner", "validator").
func New(name string, verbosity Verbosity) *Logger {
	commonlog.Configure(int(verbosity), nil)
	return &Logger{backend: commonlog.GetLogger(name)}
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) { l.backend.Debugf(format, args...) }

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) { l.backend.Infof(format, args...) }

// Warnf logs at warning level.
func (l *Logger) Warnf(format string, args ...any) { l.backend.Warningf(format, args...) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) { l.backend.Errorf(format, args...) }
