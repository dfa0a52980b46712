// Package log wraps go-logging with one shared backend for every package of the
// tracer. Each package takes a named logger from New; the command line picks the
// verbosity once with SetLevel.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is a verbosity threshold, from most to least chatty
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var backendLevels = [...]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

// Lines look like "[12:04:05.123] [renderer] [INFO] pass 2/4 done"
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	backend logging.LeveledBackend
	level   = Notice
)

// Logger is the subset of *logging.Logger the tracer logs through. Tests and
// library callers may pass their own implementation to the renderer.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Notice(v ...interface{})
	Noticef(format string, v ...interface{})
	Warning(v ...interface{})
	Warningf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a module; its name shows up in every line
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all output to w, keeping the current level
func SetSink(w io.Writer) {
	formatted := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format)
	backend = logging.AddModuleLevel(formatted)
	applyLevel()
	logging.SetBackend(backend)
}

// SetLevel drops messages below l. Unknown levels are ignored.
func SetLevel(l Level) {
	if l < Debug || l > Error {
		return
	}
	level = l
	applyLevel()
}

func applyLevel() {
	backend.SetLevel(backendLevels[level], "")
}

func init() {
	SetSink(os.Stderr)
}
