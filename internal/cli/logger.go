package cli

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const tagKey = "tag"

// Logger writes human-readable status messages, prefixed with a bracketed
// level tag, to stdout and stderr.
type Logger struct {
	out *logrus.Logger
	err *logrus.Logger
}

// NewLogger builds a Logger. Info, Warn, Success, Failure and Debug go to
// stdout; Error goes to stderr. Debug is dropped unless verbose.
func NewLogger(stdout, stderr io.Writer, verbose bool) *Logger {
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	return &Logger{out: newLogrus(stdout, level), err: newLogrus(stderr, level)}
}

// NewStdLogger returns a Logger bound to the process stdout and stderr.
func NewStdLogger(verbose bool) *Logger {
	return NewLogger(os.Stdout, os.Stderr, verbose)
}

func newLogrus(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(tagFormatter{})
	return l
}

// SetVerbose toggles Debug output.
func (l *Logger) SetVerbose(verbose bool) {
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	l.out.SetLevel(level)
	l.err.SetLevel(level)
}

// Debug prints a diagnostic message when verbose.
func (l *Logger) Debug(msg string) {
	l.out.Debug(msg)
}

// Info prints an informational message.
func (l *Logger) Info(msg string) {
	l.out.Info(msg)
}

// Warn prints a warning message.
func (l *Logger) Warn(msg string) {
	l.out.Warn(msg)
}

// Error prints an error message.
func (l *Logger) Error(msg string) {
	l.err.Error(msg)
}

// Success prints a success message.
func (l *Logger) Success(msg string) {
	l.out.WithField(tagKey, "OK").Info(msg)
}

// Failure prints a failed-operation message.
func (l *Logger) Failure(msg string) {
	l.out.WithField(tagKey, "FAIL").Info(msg)
}

var levelTags = map[logrus.Level]string{
	logrus.DebugLevel: "DEBUG",
	logrus.InfoLevel:  "INFO",
	logrus.WarnLevel:  "WARN",
	logrus.ErrorLevel: "ERROR",
}

// tagFormatter renders "[TAG] message".
type tagFormatter struct{}

func (tagFormatter) Format(e *logrus.Entry) ([]byte, error) {
	tag, _ := e.Data[tagKey].(string)
	if tag == "" {
		tag = levelTags[e.Level]
	}
	return []byte("[" + tag + "] " + e.Message + "\n"), nil
}
