package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a thin structured logger used across the application. It wraps a
// logrus entry so call sites can chain fields without carrying the underlying
// library type around.
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger for the named component writing to the given output at
// the given level.
func New(component string, out io.Writer, level logrus.Level) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &Logger{entry: l.WithField("component", component)}
}

// NewDefault creates a logger for the named component with stderr output and
// info level. Components accept a nil *Logger and fall back to this.
func NewDefault(component string) *Logger {
	return New(component, os.Stderr, logrus.InfoLevel)
}

// WithField returns a logger with the field attached to every entry.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithError returns a logger with the error attached under the "error" key.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

func (l *Logger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *Logger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l *Logger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *Logger) Error(args ...interface{}) { l.entry.Error(args...) }
func (l *Logger) Fatal(args ...interface{}) { l.entry.Fatal(args...) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l *Logger) Fatalf(format string, args ...interface{}) { l.entry.Fatalf(format, args...) }
