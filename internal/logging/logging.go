package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

// Logger returns the process-wide logger
func Logger() *log.Logger {
	once.Do(func() {
		singleton = New(os.Stderr)
	})
	return singleton
}

// New creates a logger writing to w with the application prefix
func New(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "arcademia",
	})
}

// SetLevel changes the level of the process-wide logger. Unknown names
// leave the level unchanged and return an error.
func SetLevel(name string) error {
	level, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	Logger().SetLevel(level)
	return nil
}

// Discard returns a logger that drops everything, for tests
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func Debug(msg string, args ...interface{}) {
	Logger().Debugf(msg, args...)
}

func Info(msg string, args ...interface{}) {
	Logger().Infof(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger().Warnf(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger().Errorf(msg, args...)
}
