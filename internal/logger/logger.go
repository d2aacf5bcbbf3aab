// Package logger provides prefixed charmbracelet/log loggers for the
// engine's packages.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a prefixed logger writing to stderr with the process-wide
// log level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		Level:           log.GetLevel(),
	})
}

// SetDebug raises the process-wide log level to debug when enabled.
func SetDebug(enabled bool) {
	if enabled {
		log.SetLevel(log.DebugLevel)
	}
}
