// Package logging holds the default logger factory used across pixconv.
package logging

import (
	"github.com/pion/logging"
)

var loggerFactory logging.LoggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger returns a leveled logger for scope from the default factory.
// Levels are controlled by the PION_LOG_* environment variables.
func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}
