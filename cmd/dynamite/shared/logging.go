package shared

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger returns a stderr logger, at debug level when debug is set.
func SetupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}
