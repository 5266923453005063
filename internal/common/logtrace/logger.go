// Package logtrace provides logging setup for the module.
// It integrates with zerolog for structured logging.
package logtrace

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global logger with Unix timestamp format.
// Configures zerolog to output to stderr with timestamps.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// SetLevel adjusts the global log level. The CLI keeps the default at Warn
// and lowers it to Debug with --verbose.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
