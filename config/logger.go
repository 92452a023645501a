package config

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. LOG_LEVEL takes any zerolog level
// name; LOG_PRETTY=1 switches to the human-readable console writer.
func NewLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if os.Getenv("LOG_PRETTY") == "1" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
