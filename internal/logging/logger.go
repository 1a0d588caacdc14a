package logging

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/edvin/grantsync/internal/config"
)

// NewLogger creates a structured zerolog.Logger with the level taken from
// config. Unknown levels fall back to info.
func NewLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}
