// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logging options
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // console or json
}

// DefaultConfig returns console logging at info level
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console"}
}

// Setup builds the root logger and installs it as the zerolog global.
// Console format is for development; production should use json.
func Setup(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stdout
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	log.Logger = zl
	return zl
}
