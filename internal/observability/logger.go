// Package observability configures process-wide structured logging.
package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger builds a logger writing to w: a console writer in development,
// JSON with timestamp and caller otherwise.
func NewLogger(w io.Writer, serviceName, env, level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), err
		}
		lvl = parsed
	}
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			Level(lvl).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger(), nil
	}
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger(), nil
}

// InitLogger initializes the global zerolog logger on stderr, keeping stdout
// free for command output.
func InitLogger(serviceName, env, level string) (zerolog.Logger, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger, err := NewLogger(os.Stderr, serviceName, env, level)
	if err != nil {
		return logger, err
	}
	log.Logger = logger
	return logger, nil
}

// GetLogger returns the global logger.
func GetLogger() *zerolog.Logger {
	return &log.Logger
}
