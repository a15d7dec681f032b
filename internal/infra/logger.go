package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger constructs the service logger. Development gets a human-readable
// console writer at debug level; everything else gets JSON at info level.
func NewLogger(appEnv string) zerolog.Logger {
	return newLogger(appEnv, os.Stdout)
}

// NewLoggerTo is NewLogger writing to w. Command-line tools pass os.Stderr so
// stdout carries only their output.
func NewLoggerTo(appEnv string, w io.Writer) zerolog.Logger {
	return newLogger(appEnv, w)
}

func newLogger(appEnv string, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "listingcopy").
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	return logger
}

// Component derives a logger tagged with the owning component.
func Component(base Logger, name string) *Logger {
	l := base.With().Str("component", name).Logger()
	return &l
}

// Logger aliases zerolog.Logger so packages depend on infra rather than on the
// logging module directly.
type Logger = zerolog.Logger
