// Package logger builds the service-tagged zerolog loggers used by the
// binaries. Output is JSON by default; NewConsole gives the human-readable
// form for local development.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a JSON logger tagged with the service name.
func New(serviceName string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

// NewConsole returns a pretty-printed logger for interactive use.
func NewConsole(serviceName string) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	return zerolog.New(writer).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
