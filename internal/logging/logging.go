// Package logging wraps zerolog the way the teacher's cmd/api/main.go
// configures it: a single process-wide logger, Unix timestamps, console
// writer, no per-package loggers.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. zerolog serializes its own writes
// internally, so no additional locking is needed across goroutines.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
