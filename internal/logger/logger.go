package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root logger. JSON lines in production, human-readable
// console output everywhere else. Components receive children of this logger
// through their constructors.
func New(production bool) zerolog.Logger {
	if production {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
	return zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
