// Package logger builds the zerolog logger used by the command line tool.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const (
	LogLevelFlag = "loglevel"

	DefaultLevel = "info"

	consoleTimeFormat = time.RFC3339
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = utcNow
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// Config describes the console logger.
type Config struct {
	MinLevel string
	NoColor  bool

	// Out defaults to stderr.
	Out io.Writer
}

// Create builds a console logger. An unparsable level falls back to info and
// the failure is logged once through the new logger.
func Create(config *Config) *zerolog.Logger {
	if config == nil {
		config = &Config{MinLevel: DefaultLevel}
	}

	level, levelErr := zerolog.ParseLevel(config.MinLevel)
	if levelErr != nil || config.MinLevel == "" {
		level = zerolog.InfoLevel
	}

	log := zerolog.New(createConsoleWriter(config)).Level(level).With().Timestamp().Logger()
	if levelErr != nil {
		log.Error().Msgf("Failed to parse log level %q, using %q instead", config.MinLevel, level)
	}
	return &log
}

func createConsoleWriter(config *Config) io.Writer {
	if config.Out != nil {
		return zerolog.ConsoleWriter{
			Out:        config.Out,
			NoColor:    true,
			TimeFormat: consoleTimeFormat,
		}
	}

	consoleOut := os.Stderr
	return zerolog.ConsoleWriter{
		Out:        colorable.NewColorable(consoleOut),
		NoColor:    config.NoColor || !term.IsTerminal(int(consoleOut.Fd())),
		TimeFormat: consoleTimeFormat,
	}
}
