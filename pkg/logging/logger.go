// Package logging holds the process-wide zerolog logger used by every
// pipeline stage. A terminal gets console output and anything else gets
// JSON lines, so a scrape piped to a file can be filtered per language
// or per run ID.
//
//	ctx := logging.WithLogger(context.Background(), logging.Default())
//	ctx = logging.WithKey(ctx, "eu", "standard")
//	logging.FromContext(ctx).Debug().Msg("Speakers found")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is built from LOG_LEVEL and LOG_FORMAT until the CLI
// replaces it with its configured logger.
var defaultLogger = fromEnv()

func fromEnv() zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = os.Getenv("LOG_LEVEL")
	if f := os.Getenv("LOG_FORMAT"); f != "" {
		cfg.Format = f
	}
	return NewLoggerFromConfig(cfg)
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's own.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// NewNopLogger returns a logger that writes nothing.
func NewNopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// Debug logs on the default logger.
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info logs on the default logger.
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn logs on the default logger.
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Error logs on the default logger.
func Error() *zerolog.Event { return defaultLogger.Error() }

func terminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
