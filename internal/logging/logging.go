// Package logging configures zerolog for the CLI and its components.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Output and format identifiers accepted by Config.
const (
	FormatConsole = "console"
	FormatJSON    = "json"

	OutputStderr = "stderr"
	OutputFile   = "file"
)

// logFileMode keeps log files readable by the owner only.
const logFileMode = 0o600

// Config describes how the logger writes.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Unparseable
	// values fall back to info.
	Level string

	// Format selects console (human-readable) or json output.
	Format string

	// Output selects stderr or file. File output requires File to be set.
	Output string

	// File is the log file path, opened in append mode when Output is "file".
	File string
}

// New builds a logger from cfg. File output opens the configured path in
// append mode; the caller owns no handle, the file stays open for the process
// lifetime.
func New(cfg Config) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if cfg.Output == OutputFile {
		if cfg.File == "" {
			return zerolog.Nop(), errors.New("file output requires a log file path")
		}
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("open log file: %w", err)
		}
		out = f
	}

	return NewWithWriter(cfg, out).Level(lvl), nil
}

// NewWithWriter builds a logger writing to w, applying cfg's format only.
// Used by New and directly by tests.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.Format == FormatConsole {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(w).With().Timestamp().Logger()
}

// ComponentLogger returns a child logger tagged with a component name so log
// lines can be traced back to the subsystem that emitted them.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
