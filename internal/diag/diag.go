// Package diag builds the zerolog logger used for diagnostics. User-facing
// output does not go through it.
package diag

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls where and how much is logged.
type Options struct {
	Level string // trace, debug, info, warn, error; default warn
	File  string // when set, log to this file instead of Out
	Out   io.Writer
	// Console selects the human-readable writer instead of JSON lines.
	Console bool
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}

// New returns a logger and a close func for any file it opened.
func New(opts Options) (zerolog.Logger, func() error, error) {
	closer := func() error { return nil }

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closer = f.Close
	} else if opts.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().Timestamp().
		Logger()
	return logger, closer, nil
}
