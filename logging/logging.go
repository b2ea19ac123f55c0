// Package logging configures the process-wide zerolog logger for the CLIs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	// Level is a zerolog level name; empty means info.
	Level string
	// Pretty selects human-readable console output instead of JSON lines.
	Pretty bool
	// File, when set, receives the logs instead of Writer. Parent
	// directories are created.
	File string
	// Writer defaults to stderr.
	Writer io.Writer
	// AddSource annotates each event with file:line.
	AddSource bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger without touching global state.
func New(w io.Writer, opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if s := strings.TrimSpace(opts.Level); s != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(s))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = l
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if opts.AddSource {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), nil
}

// Setup installs the configured logger as log.Logger and returns a closer
// for the log file, if any.
func Setup(opts Options) (io.Closer, error) {
	var w io.Writer = os.Stderr
	if opts.Writer != nil {
		w = opts.Writer
	}
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	logger, err := New(w, opts)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	zerolog.SetGlobalLevel(logger.GetLevel())
	log.Logger = logger
	return closer, nil
}
