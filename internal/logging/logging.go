// Package logging builds the process logger: log/slog with a text handler on
// terminals, JSON otherwise, optionally teed into a rotating log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// Options configures New.
type Options struct {
	Level string
	// File enables file logging when non-empty.
	File      string
	MaxSizeMB int
	MaxFiles  int
	// Stderr is the console destination; nil means os.Stderr.
	Stderr io.Writer
}

// ParseLevel converts a config level name to a slog level. Unknown names
// map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger and a closer for any log file it opened.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	console := opts.Stderr
	if console == nil {
		console = os.Stderr
	}

	var (
		out              = console
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		rf, err := OpenRotatingFile(opts.File, int64(opts.MaxSizeMB)*1024*1024, opts.MaxFiles)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(console, rf)
		closer = rf
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var handler slog.Handler
	if isTerminal(console) {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}
	return slog.New(handler), closer, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
