// Package logger builds the slog logger used by every command.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogFormat represents the output format for logs
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// New creates a logger from LOG_LEVEL (debug, info, warn, error; default info)
// and LOG_FORMAT (json, text; default json), writing to stdout.
func New() *slog.Logger {
	return NewWithWriter(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")), ParseFormat(os.Getenv("LOG_FORMAT")))
}

// NewWithWriter creates a logger writing to w. Records at warn and above
// carry their source location.
func NewWithWriter(w io.Writer, level slog.Level, format LogFormat) *slog.Logger {
	w = &lockedWriter{w: w}
	build := func(addSource bool) slog.Handler {
		opts := &slog.HandlerOptions{Level: level, AddSource: addSource}
		if format == FormatText {
			return slog.NewTextHandler(w, opts)
		}
		return slog.NewJSONHandler(w, opts)
	}

	handler := &sourceHandler{plain: build(false), withSource: build(true)}
	return slog.New(handler).With("service", "portfolio")
}

// sourceHandler routes warn+ records to a handler that adds the source.
type sourceHandler struct {
	plain      slog.Handler
	withSource slog.Handler
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.plain.Enabled(ctx, level)
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		return h.withSource.Handle(ctx, r)
	}
	return h.plain.Handle(ctx, r)
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceHandler{plain: h.plain.WithAttrs(attrs), withSource: h.withSource.WithAttrs(attrs)}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{plain: h.plain.WithGroup(name), withSource: h.withSource.WithGroup(name)}
}

// lockedWriter serializes the two handlers' writes to the shared output.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

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

func ParseFormat(s string) LogFormat {
	if strings.ToLower(strings.TrimSpace(s)) == "text" {
		return FormatText
	}
	return FormatJSON
}

// SetDefault sets the given logger as the default slog logger
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
