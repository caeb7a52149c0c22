// Package logger builds the process logger. Output goes to stderr by
// default because stdout carries MCP protocol frames and CLI results.
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type ctxKey struct{}

// Config controls logger construction
type Config struct {
	Level      string    // debug, info, warn or error
	JSON       bool      // JSON lines instead of the text formatter
	Output     io.Writer // defaults to stderr
	TimeFormat string
}

// DefaultConfig logs at info level to stderr with a short timestamp
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Output:     os.Stderr,
		TimeFormat: "15:04:05",
	}
}

// ParseLevel maps a level name to a charm level. Unknown names are info.
func ParseLevel(level string) charmlog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return charmlog.DebugLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// New creates a logger from cfg; zero fields take their defaults.
func New(cfg Config) *charmlog.Logger {
	def := DefaultConfig()
	if cfg.Output == nil {
		cfg.Output = def.Output
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = def.TimeFormat
	}

	l := charmlog.NewWithOptions(cfg.Output, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           ParseLevel(cfg.Level),
		Prefix:          "docchunk",
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	} else {
		l.SetFormatter(charmlog.TextFormatter)
	}
	return l
}

// Discard returns a logger that drops everything, for tests and library use
func Discard() *charmlog.Logger {
	return New(Config{Output: io.Discard, Level: "error"})
}

// ContextWithLogger attaches l to ctx
func ContextWithLogger(ctx context.Context, l *charmlog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or a discarding logger
func FromContext(ctx context.Context) *charmlog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*charmlog.Logger); ok && l != nil {
		return l
	}
	return Discard()
}
