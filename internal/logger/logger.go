// Package logger provides structured logging functionality
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger for application-wide logging
type Logger struct {
	*slog.Logger

	mirror *WebhookMirror
}

// Config holds logger configuration
type Config struct {
	Level   string // debug, info, warn, error
	Format  string // text, json
	Webhook string // optional webhook URL to mirror log lines to
}

// New creates a new structured logger
func New(cfg Config) *Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var out io.Writer = os.Stdout
	var mirror *WebhookMirror
	if cfg.Webhook != "" {
		mirror = NewWebhookMirror(cfg.Webhook)
		out = io.MultiWriter(os.Stdout, mirror)
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
		mirror: mirror,
	}
}

// WithComponent returns a logger with a component attribute
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.With("component", component),
		mirror: l.mirror,
	}
}

// WithTask returns a logger with task context attributes
func (l *Logger) WithTask(task string) *Logger {
	return &Logger{
		Logger: l.With("task", task),
		mirror: l.mirror,
	}
}

// Close flushes any buffered webhook output.
func (l *Logger) Close() {
	if l.mirror != nil {
		l.mirror.Close()
	}
}

// Default returns a default logger for quick usage
func Default() *Logger {
	return New(Config{
		Level:  "info",
		Format: "text",
	})
}
