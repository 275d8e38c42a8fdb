package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the logging interface used across pngme. Commands and the HTTP
// API depend on it rather than on *slog.Logger so tests can swap it out.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithGroup(name string) Logger
	Slog() *slog.Logger
}

type slogLogger struct {
	logger *slog.Logger
}

// New wraps an slog handler.
func New(handler slog.Handler) Logger {
	return &slogLogger{logger: slog.New(handler)}
}

// Default logs info and above as text to stderr.
func Default() Logger {
	return Text(os.Stderr, slog.LevelInfo)
}

// Discard drops every record.
func Discard() Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func Text(w io.Writer, level slog.Level) Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// JSON logs one JSON object per record, with source locations.
func JSON(w io.Writer, level slog.Level) Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}))
}

// Pretty logs colored single-line records for terminals.
func Pretty(w io.Writer, level slog.Level) Logger {
	return New(NewPrettyHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup builds a logger from the --log-level and --log-format values.
func Setup(w io.Writer, level, format string) (Logger, error) {
	lvl := ParseLevel(level)
	switch strings.ToLower(format) {
	case "", "pretty":
		return Pretty(w, lvl), nil
	case "json":
		return JSON(w, lvl), nil
	case "text":
		return Text(w, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want pretty, json or text)", format)
	}
}

type loggerKey struct{}

// WithContext stores l in ctx.
func WithContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored in ctx, or Default.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return l
	}
	return Default()
}

// ParseLevel maps a level name to slog.Level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

func (l *slogLogger) WithGroup(name string) Logger {
	return &slogLogger{logger: l.logger.WithGroup(name)}
}

func (l *slogLogger) Slog() *slog.Logger { return l.logger }
