package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiGreen  = "\033[32m"
	ansiGray   = "\033[90m"
	ansiCyan   = "\033[36m"
)

// PrettyHandler writes records as
//
//	15:04:05 INFO  message key=value group.key=value
//
// with ANSI colors.
type PrettyHandler struct {
	level slog.Leveler
	w     io.Writer
	mu    *sync.Mutex

	prefix string // dotted group path, with trailing dot
	attrs  []slog.Attr
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{level: level, w: w, mu: &sync.Mutex{}}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(ansiGray)
	sb.WriteString(r.Time.Format(time.TimeOnly))
	sb.WriteString(ansiReset)
	sb.WriteByte(' ')

	sb.WriteString(levelColor(r.Level))
	sb.WriteString(ansiBold)
	fmt.Fprintf(&sb, "%-5s", r.Level.String())
	sb.WriteString(ansiReset)
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	if len(h.attrs) > 0 || r.NumAttrs() > 0 {
		sb.WriteString(ansiCyan)
		for _, a := range h.attrs {
			sb.WriteByte(' ')
			writeAttr(&sb, a)
		}
		r.Attrs(func(a slog.Attr) bool {
			sb.WriteByte(' ')
			writeAttr(&sb, prefixed(a, h.prefix))
			return true
		})
		sb.WriteString(ansiReset)
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, prefixed(a, h.prefix))
	}
	return &next
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func prefixed(a slog.Attr, prefix string) slog.Attr {
	if prefix != "" {
		a.Key = prefix + a.Key
	}
	return a
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiGreen
	default:
		return ansiGray
	}
}

func writeAttr(sb *strings.Builder, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for i, ga := range v.Group() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeAttr(sb, prefixed(ga, a.Key+"."))
		}
		return
	}

	sb.WriteString(a.Key)
	sb.WriteByte('=')
	switch v.Kind() {
	case slog.KindString:
		writeString(sb, v.String())
	case slog.KindTime:
		sb.WriteString(v.Time().Format(time.RFC3339))
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			writeString(sb, err.Error())
			return
		}
		writeString(sb, fmt.Sprint(v.Any()))
	default:
		sb.WriteString(v.String())
	}
}

func writeString(sb *strings.Builder, s string) {
	if needsQuoting(s) {
		sb.WriteString(strconv.Quote(s))
		return
	}
	sb.WriteString(s)
}

func needsQuoting(s string) bool {
	return strings.ContainsAny(s, " \t\n\"=")
}
