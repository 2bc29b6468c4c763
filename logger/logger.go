// Package logger configures the process-wide slog logger.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

type Config struct {
	Level  string
	Format string // "text", "json" or "console"
	Output io.Writer
}

var (
	mu sync.RWMutex
	lg *slog.Logger
)

// New builds a logger from cfg without installing it.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(cfg.Output, opts)
	case "text":
		handler = slog.NewTextHandler(cfg.Output, opts)
	default:
		handler = &consoleHandler{mu: &sync.Mutex{}, w: cfg.Output, level: level}
	}
	return slog.New(handler)
}

// Init installs a logger built from cfg as both L() and slog's default.
// Later calls replace it.
func Init(cfg Config) {
	l := New(cfg)
	mu.Lock()
	lg = l
	mu.Unlock()
	slog.SetDefault(l)
}

// L returns the installed logger, falling back to info-level console output.
func L() *slog.Logger {
	mu.RLock()
	l := lg
	mu.RUnlock()
	if l == nil {
		Init(Config{Level: "info"})
		return L()
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
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

// consoleHandler writes one line per record:
//
//	12:00:00.000 WARN  reload rejected  file=movement.yaml err=...
type consoleHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
	group string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format("15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&b, h.group, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	c.attrs = append(c.attrs, attrs...)
	return c
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	c := h.clone()
	if c.group != "" {
		c.group += "." + name
	} else {
		c.group = name
	}
	return c
}

func (h *consoleHandler) clone() *consoleHandler {
	return &consoleHandler{
		mu:    h.mu,
		w:     h.w,
		level: h.level,
		attrs: append([]slog.Attr(nil), h.attrs...),
		group: h.group,
	}
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	b.WriteString("  ")
	b.WriteString(key)
	b.WriteByte('=')
	v := a.Value.Resolve()
	if v.Kind() == slog.KindTime {
		b.WriteString(v.Time().Format(time.RFC3339))
		return
	}
	b.WriteString(v.String())
}
