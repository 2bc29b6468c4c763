package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{mu: &sync.Mutex{}, w: &buf, level: slog.LevelDebug}
	l := slog.New(h).With("entity", "1v0").WithGroup("probe")

	r := slog.NewRecord(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelWarn, "probe failed", 0)
	r.AddAttrs(slog.String("err", "no body"))
	if err := l.Handler().Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"12:00:00.000 WARN  probe failed", "probe.entity=1v0", "probe.err=no body"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output %q missing %q", got, want)
		}
	}
	if !strings.HasSuffix(got, "\n") {
		t.Fatalf("line not terminated: %q", got)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Format: "console", Output: &buf})
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestInitReplacesDefault(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	L().Debug("hello", "n", 1)
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Fatalf("json output missing message: %q", buf.String())
	}
	Discard().Error("dropped")
}
