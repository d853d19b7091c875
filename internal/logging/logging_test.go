package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNopDisabled(t *testing.T) {
	l := Nop()
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("nop logger should be disabled")
	}
	if OrNop(nil) == nil {
		t.Fatalf("OrNop(nil) returned nil")
	}
	custom := slog.Default()
	if OrNop(custom) != custom {
		t.Fatalf("OrNop should pass through")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo, "x": slog.LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelWarn)
	l.Info("hidden")
	l.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "k=1") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citymap.log")
	l, closeFn, err := Open(path, "debug")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l.Debug("hello")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "hello") {
		t.Fatalf("log file missing record: %q", b)
	}
	l, closeFn, err = Open("", "")
	if err != nil || l == nil || closeFn() != nil {
		t.Fatalf("empty path should yield nop logger")
	}
}
