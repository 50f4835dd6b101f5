package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
		ok    bool
	}{
		{"debug", LevelDebug, true},
		{"DEBUG", LevelDebug, true},
		{"Info", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"error", LevelError, true},
		{"verbose", LevelInfo, false},
		{"", LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.input, got, ok)
		}
	}
}

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	l := New(Config{Level: level, Output: buf, Prefix: "test"})
	l.sink.now = func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC) }
	return l
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug)
	l.WithFields(map[string]any{"z": 1, "a": "x"}).Info("loaded %d items", 3)

	want := "2026-01-02T15:04:05.000 [INFO] test: loaded 3 items {a=x, z=1}\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelWarn)
	child := l.WithComponent("editor")

	child.Info("hidden")
	child.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %q", buf.String())
	}

	// Children share the parent's level.
	buf.Reset()
	l.SetLevel(LevelDebug)
	child.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible {component=editor}") {
		t.Errorf("output = %q", buf.String())
	}
	if !child.Enabled(LevelDebug) {
		t.Error("Enabled(Debug) = false")
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Error("nothing %s", "here")
	if NullLogger.Enabled(LevelError) {
		t.Error("NullLogger should be disabled")
	}
}

func TestGetSet(t *testing.T) {
	prev := Get()
	defer Set(prev)

	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelInfo)
	Set(l)
	if Get() != l {
		t.Error("Get should return the logger passed to Set")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tessera.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	New(Config{Output: f}).Info("hello")
}
