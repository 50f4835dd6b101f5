package loader

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"config.toml": FormatTOML,
		"config.yaml": FormatYAML,
		"CONFIG.YML":  FormatYAML,
		"config":      FormatTOML,
	}
	for path, want := range tests {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFileLoaderFormats(t *testing.T) {
	dir := t.TempDir()
	tomlPath := writeFile(t, dir, "a.toml", "[snap]\nsense_range = 12\n[keymap]\n\"mod+d\" = \"duplicate\"\n")
	yamlPath := writeFile(t, dir, "a.yaml", "snap:\n  sense_range: 12\nkeymap:\n  mod+d: duplicate\n")

	for _, path := range []string{tomlPath, yamlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			got, err := NewFileLoader(path).Load()
			if err != nil {
				t.Fatal(err)
			}
			snap, _ := got["snap"].(map[string]any)
			if n, ok := snap["sense_range"]; !ok || n == nil {
				t.Errorf("snap = %v", snap)
			}
			km, _ := got["keymap"].(map[string]any)
			if km["mod+d"] != "duplicate" {
				t.Errorf("keymap = %v", km)
			}
		})
	}
}

func TestFileLoaderMissingFile(t *testing.T) {
	got, err := NewFileLoader(filepath.Join(t.TempDir(), "none.toml")).Load()
	if err != nil || got != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", got, err)
	}
}

func TestFileLoaderParseError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.toml", "[snap\nsense_range = 1\n")
	_, err := NewFileLoader(path).Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ParseError", err)
	}
	if pe.Path != path || pe.Line == 0 {
		t.Errorf("ParseError = %+v", pe)
	}
}

func TestFileLoaderIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "snap:\n  sense_range: 4\n  disable_modifier: ctrl\n")
	path := writeFile(t, dir, "main.toml", "\"@include\" = \"base.yaml\"\n[snap]\nsense_range = 10\n")

	got, err := NewFileLoader(path).Load()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"snap": map[string]any{"sense_range": int64(10), "disable_modifier": "ctrl"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestFileLoaderIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "loop.toml", "\"@include\" = \"loop.toml\"\n")
	if _, err := NewFileLoader(path).Load(); !errors.Is(err, ErrIncludeDepthExceeded) {
		t.Errorf("err = %v", err)
	}
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader("TESSERA_", "snap", "history", "log")
	l.AddMapping("TESSERA_LOGFILE", "log.file")
	l.environ = func() []string {
		return []string{
			"TESSERA_SNAP_SENSE_RANGE=12.5",
			"TESSERA_HISTORY_MAX_ENTRIES=1",
			"TESSERA_LOG_LEVEL=debug",
			"TESSERA_LOGFILE=/tmp/t.log",
			"TESSERA_UNKNOWN_KEY=1",
			"TESSERA_SNAP=oops",
			"HOME=/root",
		}
	}
	got, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"snap":    map[string]any{"sense_range": 12.5},
		"history": map[string]any{"max_entries": int64(1)},
		"log":     map[string]any{"level": "debug", "file": "/tmp/t.log"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v\nwant %#v", got, want)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"off", false},
		{"42", int64(42)},
		{"1.5", 1.5},
		{"alt", "alt"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{"a": map[string]any{"x": 1, "y": 2}, "b": 1}
	src := map[string]any{"a": map[string]any{"y": 3}, "c": []any{1}}
	got := DeepMerge(dst, src)
	want := map[string]any{"a": map[string]any{"x": 1, "y": 3}, "b": 1, "c": []any{1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	src["c"].([]any)[0] = 9
	if got["c"].([]any)[0] != 1 {
		t.Error("merge should copy slices")
	}
}
