package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/tessera/internal/config/loader"
	"github.com/dshills/tessera/internal/input/key"
	"github.com/dshills/tessera/internal/logging"
)

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	want := filepath.Join(dir, "tessera", "config.toml")
	if got := DefaultPath(); got != want && !strings.HasSuffix(got, filepath.Join("tessera", "config.toml")) {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Snap.SenseRange != 8 || cfg.History.MaxEntries != 500 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadLayers(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[snap]
sense_range = 12
disable_modifier = "ctrl"

[history]
max_entries = 50

[style]
stroke = "#ff0000"

[keymap]
"mod+d" = "duplicate"
"d" = "none"

[scripts]
grid = "grid.lua"
`)
	t.Setenv("TESSERA_HISTORY_MAX_ENTRIES", "20")
	t.Setenv("TESSERA_VIEWPORT_ZOOM_STEP", "1.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Snap.SenseRange != 12 || cfg.Snap.DisableModifier != "ctrl" {
		t.Errorf("snap = %+v", cfg.Snap)
	}
	if cfg.Snap.RestrictModifier != "shift" {
		t.Errorf("unset keys keep their defaults, got %q", cfg.Snap.RestrictModifier)
	}
	if cfg.History.MaxEntries != 20 {
		t.Errorf("environment should override the file, got %d", cfg.History.MaxEntries)
	}
	if cfg.Viewport.ZoomStep != 1.5 {
		t.Errorf("zoom_step = %v", cfg.Viewport.ZoomStep)
	}
	if cfg.Style.Stroke != "#ff0000" || cfg.Style.Opacity != 1 {
		t.Errorf("style = %+v", cfg.Style)
	}
	if cfg.Keymap["mod+d"] != "duplicate" || cfg.Scripts["grid"] != "grid.lua" {
		t.Errorf("keymap %v scripts %v", cfg.Keymap, cfg.Scripts)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
pointer:
  hit_tolerance: 6
  double_click_ms: 250
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pointer.HitTolerance != 6 || cfg.Pointer.DoubleClickMS != 250 || cfg.Log.Level != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		check   func(error) bool
	}{
		{
			name:    "parse error",
			file:    "bad.toml",
			content: "[snap\n",
			check: func(err error) bool {
				var pe *ParseError
				return errors.As(err, &pe)
			},
		},
		{
			name:    "unknown key",
			file:    "unknown.toml",
			content: "[snap]\nrange = 3\n",
			check:   func(err error) bool { return err != nil && strings.Contains(err.Error(), "range") },
		},
		{
			name:    "out of range",
			file:    "range.yaml",
			content: "viewport:\n  zoom_step: 0.5\n",
			check:   func(err error) bool { return errors.Is(err, ErrValidationFailed) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			if !tt.check(err) {
				t.Errorf("err = %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"sense range", func(c *Config) { c.Snap.SenseRange = 0 }, "snap.sense_range"},
		{"modifier", func(c *Config) { c.Snap.DisableModifier = "hyper" }, "snap.disable_modifier"},
		{"history", func(c *Config) { c.History.MaxEntries = -1 }, "history.max_entries"},
		{"zoom bounds", func(c *Config) { c.Viewport.MaxZoom = 0.01 }, "viewport.max_zoom"},
		{"stroke color", func(c *Config) { c.Style.Stroke = "not-a-color" }, "style.stroke"},
		{"opacity", func(c *Config) { c.Style.Opacity = 2 }, "style.opacity"},
		{"keymap", func(c *Config) { c.Keymap["ctrl+"] = "undo" }, "keymap"},
		{"script name", func(c *Config) { c.Scripts["a.b"] = "x.lua" }, "scripts.a.b"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Path != tt.path {
				t.Errorf("Validate() = %v, want error for %s", err, tt.path)
			}
		})
	}
}

func TestEditorSettings(t *testing.T) {
	cfg := Default()
	cfg.Snap.SenseRange = 10
	cfg.Snap.DisableModifier = "none"
	cfg.Pointer.DoubleClickMS = 300
	cfg.Style.Fill = "#00ff00"
	cfg.History.MaxEntries = 0

	s := cfg.EditorSettings()
	if s.SenseRange != 10 || s.DisableModifier != key.ModNone || s.RestrictModifier != key.ModShift {
		t.Errorf("snap settings = %+v", s)
	}
	if s.DoubleClickTime != 300*time.Millisecond || s.MaxHistory != 0 {
		t.Errorf("pointer/history = %v %d", s.DoubleClickTime, s.MaxHistory)
	}
	if s.Tool.Style.Fill != "#00ff00" || s.Tool.ZoomStep != 1.2 {
		t.Errorf("tool = %+v", s.Tool)
	}
}

func TestKeymapFor(t *testing.T) {
	cfg := Default()
	cfg.Keymap["x"] = "delete"
	cfg.Keymap["d"] = "none"
	km, err := cfg.KeymapFor()
	if err != nil {
		t.Fatal(err)
	}
	if cmd, ok := km.Lookup(key.NewRuneEvent('x', 0), "idle"); !ok || cmd.Name != "delete" {
		t.Errorf("x = %v %v", cmd, ok)
	}
	if _, ok := km.Lookup(key.NewRuneEvent('d', 0), "idle"); ok {
		t.Error("d should be unbound")
	}
}

func TestLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "WARN"
	if cfg.LogLevel() != logging.LevelWarn {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("[style]\nopacity = 0.5\n"), loader.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Style.Opacity != 0.5 {
		t.Errorf("opacity = %v", cfg.Style.Opacity)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := Default()
	cfg.Keymap["a"] = "undo"
	c := cfg.Clone()
	c.Keymap["a"] = "redo"
	if cfg.Keymap["a"] != "undo" {
		t.Error("Clone shares the keymap table")
	}
}

func TestReloader(t *testing.T) {
	path := writeConfig(t, "config.toml", "[snap]\nsense_range = 8\n")
	r, err := NewReloader(path, Default())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got := make(chan Config, 4)
	r.OnReload(func(c Config) { got <- c })

	if err := os.WriteFile(path, []byte("[snap]\nsense_range = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// An invalid file is skipped; the next valid one is delivered.
	time.Sleep(400 * time.Millisecond)
	if err := os.WriteFile(path, []byte("[snap]\nsense_range = 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-got:
		if c.Snap.SenseRange != 16 {
			t.Errorf("reloaded sense_range = %v", c.Snap.SenseRange)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
	if r.Current().Snap.SenseRange != 16 {
		t.Errorf("Current() = %+v", r.Current().Snap)
	}
}
