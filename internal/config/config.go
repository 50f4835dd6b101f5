package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dshills/tessera/internal/config/loader"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/input/key"
	"github.com/dshills/tessera/internal/input/keymap"
	"github.com/dshills/tessera/internal/logging"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a value is out of range.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError is returned when a configuration file cannot be parsed.
type ParseError = loader.ParseError

// ValidationError describes one rejected setting.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "snap.sense_range".
	Path    string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// Config is the complete tessera configuration.
type Config struct {
	Snap     SnapConfig        `yaml:"snap"`
	History  HistoryConfig     `yaml:"history"`
	Pointer  PointerConfig     `yaml:"pointer"`
	Viewport ViewportConfig    `yaml:"viewport"`
	Style    StyleConfig       `yaml:"style"`
	Keymap   map[string]string `yaml:"keymap"`
	Scripts  map[string]string `yaml:"scripts"`
	Log      LogConfig         `yaml:"log"`
}

// SnapConfig configures the snap engine.
type SnapConfig struct {
	// SenseRange is the snapping distance in screen pixels.
	SenseRange       float64 `yaml:"sense_range"`
	DisableModifier  string  `yaml:"disable_modifier"`
	RestrictModifier string  `yaml:"restrict_modifier"`
}

// HistoryConfig configures undo history.
type HistoryConfig struct {
	// MaxEntries caps the undo list; 0 is unlimited.
	MaxEntries int `yaml:"max_entries"`
}

// PointerConfig configures pointer gestures. Distances are screen pixels.
type PointerConfig struct {
	DoubleClickMS       int     `yaml:"double_click_ms"`
	DoubleClickDistance float64 `yaml:"double_click_distance"`
	HitTolerance        float64 `yaml:"hit_tolerance"`
	HandleSize          float64 `yaml:"handle_size"`
	Nudge               float64 `yaml:"nudge"`
	NudgeLarge          float64 `yaml:"nudge_large"`
	DuplicateOffset     float64 `yaml:"duplicate_offset"`
}

// ViewportConfig configures zooming.
type ViewportConfig struct {
	ZoomStep float64 `yaml:"zoom_step"`
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
}

// StyleConfig is the style of newly drawn shapes.
type StyleConfig struct {
	Stroke      string  `yaml:"stroke"`
	StrokeWidth float64 `yaml:"stroke_width"`
	Fill        string  `yaml:"fill"`
	Opacity     float64 `yaml:"opacity"`
	FontSize    float64 `yaml:"font_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	// File receives log output; empty discards it, since the terminal
	// belongs to the editor.
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Snap: SnapConfig{
			SenseRange:       8,
			DisableModifier:  "alt",
			RestrictModifier: "shift",
		},
		History: HistoryConfig{MaxEntries: 500},
		Pointer: PointerConfig{
			DoubleClickMS:       400,
			DoubleClickDistance: 4,
			HitTolerance:        4,
			HandleSize:          6,
			Nudge:               1,
			NudgeLarge:          10,
			DuplicateOffset:     10,
		},
		Viewport: ViewportConfig{ZoomStep: 1.2, MinZoom: 0.05, MaxZoom: 64},
		Style: StyleConfig{
			Stroke:      "#000000",
			StrokeWidth: 1,
			Opacity:     1,
			FontSize:    12,
		},
		Keymap:  map[string]string{},
		Scripts: map[string]string{},
		Log:     LogConfig{Level: "info"},
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Keymap = maps.Clone(c.Keymap)
	c.Scripts = maps.Clone(c.Scripts)
	return c
}

// ScriptNames returns the configured script names in sorted order.
func (c Config) ScriptNames() []string {
	return slices.Sorted(maps.Keys(c.Scripts))
}

// Validate checks every setting and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, path string, value any, msg string) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Value: value, Message: msg})
		}
	}

	check(c.Snap.SenseRange > 0, "snap.sense_range", c.Snap.SenseRange, "must be positive")
	check(validModifier(c.Snap.DisableModifier), "snap.disable_modifier", c.Snap.DisableModifier, "unknown modifier")
	check(validModifier(c.Snap.RestrictModifier), "snap.restrict_modifier", c.Snap.RestrictModifier, "unknown modifier")

	check(c.History.MaxEntries >= 0, "history.max_entries", c.History.MaxEntries, "must not be negative")

	p := c.Pointer
	check(p.DoubleClickMS > 0, "pointer.double_click_ms", p.DoubleClickMS, "must be positive")
	check(p.DoubleClickDistance >= 0, "pointer.double_click_distance", p.DoubleClickDistance, "must not be negative")
	check(p.HitTolerance > 0, "pointer.hit_tolerance", p.HitTolerance, "must be positive")
	check(p.HandleSize > 0, "pointer.handle_size", p.HandleSize, "must be positive")
	check(p.Nudge > 0, "pointer.nudge", p.Nudge, "must be positive")
	check(p.NudgeLarge > 0, "pointer.nudge_large", p.NudgeLarge, "must be positive")
	check(p.DuplicateOffset >= 0, "pointer.duplicate_offset", p.DuplicateOffset, "must not be negative")

	v := c.Viewport
	check(v.ZoomStep > 1, "viewport.zoom_step", v.ZoomStep, "must be greater than 1")
	check(v.MinZoom > 0, "viewport.min_zoom", v.MinZoom, "must be positive")
	check(v.MaxZoom >= v.MinZoom, "viewport.max_zoom", v.MaxZoom, "must not be below min_zoom")

	s := c.Style
	check(item.ValidColor(s.Stroke), "style.stroke", s.Stroke, "invalid color")
	check(s.Fill == "" || item.ValidColor(s.Fill), "style.fill", s.Fill, "invalid color")
	check(s.StrokeWidth >= 0, "style.stroke_width", s.StrokeWidth, "must not be negative")
	check(s.Opacity >= 0 && s.Opacity <= 1, "style.opacity", s.Opacity, "must be within [0, 1]")
	check(s.FontSize > 0, "style.font_size", s.FontSize, "must be positive")

	if err := keymap.Default().Override(c.Keymap); err != nil {
		errs = append(errs, &ValidationError{Path: "keymap", Value: len(c.Keymap), Message: err.Error()})
	}
	for _, name := range c.ScriptNames() {
		check(strings.TrimSpace(c.Scripts[name]) != "", "scripts."+name, c.Scripts[name], "empty path")
		check(!strings.ContainsAny(name, " .\t"), "scripts."+name, name, "name must not contain spaces or dots")
	}

	_, ok := logging.ParseLevel(c.Log.Level)
	check(ok, "log.level", c.Log.Level, "unknown level")

	return errors.Join(errs...)
}

func validModifier(name string) bool {
	return name == "" || strings.EqualFold(name, "none") || key.ModifierFromName(name) != key.ModNone
}
