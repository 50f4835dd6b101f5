package config

import (
	"strings"
	"time"

	"github.com/dshills/tessera/internal/editor"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/input/key"
	"github.com/dshills/tessera/internal/input/keymap"
	"github.com/dshills/tessera/internal/logging"
)

// EditorSettings converts c into the runtime editor settings.
func (c Config) EditorSettings() editor.Settings {
	s := editor.DefaultSettings()

	s.SenseRange = c.Snap.SenseRange
	s.DisableModifier = modifier(c.Snap.DisableModifier)
	s.RestrictModifier = modifier(c.Snap.RestrictModifier)
	s.MaxHistory = c.History.MaxEntries
	s.DoubleClickTime = time.Duration(c.Pointer.DoubleClickMS) * time.Millisecond
	s.DoubleClickDistance = c.Pointer.DoubleClickDistance

	t := &s.Tool
	t.HitTolerance = c.Pointer.HitTolerance
	t.HandleSize = c.Pointer.HandleSize
	t.Nudge = c.Pointer.Nudge
	t.NudgeLarge = c.Pointer.NudgeLarge
	t.DuplicateOffset = c.Pointer.DuplicateOffset
	t.ZoomStep = c.Viewport.ZoomStep
	t.MinZoom = c.Viewport.MinZoom
	t.MaxZoom = c.Viewport.MaxZoom
	t.Style = item.Style{
		Stroke:      c.Style.Stroke,
		StrokeWidth: c.Style.StrokeWidth,
		Fill:        c.Style.Fill,
	}
	t.Opacity = c.Style.Opacity
	t.FontSize = c.Style.FontSize
	return s
}

// KeymapFor returns the default keymap with the [keymap] overrides applied.
func (c Config) KeymapFor() (*keymap.Keymap, error) {
	km := keymap.Default()
	if err := km.Override(c.Keymap); err != nil {
		return nil, err
	}
	return km, nil
}

// LogLevel returns the configured level, or info when it is unknown.
func (c Config) LogLevel() logging.Level {
	if l, ok := logging.ParseLevel(c.Log.Level); ok {
		return l
	}
	return logging.LevelInfo
}

func modifier(name string) key.Modifier {
	if strings.EqualFold(name, "none") {
		return key.ModNone
	}
	return key.ModifierFromName(name)
}
