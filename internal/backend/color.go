package backend

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/tessera/internal/engine/item"
)

// Theme holds the colors of everything that is not an item.
type Theme struct {
	Background string
	Selection  string
	Handle     string
	Preview    string
	Guide      string
	Status     string
	StatusText string
	Locked     string
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background: "#101014",
		Selection:  "#3d8bfd",
		Handle:     "#ffffff",
		Preview:    "#8a8a8a",
		Guide:      "#ff4fa3",
		Status:     "#2a2a33",
		StatusText: "#d0d0d0",
		Locked:     "#707070",
	}
}

// color converts an item color to a terminal color. Invalid and "none"
// colors map to the terminal default.
func color(s string) tcell.Color {
	c, ok := item.ParseColor(s)
	if !ok {
		return tcell.ColorDefault
	}
	return rgb(c)
}

func rgb(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// faded blends s toward the background by the given opacity, so
// translucent items read as dimmer on a terminal that cannot blend.
func faded(s, background string, opacity float64) tcell.Color {
	c, ok := item.ParseColor(s)
	if !ok {
		return tcell.ColorDefault
	}
	if opacity >= 1 {
		return rgb(c)
	}
	bg, ok := item.ParseColor(background)
	if !ok {
		bg = colorful.Color{}
	}
	return rgb(bg.BlendLab(c, max(opacity, 0)))
}

// style returns the default style over the theme background.
func (th Theme) style() tcell.Style {
	return tcell.StyleDefault.Background(color(th.Background))
}
