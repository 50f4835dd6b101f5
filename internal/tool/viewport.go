package tool

import (
	"math"

	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/mode"
	"github.com/dshills/tessera/internal/input/pointer"
)

// Viewport zooms with the wheel around the pointer, pans while the middle
// button is held and handles the zoom commands. Scrolling away from the
// user zooms in. Panning is pushed on top of the current mode so an
// in-progress drawing survives it.
type Viewport struct {
	last geom.Point
}

// NewViewport creates the viewport behavior.
func NewViewport() *Viewport { return &Viewport{} }

func (*Viewport) Name() string { return "viewport" }

func (v *Viewport) HandlePointer(ctx *Context, p Pointer) Output {
	switch {
	case p.Kind == pointer.Wheel && p.Delta != 0:
		return v.zoom(ctx, p.Screen, math.Pow(ctx.Settings.ZoomStep, p.Delta))
	case p.Kind == pointer.Down && p.Button == pointer.ButtonMiddle && ctx.Mode != mode.Panning:
		v.last = p.Screen
		return Output{PushMode: mode.Panning}
	case ctx.Mode != mode.Panning:
		return Output{}
	}

	switch p.Kind {
	case pointer.Move:
		d := p.Screen.Sub(v.last)
		v.last = p.Screen
		vp := ctx.Viewport.Pan(d.X, d.Y)
		return Output{Viewport: &vp}
	case pointer.Up:
		if p.Button == pointer.ButtonMiddle {
			return Output{PopMode: true}
		}
	}
	return Output{}
}

func (v *Viewport) zoom(ctx *Context, anchor geom.Point, factor float64) Output {
	vp := ctx.Viewport.ZoomAt(anchor, factor, ctx.Settings.MinZoom, ctx.Settings.MaxZoom)
	if vp == ctx.Viewport {
		return Output{}
	}
	return Output{Viewport: &vp}
}

func (v *Viewport) HandleCommand(ctx *Context, cmd input.Command) Output {
	switch cmd.Name {
	case input.CmdZoomIn:
		return v.zoom(ctx, ctx.Screen.Center(), ctx.Settings.ZoomStep)
	case input.CmdZoomOut:
		return v.zoom(ctx, ctx.Screen.Center(), 1/ctx.Settings.ZoomStep)
	case input.CmdZoomReset:
		vp := geom.Identity()
		if vp == ctx.Viewport {
			return Output{}
		}
		return Output{Viewport: &vp}
	}
	return Output{}
}
