package tool

import (
	"github.com/dshills/tessera/internal/engine/action"
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/selection"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/key"
	"github.com/dshills/tessera/internal/input/mode"
	"github.com/dshills/tessera/internal/input/pointer"
)

// Select picks the topmost item under a left press in idle. Shift toggles
// membership instead of replacing the selection.
type Select struct{}

// NewSelect creates the select behavior.
func NewSelect() *Select { return &Select{} }

func (*Select) Name() string { return "select" }

func (*Select) HandlePointer(ctx *Context, p Pointer) Output {
	if ctx.Mode != mode.Idle || p.Kind != pointer.Down || p.Button != pointer.ButtonLeft {
		return Output{}
	}
	if claimed(ctx, p.World) {
		return Output{}
	}
	hit, ok := ctx.Scene.HitTest(p.World, ctx.Tol())
	switch {
	case !ok && p.Mods.Has(key.ModShift):
		return Output{}
	case !ok:
		return selectOutput(selection.New())
	case p.Mods.Has(key.ModShift):
		return selectOutput(ctx.Selection.Toggle(hit.ID()))
	case ctx.Selection.Has(hit.ID()):
		// Keep a multi-selection so it can be dragged as a whole.
		return Output{}
	}
	return selectOutput(selection.New(hit.ID()))
}

func (*Select) HandleCommand(*Context, input.Command) Output { return Output{} }

// Drag moves the items under a left press until release, pushing one
// coalesced Move per gesture. It also handles keyboard nudges.
type Drag struct {
	ids     []item.ID
	origin  geom.Point
	gesture action.Gesture
	moved   bool
}

// NewDrag creates the drag behavior.
func NewDrag() *Drag { return &Drag{} }

func (*Drag) Name() string { return "drag" }

func (d *Drag) HandlePointer(ctx *Context, p Pointer) Output {
	switch ctx.Mode {
	case mode.Idle:
		return d.arm(ctx, p)
	case mode.Dragging:
	default:
		return Output{}
	}

	switch p.Kind {
	case pointer.Move:
		delta := p.World.Sub(d.origin)
		if delta.IsZero() && !d.moved {
			return Output{}
		}
		d.moved = true
		return Output{Push: []history.Action{action.NewMove(d.ids, d.gesture, delta)}}
	case pointer.Up:
		d.ids = nil
		return Output{Mode: mode.Idle}
	}
	return Output{}
}

func (d *Drag) arm(ctx *Context, p Pointer) Output {
	if p.Kind != pointer.Down || p.Button != pointer.ButtonLeft || p.Mods.Has(key.ModShift) {
		return Output{}
	}
	if claimed(ctx, p.World) {
		return Output{}
	}
	hit, ok := dragTarget(ctx, p.World)
	if !ok {
		return Output{}
	}
	ids := []item.ID{hit.ID()}
	if ctx.Selection.Has(hit.ID()) {
		ids = unlocked(ctx, ctx.Selection.IDs())
	}
	d.ids, d.origin, d.gesture, d.moved = ids, p.World, action.NewGesture(), false
	return Output{Mode: mode.Dragging}
}

func (d *Drag) HandleCommand(ctx *Context, cmd input.Command) Output {
	switch cmd.Name {
	case input.CmdNudge:
		if ctx.Mode != mode.Idle || ctx.Selection.Empty() {
			return Output{}
		}
		step := ctx.Settings.Nudge
		if cmd.Args.GetBool("large") {
			step = ctx.Settings.NudgeLarge
		}
		delta := geom.Pt(cmd.Args.GetFloat("dx")*step, cmd.Args.GetFloat("dy")*step)
		ids := unlocked(ctx, ctx.Selection.IDs())
		if delta.IsZero() || len(ids) == 0 {
			return Output{}
		}
		return Output{Push: []history.Action{action.NewNudge(ids, delta)}}
	case input.CmdCancel:
		if ctx.Mode != mode.Dragging {
			return Output{}
		}
		out := idle()
		out.Undo = d.moved
		d.ids, d.moved = nil, false
		return out
	}
	return Output{}
}
