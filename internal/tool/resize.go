package tool

import (
	"github.com/dshills/tessera/internal/engine/action"
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/snap"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/mode"
	"github.com/dshills/tessera/internal/input/pointer"
)

// Resize drags one of the eight bbox handles of the selected item.
type Resize struct {
	id      item.ID
	handle  Handle
	from    geom.Rect
	gesture action.Gesture
	moved   bool
}

// NewResize creates the resize behavior.
func NewResize() *Resize { return &Resize{} }

func (*Resize) Name() string { return "resize" }

func (r *Resize) HandlePointer(ctx *Context, p Pointer) Output {
	switch ctx.Mode {
	case mode.Idle:
		return r.arm(ctx, p)
	case mode.Resizing:
	default:
		return Output{}
	}

	switch p.Kind {
	case pointer.Move:
		to := ResizeRect(r.from, r.handle, p.At())
		if collapsed(r.from, to) {
			return Output{}
		}
		r.moved = true
		return Output{Push: []history.Action{action.NewResize(r.id, r.gesture, r.from, to)}}
	case pointer.Up:
		return idle()
	}
	return Output{}
}

func (r *Resize) arm(ctx *Context, p Pointer) Output {
	if p.Kind != pointer.Down || p.Button != pointer.ButtonLeft {
		return Output{}
	}
	it, h, ok := handleUnder(ctx, p.World)
	if !ok {
		return Output{}
	}
	r.id, r.handle, r.from, r.gesture, r.moved = it.ID(), h, it.BBox(), action.NewGesture(), false

	own := it.Vertices()
	return Output{
		Mode:     mode.Resizing,
		Rules:    []snap.Rule{snap.Cement{Exclude: own}, snap.Align{Exclude: own}},
		SetRules: true,
	}
}

func (r *Resize) HandleCommand(ctx *Context, cmd input.Command) Output {
	if cmd.Name != input.CmdCancel || ctx.Mode != mode.Resizing {
		return Output{}
	}
	out := idle()
	out.Undo = r.moved
	r.moved = false
	return out
}

// collapsed reports whether to flattens an axis that from had extent on.
func collapsed(from, to geom.Rect) bool {
	return (from.Width() > 0 && to.Width() == 0) || (from.Height() > 0 && to.Height() == 0)
}
