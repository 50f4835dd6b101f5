package tool

import (
	"github.com/dshills/tessera/internal/engine/action"
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/selection"
	"github.com/dshills/tessera/internal/engine/snap"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/mode"
	"github.com/dshills/tessera/internal/input/pointer"
)

// Vertex edits the vertices of the selected shape in vertex mode: drag a
// vertex to move it, double-click a vertex to delete it and double-click
// an edge to insert one.
type Vertex struct {
	id      item.ID
	index   int
	gesture action.Gesture
	moved   bool
}

// NewVertex creates the vertex behavior.
func NewVertex() *Vertex { return &Vertex{} }

func (*Vertex) Name() string { return "vertex" }

func (v *Vertex) HandlePointer(ctx *Context, p Pointer) Output {
	switch ctx.Mode {
	case mode.Idle:
	case mode.VertexMoving:
		return v.moving(p)
	default:
		return Output{}
	}

	switch {
	case p.Kind == pointer.Down && p.Button == pointer.ButtonLeft:
		it, i, ok := vertexUnder(ctx, p.World)
		if !ok {
			return Output{}
		}
		at := it.Vertices()[i]
		v.id, v.index, v.gesture, v.moved = it.ID(), i, action.NewGesture(), false
		others := []geom.Point{at}
		return Output{
			Mode:     mode.VertexMoving,
			Rules:    []snap.Rule{snap.Cement{Exclude: others}, snap.Align{Exclude: others}},
			SetRules: true,
		}
	case p.Kind == pointer.DoubleClick:
		return v.toggleVertex(ctx, p.World)
	}
	return Output{}
}

func (v *Vertex) moving(p Pointer) Output {
	switch p.Kind {
	case pointer.Move:
		v.moved = true
		return Output{Push: []history.Action{action.NewMoveVertex(v.id, v.index, v.gesture, p.At())}}
	case pointer.Up:
		return idle()
	}
	return Output{}
}

// toggleVertex deletes the vertex under p or inserts one on the edge
// under p.
func (v *Vertex) toggleVertex(ctx *Context, p geom.Point) Output {
	if it, i, ok := vertexUnder(ctx, p); ok {
		ed, ok := it.(item.VertexEditor)
		if !ok || len(it.Vertices()) <= ed.MinVertices() {
			return Output{}
		}
		return Output{Push: []history.Action{action.NewDeleteVertex(it.ID(), i)}}
	}
	it, ok := vertexTarget(ctx)
	if !ok {
		return Output{}
	}
	i, at, ok := edgeUnder(it, p, ctx.Tol())
	if !ok {
		return Output{}
	}
	return Output{Push: []history.Action{action.NewInsertVertex(it.ID(), i, at)}}
}

// edgeUnder returns the insertion index and position of the edge of it
// nearest to p within tol.
func edgeUnder(it item.Item, p geom.Point, tol float64) (int, geom.Point, bool) {
	pts := it.Vertices()
	n := len(pts) - 1
	if it.Kind() == item.KindPolygon {
		n = len(pts)
	}
	best, bestDist := -1, tol
	var at geom.Point
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		if d := geom.DistToSegment(p, a, b); d <= bestDist {
			best, bestDist, at = i+1, d, geom.ClosestOnSegment(p, a, b)
		}
	}
	return best, at, best >= 0
}

func (v *Vertex) HandleCommand(ctx *Context, cmd input.Command) Output {
	switch cmd.Name {
	case input.CmdVertexMode:
		if ctx.Mode != mode.Idle {
			return Output{}
		}
		if ctx.Selection.Mode() == selection.ModeVertices {
			return selectOutput(ctx.Selection.WithMode(selection.ModeBBox))
		}
		if !selection.VertexEditable(ctx.Selection, ctx.Scene) {
			return Output{}
		}
		return selectOutput(ctx.Selection.WithMode(selection.ModeVertices))
	case input.CmdCancel:
		if ctx.Mode != mode.VertexMoving {
			return Output{}
		}
		out := idle()
		out.Undo = v.moved
		v.moved = false
		return out
	}
	return Output{}
}
