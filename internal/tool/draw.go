package tool

import (
	"slices"

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

// drawRules are the snap rules of a drawing tool waiting for its first
// point.
func drawRules() []snap.Rule {
	return []snap.Rule{snap.Cement{}, snap.Align{}}
}

// ready switches to a tool's ready mode from idle or another tool's ready
// mode. Selecting a tool clears the selection.
func ready(ctx *Context, to string) Output {
	if ctx.Mode != mode.Idle && mode.State(ctx.Mode) != "ready" {
		return Output{}
	}
	if ctx.Mode == to {
		return Output{}
	}
	out := Output{Mode: to, Rules: drawRules(), SetRules: true, SetPreview: true}
	if !ctx.Selection.Empty() {
		out.Select = &selection.Selection{}
	}
	return out
}

// add returns the output finishing a drawing gesture with a new item.
func add(it item.Item) Output {
	out := idle()
	out.Push = []history.Action{action.NewAddItem(it)}
	out.SelectAdded = true
	return out
}

// Rect draws an axis-aligned rectangle polygon by dragging.
type Rect struct {
	start geom.Point
}

// NewRect creates the rectangle tool.
func NewRect() *Rect { return &Rect{} }

func (*Rect) Name() string { return "rect" }

func (r *Rect) HandlePointer(ctx *Context, p Pointer) Output {
	switch {
	case ctx.Mode == mode.RectReady && p.Kind == pointer.Down && p.Button == pointer.ButtonLeft:
		r.start = p.At()
		return Output{Mode: mode.RectDrawing}
	case ctx.Mode != mode.RectDrawing:
		return Output{}
	}

	switch p.Kind {
	case pointer.Move:
		return Output{Preview: r.shape(ctx, p.At()), SetPreview: true}
	case pointer.Up:
		if geom.RectFromPoints(r.start, p.At()).Empty() {
			return idle()
		}
		return add(r.shape(ctx, p.At()))
	}
	return Output{}
}

func (r *Rect) shape(ctx *Context, end geom.Point) item.Item {
	pg := item.NewPolygon(item.Rectangle(r.start, end), ctx.Settings.Style, ctx.newMeta())
	pg.Alpha = ctx.Settings.Opacity
	return pg
}

func (r *Rect) HandleCommand(ctx *Context, cmd input.Command) Output {
	if cmd.Name != input.CmdRect {
		return Output{}
	}
	return ready(ctx, mode.RectReady)
}

// path accumulates the clicked points of the line and polygon tools.
type path struct {
	points []geom.Point
}

func (pa *path) reset(p geom.Point) {
	pa.points = append(pa.points[:0], p)
}

func (pa *path) last() geom.Point { return pa.points[len(pa.points)-1] }

// rules snap the next point: Restrict against the last point when the
// restrict modifier is held, then cement onto the scene or onto the path
// itself, then align.
func (pa *path) rules() []snap.Rule {
	own := slices.Clone(pa.points)
	return []snap.Rule{
		snap.Restrict{Anchor: pa.last()},
		snap.Cement{Include: own},
		snap.Align{Include: own},
	}
}

// with returns the points plus p.
func (pa *path) with(p geom.Point) []geom.Point {
	return append(slices.Clone(pa.points), p)
}

// dedupe drops consecutive points closer than tol, such as the extra
// presses of a double-click.
func dedupe(points []geom.Point, tol float64) []geom.Point {
	out := make([]geom.Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1].Dist(p) <= tol {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Line draws a polyline click by click; double-click or enter finishes.
type Line struct {
	path
}

// NewLine creates the line tool.
func NewLine() *Line { return &Line{} }

func (*Line) Name() string { return "line" }

func (l *Line) HandlePointer(ctx *Context, p Pointer) Output {
	switch {
	case ctx.Mode == mode.LineReady && p.Kind == pointer.Down && p.Button == pointer.ButtonLeft:
		l.reset(p.At())
		return Output{Mode: mode.LineDrawing, Rules: l.rules(), SetRules: true}
	case ctx.Mode != mode.LineDrawing:
		return Output{}
	}

	switch p.Kind {
	case pointer.Move:
		return Output{Preview: l.shape(ctx, l.with(p.At())), SetPreview: true}
	case pointer.Down:
		if p.Button != pointer.ButtonLeft {
			return Output{}
		}
		l.points = append(l.points, p.At())
		return Output{Rules: l.rules(), SetRules: true}
	case pointer.DoubleClick:
		return l.finish(ctx)
	}
	return Output{}
}

func (l *Line) finish(ctx *Context) Output {
	pts := dedupe(l.points, ctx.Tol())
	if len(pts) < 2 {
		return idle()
	}
	return add(l.shape(ctx, pts))
}

func (l *Line) shape(ctx *Context, pts []geom.Point) item.Item {
	pl := item.NewPolyline(pts, ctx.Settings.Style, ctx.newMeta())
	pl.Alpha = ctx.Settings.Opacity
	return pl
}

func (l *Line) HandleCommand(ctx *Context, cmd input.Command) Output {
	switch cmd.Name {
	case input.CmdLine:
		return ready(ctx, mode.LineReady)
	case input.CmdFinish:
		if ctx.Mode == mode.LineDrawing {
			return l.finish(ctx)
		}
	case input.CmdDelete:
		if ctx.Mode == mode.LineDrawing && len(l.points) > 1 {
			l.points = l.points[:len(l.points)-1]
			return Output{Rules: l.rules(), SetRules: true, Preview: l.shape(ctx, l.points), SetPreview: true}
		}
	}
	return Output{}
}

// Polygon draws a closed polygon click by click. Clicking the first point,
// double-clicking or pressing enter closes it once it has three distinct
// points.
type Polygon struct {
	path
}

// NewPolygon creates the polygon tool.
func NewPolygon() *Polygon { return &Polygon{} }

func (*Polygon) Name() string { return "polygon" }

// CanClose reports whether points form a valid polygon.
func CanClose(points []geom.Point, tol float64) bool {
	pts := dedupe(points, tol)
	if len(pts) > 1 && pts[0].Dist(pts[len(pts)-1]) <= tol {
		pts = pts[:len(pts)-1]
	}
	return len(pts) >= 3
}

func (pg *Polygon) HandlePointer(ctx *Context, p Pointer) Output {
	switch {
	case ctx.Mode == mode.PolygonReady && p.Kind == pointer.Down && p.Button == pointer.ButtonLeft:
		pg.reset(p.At())
		return Output{Mode: mode.PolygonDrawing, Rules: pg.rules(), SetRules: true}
	case ctx.Mode != mode.PolygonDrawing:
		return Output{}
	}

	switch p.Kind {
	case pointer.Move:
		pl := item.NewPolyline(pg.with(p.At()), ctx.Settings.Style, ctx.newMeta())
		return Output{Preview: pl, SetPreview: true}
	case pointer.Down:
		if p.Button != pointer.ButtonLeft {
			return Output{}
		}
		at := p.At()
		if at.Dist(pg.points[0]) <= ctx.Tol() && CanClose(pg.points, ctx.Tol()) {
			return pg.finish(ctx)
		}
		pg.points = append(pg.points, at)
		return Output{Rules: pg.rules(), SetRules: true}
	case pointer.DoubleClick:
		return pg.finish(ctx)
	}
	return Output{}
}

// finish closes the polygon when the can-close guard holds and otherwise
// keeps drawing.
func (pg *Polygon) finish(ctx *Context) Output {
	if !CanClose(pg.points, ctx.Tol()) {
		return Output{}
	}
	pts := dedupe(pg.points, ctx.Tol())
	if pts[0].Dist(pts[len(pts)-1]) <= ctx.Tol() {
		pts = pts[:len(pts)-1]
	}
	shape := item.NewPolygon(pts, ctx.Settings.Style, ctx.newMeta())
	shape.Alpha = ctx.Settings.Opacity
	return add(shape)
}

func (pg *Polygon) HandleCommand(ctx *Context, cmd input.Command) Output {
	switch cmd.Name {
	case input.CmdPolygon:
		return ready(ctx, mode.PolygonReady)
	case input.CmdFinish:
		if ctx.Mode == mode.PolygonDrawing {
			return pg.finish(ctx)
		}
	case input.CmdDelete:
		if ctx.Mode == mode.PolygonDrawing && len(pg.points) > 1 {
			pg.points = pg.points[:len(pg.points)-1]
			return Output{Rules: pg.rules(), SetRules: true}
		}
	}
	return Output{}
}
