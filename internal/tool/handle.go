package tool

import (
	"fmt"

	"github.com/dshills/tessera/internal/engine/geom"
)

// Handle names a resize grip on a bounding box.
type Handle string

// Resize handles, clockwise from the top-left corner.
const (
	HandleNW Handle = "nw"
	HandleN  Handle = "n"
	HandleNE Handle = "ne"
	HandleE  Handle = "e"
	HandleSE Handle = "se"
	HandleS  Handle = "s"
	HandleSW Handle = "sw"
	HandleW  Handle = "w"
)

// Handles lists every handle in hit-test order.
var Handles = []Handle{HandleNW, HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW}

// corner selects the min or max side of a rect on one axis.
type corner uint8

const (
	cMin corner = iota
	cMax
)

func (c corner) of(lo, hi float64) float64 {
	if c == cMax {
		return hi
	}
	return lo
}

// grip describes how a handle resizes: the anchor stays fixed, the free
// axes follow the pointer and a locked axis keeps the value of lockX/lockY.
type grip struct {
	anchorX, anchorY corner
	freeX, freeY     bool
	lockX, lockY     corner
}

// grips is the anchor table. Edge handles anchor on a corner rather than
// on the opposite edge midpoint, so the locked axis keeps the far side.
var grips = map[Handle]grip{
	HandleNW: {anchorX: cMax, anchorY: cMax, freeX: true, freeY: true},
	HandleN:  {anchorX: cMin, anchorY: cMax, freeY: true, lockX: cMax},
	HandleNE: {anchorX: cMin, anchorY: cMax, freeX: true, freeY: true},
	HandleE:  {anchorX: cMin, anchorY: cMin, freeX: true, lockY: cMax},
	HandleSE: {anchorX: cMin, anchorY: cMin, freeX: true, freeY: true},
	HandleS:  {anchorX: cMin, anchorY: cMin, freeY: true, lockX: cMax},
	HandleSW: {anchorX: cMax, anchorY: cMin, freeX: true, freeY: true},
	HandleW:  {anchorX: cMax, anchorY: cMin, freeX: true, lockY: cMax},
}

func gripOf(h Handle) grip {
	g, ok := grips[h]
	if !ok {
		panic(fmt.Sprintf("tool: unknown resize handle %q", h))
	}
	return g
}

// Anchor returns the point of r that stays fixed while h is dragged.
func Anchor(r geom.Rect, h Handle) geom.Point {
	g := gripOf(h)
	return geom.Pt(g.anchorX.of(r.Min.X, r.Max.X), g.anchorY.of(r.Min.Y, r.Max.Y))
}

// HandlePoint returns the position of h on r.
func HandlePoint(r geom.Rect, h Handle) geom.Point {
	c := r.Center()
	switch h {
	case HandleNW:
		return r.Min
	case HandleN:
		return geom.Pt(c.X, r.Min.Y)
	case HandleNE:
		return geom.Pt(r.Max.X, r.Min.Y)
	case HandleE:
		return geom.Pt(r.Max.X, c.Y)
	case HandleSE:
		return r.Max
	case HandleS:
		return geom.Pt(c.X, r.Max.Y)
	case HandleSW:
		return geom.Pt(r.Min.X, r.Max.Y)
	case HandleW:
		return geom.Pt(r.Min.X, c.Y)
	}
	panic(fmt.Sprintf("tool: unknown resize handle %q", h))
}

// ResizeRect returns the rect produced by dragging handle h of from to p.
func ResizeRect(from geom.Rect, h Handle, p geom.Point) geom.Rect {
	g := gripOf(h)
	a := Anchor(from, h)
	x, y := g.lockX.of(from.Min.X, from.Max.X), g.lockY.of(from.Min.Y, from.Max.Y)
	if g.freeX {
		x = p.X
	}
	if g.freeY {
		y = p.Y
	}
	return geom.RectFromPoints(a, geom.Pt(x, y))
}

// HandleAt returns the handle of r within tol of p.
func HandleAt(r geom.Rect, p geom.Point, tol float64) (Handle, bool) {
	for _, h := range Handles {
		if HandlePoint(r, h).Dist(p) <= tol {
			return h, true
		}
	}
	return "", false
}
