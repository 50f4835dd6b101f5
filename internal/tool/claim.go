package tool

import (
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/selection"
)

// resizable returns the item whose handles are shown: the single selected
// item in bbox mode, when it is not locked.
func resizable(ctx *Context) (item.Item, bool) {
	if ctx.Selection.Mode() != selection.ModeBBox {
		return nil, false
	}
	id, ok := ctx.Selection.Single()
	if !ok {
		return nil, false
	}
	it, ok := ctx.Scene.Get(id)
	if !ok || it.Locked() {
		return nil, false
	}
	return it, true
}

// vertexTarget returns the item under vertex editing.
func vertexTarget(ctx *Context) (item.Item, bool) {
	if ctx.Selection.Mode() != selection.ModeVertices || !selection.VertexEditable(ctx.Selection, ctx.Scene) {
		return nil, false
	}
	id, _ := ctx.Selection.Single()
	it, ok := ctx.Scene.Get(id)
	if !ok || it.Locked() {
		return nil, false
	}
	return it, true
}

// handleUnder returns the resize handle under p.
func handleUnder(ctx *Context, p geom.Point) (item.Item, Handle, bool) {
	it, ok := resizable(ctx)
	if !ok {
		return nil, "", false
	}
	h, ok := HandleAt(it.BBox(), p, ctx.HandleTol())
	return it, h, ok
}

// vertexUnder returns the index of the edited item's vertex under p.
func vertexUnder(ctx *Context, p geom.Point) (item.Item, int, bool) {
	it, ok := vertexTarget(ctx)
	if !ok {
		return nil, -1, false
	}
	best, bestDist := -1, ctx.HandleTol()
	for i, v := range it.Vertices() {
		if d := v.Dist(p); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return it, best, best >= 0
}

// claimed reports whether p is taken by a resize handle or a vertex, in
// which case the generic select and drag behaviors stand aside.
func claimed(ctx *Context, p geom.Point) bool {
	if _, _, ok := handleUnder(ctx, p); ok {
		return true
	}
	_, _, ok := vertexUnder(ctx, p)
	return ok
}

// dragTarget returns the topmost unlocked item under p. Locked items
// above it do not block the drag.
func dragTarget(ctx *Context, p geom.Point) (item.Item, bool) {
	for _, it := range ctx.Scene.HitAll(p, ctx.Tol()) {
		if !it.Locked() {
			return it, true
		}
	}
	return nil, false
}

// unlocked filters ids down to the unlocked items present in the scene.
func unlocked(ctx *Context, ids []item.ID) []item.ID {
	out := make([]item.ID, 0, len(ids))
	for _, id := range ids {
		if it, ok := ctx.Scene.Get(id); ok && !it.Locked() {
			out = append(out, id)
		}
	}
	return out
}
