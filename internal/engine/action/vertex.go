package action

import (
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/scene"
)

// editVertices applies fn when id names a vertex-editable item. Anything
// else is a no-op.
func editVertices(s scene.State, id item.ID, fn func(item.VertexEditor) item.Item) scene.State {
	it, ok := s.Get(id)
	if !ok {
		return s
	}
	ve, ok := it.(item.VertexEditor)
	if !ok {
		return s
	}
	return s.Put(fn(ve))
}

// MoveVertex drags one vertex. Consecutive moves of the same vertex within
// one gesture coalesce.
type MoveVertex struct {
	ID      item.ID
	Index   int
	Gesture Gesture
	To      geom.Point
	before  snapshot
}

// NewMoveVertex returns an action placing vertex index of id at to.
func NewMoveVertex(id item.ID, index int, g Gesture, to geom.Point) *MoveVertex {
	return &MoveVertex{ID: id, Index: index, Gesture: g, To: to}
}

func (a *MoveVertex) Merge(last history.Action) (history.Action, bool) {
	l, ok := last.(*MoveVertex)
	if !ok || l.ID != a.ID || l.Index != a.Index || !a.Gesture.continues(l.Gesture) {
		return nil, false
	}
	return a, true
}

func (a *MoveVertex) Prepare(base scene.State) history.Action {
	m := *a
	m.before = capture(base, a.ID)
	return &m
}

func (a *MoveVertex) Next(s scene.State) scene.State {
	return editVertices(s, a.ID, func(ve item.VertexEditor) item.Item {
		return ve.MoveVertex(a.Index, a.To)
	})
}

func (a *MoveVertex) Prev(s scene.State) scene.State { return a.before.restore(s) }

func (a *MoveVertex) Description() string { return "Move vertex" }

// InsertVertex adds a vertex so that it becomes vertex Index.
type InsertVertex struct {
	ID     item.ID
	Index  int
	At     geom.Point
	before snapshot
}

// NewInsertVertex returns an action inserting at as vertex index of id.
func NewInsertVertex(id item.ID, index int, at geom.Point) *InsertVertex {
	return &InsertVertex{ID: id, Index: index, At: at}
}

func (a *InsertVertex) Prepare(base scene.State) history.Action {
	i := *a
	i.before = capture(base, a.ID)
	return &i
}

func (a *InsertVertex) Next(s scene.State) scene.State {
	return editVertices(s, a.ID, func(ve item.VertexEditor) item.Item {
		return ve.InsertVertex(a.Index, a.At)
	})
}

func (a *InsertVertex) Prev(s scene.State) scene.State { return a.before.restore(s) }

func (a *InsertVertex) Description() string { return "Insert vertex" }

// DeleteVertex removes vertex Index. The item keeps at least its minimum
// vertex count.
type DeleteVertex struct {
	ID     item.ID
	Index  int
	before snapshot
}

// NewDeleteVertex returns an action deleting vertex index of id.
func NewDeleteVertex(id item.ID, index int) *DeleteVertex {
	return &DeleteVertex{ID: id, Index: index}
}

func (a *DeleteVertex) Prepare(base scene.State) history.Action {
	d := *a
	d.before = capture(base, a.ID)
	return &d
}

func (a *DeleteVertex) Next(s scene.State) scene.State {
	return editVertices(s, a.ID, func(ve item.VertexEditor) item.Item {
		return ve.DeleteVertex(a.Index)
	})
}

func (a *DeleteVertex) Prev(s scene.State) scene.State { return a.before.restore(s) }

func (a *DeleteVertex) Description() string { return "Delete vertex" }
