package action

import (
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/scene"
)

// Move translates items by the total offset since Gesture started.
// Keyboard nudges set Nudge and never coalesce.
type Move struct {
	IDs     []item.ID
	Gesture Gesture
	Delta   geom.Point
	Nudge   bool
	before  snapshot
}

// NewMove returns a drag move of ids.
func NewMove(ids []item.ID, g Gesture, delta geom.Point) *Move {
	return &Move{IDs: normalizeIDs(ids), Gesture: g, Delta: delta}
}

// NewNudge returns a keyboard move of ids.
func NewNudge(ids []item.ID, delta geom.Point) *Move {
	return &Move{IDs: normalizeIDs(ids), Delta: delta, Nudge: true}
}

func (a *Move) Merge(last history.Action) (history.Action, bool) {
	l, ok := last.(*Move)
	if !ok || a.Nudge || l.Nudge || !a.Gesture.continues(l.Gesture) || !sameIDs(l.IDs, a.IDs) {
		return nil, false
	}
	return a, true
}

func (a *Move) Prepare(base scene.State) history.Action {
	m := *a
	m.before = capture(base, a.IDs...)
	return &m
}

func (a *Move) Next(s scene.State) scene.State {
	return update(s, a.IDs, func(it item.Item) item.Item {
		return it.Move(a.Delta.X, a.Delta.Y)
	})
}

func (a *Move) Prev(s scene.State) scene.State { return a.before.restore(s) }

func (a *Move) Description() string {
	return "Move " + plural(len(a.IDs), "item")
}

// Resize maps one item from rectangle From onto rectangle To. From is the
// item's bounding box when Gesture started.
type Resize struct {
	ID      item.ID
	Gesture Gesture
	From    geom.Rect
	To      geom.Rect
	before  snapshot
}

// NewResize returns a resize of id.
func NewResize(id item.ID, g Gesture, from, to geom.Rect) *Resize {
	return &Resize{ID: id, Gesture: g, From: from, To: to}
}

func (a *Resize) Merge(last history.Action) (history.Action, bool) {
	l, ok := last.(*Resize)
	if !ok || l.ID != a.ID || !a.Gesture.continues(l.Gesture) {
		return nil, false
	}
	return a, true
}

func (a *Resize) Prepare(base scene.State) history.Action {
	r := *a
	r.before = capture(base, a.ID)
	return &r
}

func (a *Resize) Next(s scene.State) scene.State {
	return update(s, []item.ID{a.ID}, func(it item.Item) item.Item {
		return it.Resize(a.From, a.To)
	})
}

func (a *Resize) Prev(s scene.State) scene.State { return a.before.restore(s) }

func (a *Resize) Description() string { return "Resize item" }

// SetLocked locks or unlocks items.
type SetLocked struct {
	IDs    []item.ID
	Locked bool
	before snapshot
}

// NewSetLocked returns an action setting the lock flag of ids.
func NewSetLocked(ids []item.ID, locked bool) *SetLocked {
	return &SetLocked{IDs: normalizeIDs(ids), Locked: locked}
}

func (a *SetLocked) Prepare(base scene.State) history.Action {
	l := *a
	l.before = capture(base, a.IDs...)
	return &l
}

func (a *SetLocked) Next(s scene.State) scene.State {
	return update(s, a.IDs, func(it item.Item) item.Item {
		return it.WithLocked(a.Locked)
	})
}

func (a *SetLocked) Prev(s scene.State) scene.State { return a.before.restore(s) }

func (a *SetLocked) Description() string {
	if a.Locked {
		return "Lock " + plural(len(a.IDs), "item")
	}
	return "Unlock " + plural(len(a.IDs), "item")
}

// ChangeZ reorders items in the stack.
type ChangeZ struct {
	IDs    []item.ID
	Op     scene.ZOp
	before []item.ID
}

// NewChangeZ returns a stacking change of ids.
func NewChangeZ(ids []item.ID, op scene.ZOp) *ChangeZ {
	return &ChangeZ{IDs: normalizeIDs(ids), Op: op}
}

func (a *ChangeZ) Prepare(base scene.State) history.Action {
	return &ChangeZ{IDs: a.IDs, Op: a.Op, before: base.ZList()}
}

func (a *ChangeZ) Next(s scene.State) scene.State {
	return s.WithZList(scene.ChangeZ(s.ZList(), a.IDs, a.Op))
}

func (a *ChangeZ) Prev(s scene.State) scene.State {
	if a.before == nil {
		return s
	}
	return s.WithZList(a.before)
}

func (a *ChangeZ) Description() string { return "Change z-index (" + string(a.Op) + ")" }
