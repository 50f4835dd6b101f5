// Package action implements the reversible scene mutations recorded by
// the history.
//
// Actions that change existing items capture the affected items during
// Prepare and restore them verbatim in Prev, so undo is exact even where
// floating point arithmetic is not. Gesture actions (Move, Resize,
// MoveVertex) carry the Gesture they belong to and the total change since
// it began; a later action of the same gesture replaces the earlier entry
// through Merge.
package action

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/scene"
)

// Gesture identifies one pointer gesture. The zero Gesture never merges.
type Gesture uint64

var gestures atomic.Uint64

// NewGesture returns a Gesture distinct from every earlier one.
func NewGesture() Gesture { return Gesture(gestures.Add(1)) }

// continues reports whether g and o are the same live gesture.
func (g Gesture) continues(o Gesture) bool { return g != 0 && g == o }

// snapshot holds the items an action is about to change.
type snapshot []item.Item

func capture(s scene.State, ids ...item.ID) snapshot {
	var snap snapshot
	for _, id := range ids {
		if it, ok := s.Get(id); ok {
			snap = append(snap, it)
		}
	}
	return snap
}

func (snap snapshot) restore(s scene.State) scene.State {
	for _, it := range snap {
		s = s.Put(it)
	}
	return s
}

// update applies fn to each present id.
func update(s scene.State, ids []item.ID, fn func(item.Item) item.Item) scene.State {
	for _, id := range ids {
		if it, ok := s.Get(id); ok {
			s = s.Put(fn(it))
		}
	}
	return s
}

func sameIDs(a, b []item.ID) bool {
	return slices.Equal(a, b)
}

func normalizeIDs(ids []item.ID) []item.ID {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func plural(n int, what string) string {
	if n == 1 {
		return "1 " + what
	}
	return fmt.Sprintf("%d %ss", n, what)
}

// AddItem inserts a new item on top of the stack. The id is assigned at
// push time from the state the action is applied to.
type AddItem struct {
	Item item.Item
	id   item.ID
}

// NewAddItem returns an action adding it. Any id it carries is replaced.
func NewAddItem(it item.Item) *AddItem {
	return &AddItem{Item: it}
}

// Prepare assigns the next free id of base.
func (a *AddItem) Prepare(base scene.State) history.Action {
	id := base.NextID()
	return &AddItem{Item: a.Item.WithID(id), id: id}
}

func (a *AddItem) Next(s scene.State) scene.State {
	if a.id == 0 {
		return s
	}
	return s.Insert(a.Item)
}

func (a *AddItem) Prev(s scene.State) scene.State {
	return s.Remove(a.id)
}

// AddedID returns the id assigned at push time, or zero before that.
func (a *AddItem) AddedID() item.ID { return a.id }

func (a *AddItem) Description() string {
	return "Add " + string(a.Item.Kind())
}

// AddedIDs returns the ids assigned by every AddItem within a, descending
// into compounds.
func AddedIDs(a history.Action) []item.ID {
	switch v := a.(type) {
	case *AddItem:
		if v.id != 0 {
			return []item.ID{v.id}
		}
	case *history.Compound:
		var ids []item.ID
		for _, m := range v.Actions {
			ids = append(ids, AddedIDs(m)...)
		}
		return ids
	}
	return nil
}

// DeleteItems removes items, restoring them at their original stacking
// positions on undo.
type DeleteItems struct {
	IDs     []item.ID
	removed []placed
}

type placed struct {
	item item.Item
	z    int
}

// NewDeleteItems returns an action deleting ids.
func NewDeleteItems(ids ...item.ID) *DeleteItems {
	return &DeleteItems{IDs: normalizeIDs(ids)}
}

func (a *DeleteItems) Prepare(base scene.State) history.Action {
	var removed []placed
	for _, id := range a.IDs {
		if it, ok := base.Get(id); ok {
			removed = append(removed, placed{item: it, z: base.ZIndex(id)})
		}
	}
	slices.SortFunc(removed, func(x, y placed) int { return x.z - y.z })
	return &DeleteItems{IDs: a.IDs, removed: removed}
}

func (a *DeleteItems) Next(s scene.State) scene.State {
	return s.Remove(a.IDs...)
}

func (a *DeleteItems) Prev(s scene.State) scene.State {
	for _, p := range a.removed {
		s = s.InsertAt(p.item, p.z)
	}
	return s
}

func (a *DeleteItems) Description() string {
	return "Delete " + plural(len(a.IDs), "item")
}

// Replace swaps the whole scene, for example when a document is loaded.
type Replace struct {
	State  scene.State
	Label  string
	before scene.State
}

// NewReplace returns an action replacing the scene with s.
func NewReplace(s scene.State, label string) *Replace {
	return &Replace{State: s, Label: label}
}

func (a *Replace) Prepare(base scene.State) history.Action {
	return &Replace{State: a.State, Label: a.Label, before: base}
}

func (a *Replace) Next(scene.State) scene.State { return a.State }
func (a *Replace) Prev(scene.State) scene.State { return a.before }

func (a *Replace) Description() string {
	if a.Label != "" {
		return a.Label
	}
	return "Replace scene"
}

// Batch groups actions into a single undo unit.
func Batch(name string, actions ...history.Action) *history.Compound {
	return &history.Compound{Name: name, Actions: actions}
}
