// Package scene holds the immutable snapshot of a diagram: the items keyed
// by id and their stacking order.
//
// Every mutating method returns a new State. The zero State is an empty
// scene and is ready to use.
package scene

import (
	"slices"

	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/item"
)

// State is an immutable scene snapshot. The z-list holds each item id
// exactly once, bottom first.
type State struct {
	items map[item.ID]item.Item
	zlist []item.ID
}

// New builds a state from items, stacking them in the given order. Items
// with duplicate ids replace earlier ones in place.
func New(items ...item.Item) State {
	var s State
	for _, it := range items {
		if s.Has(it.ID()) {
			s = s.Put(it)
			continue
		}
		s = s.InsertAt(it, s.Len())
	}
	return s
}

// Get returns the item with the given id.
func (s State) Get(id item.ID) (item.Item, bool) {
	it, ok := s.items[id]
	return it, ok
}

// Has reports whether id is present.
func (s State) Has(id item.ID) bool {
	_, ok := s.items[id]
	return ok
}

// Len returns the number of items.
func (s State) Len() int { return len(s.zlist) }

// ZList returns a copy of the stacking order, bottom first.
func (s State) ZList() []item.ID { return slices.Clone(s.zlist) }

// Items returns the items in stacking order, bottom first.
func (s State) Items() []item.Item {
	out := make([]item.Item, 0, len(s.zlist))
	for _, id := range s.zlist {
		out = append(out, s.items[id])
	}
	return out
}

// NextID returns max(existing ids)+1, or 1 for an empty scene.
func (s State) NextID() item.ID {
	var max item.ID
	for id := range s.items {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// ZIndex returns the position of id in the stacking order, or -1.
func (s State) ZIndex(id item.ID) int {
	return slices.Index(s.zlist, id)
}

// Insert adds it on top of the stack. An item whose id is already present
// is ignored.
func (s State) Insert(it item.Item) State {
	return s.InsertAt(it, len(s.zlist))
}

// InsertAt adds it at stacking position z, clamped to the valid range. An
// item whose id is zero or already present is ignored.
func (s State) InsertAt(it item.Item, z int) State {
	if it == nil || it.ID() == 0 || s.Has(it.ID()) {
		return s
	}
	z = max(0, min(z, len(s.zlist)))
	items := s.cloneItems()
	items[it.ID()] = it
	return State{
		items: items,
		zlist: slices.Insert(slices.Clone(s.zlist), z, it.ID()),
	}
}

// Put replaces an existing item keeping its stacking position. Unknown ids
// are ignored.
func (s State) Put(it item.Item) State {
	if it == nil || !s.Has(it.ID()) {
		return s
	}
	items := s.cloneItems()
	items[it.ID()] = it
	return State{items: items, zlist: s.zlist}
}

// Remove deletes the given ids. Unknown ids are ignored.
func (s State) Remove(ids ...item.ID) State {
	if !slices.ContainsFunc(ids, s.Has) {
		return s
	}
	items := s.cloneItems()
	for _, id := range ids {
		delete(items, id)
	}
	zlist := slices.DeleteFunc(slices.Clone(s.zlist), func(id item.ID) bool {
		_, ok := items[id]
		return !ok
	})
	return State{items: items, zlist: zlist}
}

// WithZList replaces the stacking order. The new order must be a
// permutation of the current one; otherwise s is returned unchanged.
func (s State) WithZList(zlist []item.ID) State {
	if !isPermutation(s.zlist, zlist) {
		return s
	}
	return State{items: s.items, zlist: slices.Clone(zlist)}
}

// Vertices returns every item vertex ordered by ascending item id, then by
// vertex index.
func (s State) Vertices() []geom.Point {
	ids := make([]item.ID, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	var pts []geom.Point
	for _, id := range ids {
		pts = append(pts, s.items[id].Vertices()...)
	}
	return pts
}

// HitTest returns the topmost item containing p within tol.
func (s State) HitTest(p geom.Point, tol float64) (item.Item, bool) {
	for i := len(s.zlist) - 1; i >= 0; i-- {
		it := s.items[s.zlist[i]]
		if it.Contains(p, tol) {
			return it, true
		}
	}
	return nil, false
}

// HitAll returns every item containing p within tol, topmost first.
func (s State) HitAll(p geom.Point, tol float64) []item.Item {
	var out []item.Item
	for i := len(s.zlist) - 1; i >= 0; i-- {
		if it := s.items[s.zlist[i]]; it.Contains(p, tol) {
			out = append(out, it)
		}
	}
	return out
}

// Equal reports structural equality of two states.
func (s State) Equal(o State) bool {
	if !slices.Equal(s.zlist, o.zlist) || len(s.items) != len(o.items) {
		return false
	}
	for id, it := range s.items {
		ot, ok := o.items[id]
		if !ok || !item.Equal(it, ot) {
			return false
		}
	}
	return true
}

func (s State) cloneItems() map[item.ID]item.Item {
	items := make(map[item.ID]item.Item, len(s.items)+1)
	for id, it := range s.items {
		items[id] = it
	}
	return items
}

func isPermutation(a, b []item.ID) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y) && len(slices.Compact(y)) == len(a)
}
