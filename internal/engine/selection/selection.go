// Package selection models which items the user is operating on.
package selection

import (
	"slices"

	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/scene"
)

// Mode selects how the selection is edited.
type Mode uint8

const (
	// ModeBBox edits the selection through its bounding box.
	ModeBBox Mode = iota
	// ModeVertices edits the vertices of a single item.
	ModeVertices
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeVertices {
		return "vertices"
	}
	return "bbox"
}

// Selection is an immutable set of item ids plus an edit mode. The zero
// value is the empty selection in bbox mode.
type Selection struct {
	ids  []item.ID
	mode Mode
}

// New returns a bbox-mode selection of ids.
func New(ids ...item.ID) Selection {
	s := slices.Clone(ids)
	slices.Sort(s)
	return Selection{ids: slices.Compact(s)}
}

// IDs returns the selected ids in ascending order.
func (s Selection) IDs() []item.ID { return slices.Clone(s.ids) }

// Has reports whether id is selected.
func (s Selection) Has(id item.ID) bool {
	_, found := slices.BinarySearch(s.ids, id)
	return found
}

// Len returns the number of selected ids.
func (s Selection) Len() int { return len(s.ids) }

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return len(s.ids) == 0 }

// Single returns the sole selected id.
func (s Selection) Single() (item.ID, bool) {
	if len(s.ids) != 1 {
		return 0, false
	}
	return s.ids[0], true
}

// Mode returns the edit mode.
func (s Selection) Mode() Mode { return s.mode }

// WithMode returns a copy with the edit mode replaced.
func (s Selection) WithMode(m Mode) Selection {
	s.mode = m
	return s
}

// Toggle adds id when absent and removes it otherwise. The result is
// always in bbox mode.
func (s Selection) Toggle(id item.ID) Selection {
	if s.Has(id) {
		return Selection{ids: slices.DeleteFunc(slices.Clone(s.ids), func(x item.ID) bool { return x == id })}
	}
	return New(append(s.IDs(), id)...)
}

// Prune drops ids missing from st and falls back to bbox mode unless the
// selection is a single item that supports vertex editing.
func (s Selection) Prune(st scene.State) Selection {
	ids := slices.DeleteFunc(slices.Clone(s.ids), func(id item.ID) bool { return !st.Has(id) })
	out := Selection{ids: ids, mode: s.mode}
	if out.mode == ModeVertices && !VertexEditable(out, st) {
		out.mode = ModeBBox
	}
	if len(out.ids) == 0 {
		out.ids = nil
	}
	return out
}

// Equal reports whether two selections hold the same ids and mode.
func (s Selection) Equal(o Selection) bool {
	return s.mode == o.mode && slices.Equal(s.ids, o.ids)
}

// VertexEditable reports whether vertices mode is meaningful for s in st.
func VertexEditable(s Selection, st scene.State) bool {
	id, ok := s.Single()
	if !ok {
		return false
	}
	it, ok := st.Get(id)
	return ok && it.SupportsVertexEdit()
}

// Items returns the selected items present in st, in stacking order.
func (s Selection) Items(st scene.State) []item.Item {
	var out []item.Item
	for _, it := range st.Items() {
		if s.Has(it.ID()) {
			out = append(out, it)
		}
	}
	return out
}
