package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/tessera/internal/engine/scene"
)

// DefaultMaxEntries is used when New is given a negative limit.
const DefaultMaxEntries = 500

// History manages the undo/redo list over a base scene state.
type History struct {
	mu sync.Mutex

	initial scene.State
	state   scene.State
	entries []*entry
	index   int

	// Grouping state
	grouping   bool
	groupName  string
	groupStart int

	// Configuration
	maxEntries int
	now        func() time.Time
}

// New creates a history over initial. maxEntries of zero means unlimited.
func New(initial scene.State, maxEntries int) *History {
	if maxEntries < 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		initial:    initial,
		state:      initial,
		index:      -1,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Push records a and applies it to the current state.
//
// If a continues the action at the cursor (see Merger), that entry is
// removed and a is applied to the state before it, so the whole gesture
// undoes in one step. Entries beyond the cursor are discarded.
func (h *History) Push(a Action) {
	if a == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pushLocked(a)
}

// pushLocked adds an action without acquiring the lock.
func (h *History) pushLocked(a Action) {
	base := h.state
	id := uuid.Nil

	if m, ok := a.(Merger); ok && h.index >= 0 && (!h.grouping || h.index > h.groupStart) {
		last := h.entries[h.index]
		if merged, ok := m.Merge(last.action); ok {
			base = last.action.Prev(h.state)
			h.entries = h.entries[:h.index]
			h.index--
			id = last.id
			a = merged
		}
	}
	if p, ok := a.(Preparer); ok {
		a = p.Prepare(base)
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	h.entries = append(h.entries[:h.index+1], &entry{
		id:        id,
		action:    a,
		timestamp: h.now(),
	})
	h.index++
	h.state = a.Next(base)

	h.trimLocked()
}

// trimLocked folds the oldest applied entries into the initial state until
// the entry limit holds. Entries on the redo tail are dropped first. An
// open group is never trimmed; EndGroup and CancelGroup trim instead.
func (h *History) trimLocked() {
	if h.maxEntries == 0 || h.grouping {
		return
	}
	for len(h.entries) > h.maxEntries && h.index < len(h.entries)-1 {
		h.entries = h.entries[:len(h.entries)-1]
	}
	for len(h.entries) > h.maxEntries {
		h.initial = h.entries[0].action.Next(h.initial)
		h.entries = h.entries[1:]
		h.index--
	}
}

// Undo reverses the action at the cursor. It returns false when there is
// nothing to undo.
func (h *History) Undo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index < 0 {
		return false
	}
	h.state = h.entries[h.index].action.Prev(h.state)
	h.index--
	return true
}

// Redo reapplies the action after the cursor. It returns false when there
// is nothing to redo.
func (h *History) Redo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	h.state = h.entries[h.index].action.Next(h.state)
	return true
}

// State returns the scene state at the cursor.
func (h *History) State() scene.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Initial returns the state the entries are applied to.
func (h *History) Initial() scene.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.initial
}

// Index returns the cursor; -1 means before the first entry.
func (h *History) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Len returns the number of entries, including the redo tail.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index >= 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.entries)-1
}

// LastAction returns the action at the cursor, or Empty.
func (h *History) LastAction() Action {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index < 0 {
		return Empty
	}
	return h.entries[h.index].action
}

// NextAction returns the action a Redo would apply, or Empty.
func (h *History) NextAction() Action {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index+1 >= len(h.entries) {
		return Empty
	}
	return h.entries[h.index+1].action
}

// Entries returns info about every entry, oldest first.
func (h *History) Entries() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]EntryInfo, len(h.entries))
	for i, e := range h.entries {
		result[i] = e.info(i <= h.index)
	}
	return result
}

// Replay recomputes the state by folding the applied entries over the
// initial state. The result equals State() for well-formed actions.
func (h *History) Replay() scene.State {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.initial
	for _, e := range h.entries[:h.index+1] {
		s = e.action.Next(s)
	}
	return s
}

// Reset discards all entries and makes s the new initial state.
func (h *History) Reset(s scene.State) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.initial = s
	h.state = s
	h.entries = nil
	h.index = -1
	h.grouping = false
}

// SetMaxEntries changes the entry limit. Zero means unlimited. If the list
// is longer, the oldest entries are folded into the initial state.
func (h *History) SetMaxEntries(max int) {
	if max < 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	h.trimLocked()
}

// MaxEntries returns the entry limit.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
