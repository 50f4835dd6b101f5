package history

// BeginGroup starts collecting pushes into a single undo unit. Nested
// calls are ignored.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupStart = h.index
}

// EndGroup collapses the entries pushed since BeginGroup into one Compound
// entry. A group with a single entry is left as is.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.grouping = false
	defer h.trimLocked()

	first := h.groupStart + 1
	if h.index-first < 1 {
		return
	}

	members := h.entries[first : h.index+1]
	compound := &Compound{Name: h.groupName, Actions: make([]Action, len(members))}
	for i, e := range members {
		compound.Actions[i] = e.action
	}
	h.entries = append(h.entries[:first], &entry{
		id:        members[0].id,
		action:    compound,
		timestamp: h.now(),
	})
	h.index = first
}

// CancelGroup stops grouping and keeps the pushed entries separate.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.grouping = false
	h.trimLocked()
}

// IsGrouping returns true if currently in a group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Transaction runs fn within a group. If fn returns an error, the group's
// entries are undone and removed. Inside an open group fn simply runs as
// part of it.
func (h *History) Transaction(name string, fn func() error) error {
	if h.IsGrouping() {
		return fn()
	}
	h.BeginGroup(name)

	if err := fn(); err != nil {
		h.mu.Lock()
		start := h.groupStart
		for h.index > start && h.index >= 0 {
			h.state = h.entries[h.index].action.Prev(h.state)
			h.index--
		}
		h.entries = h.entries[:h.index+1]
		h.grouping = false
		h.mu.Unlock()
		return err
	}

	h.EndGroup()
	return nil
}
