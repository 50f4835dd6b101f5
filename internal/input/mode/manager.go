package mode

import (
	"errors"
	"slices"
	"sync"
)

// Errors returned by the manager.
var (
	ErrEmptyMode  = errors.New("empty mode name")
	ErrEmptyStack = errors.New("mode stack is empty")
)

// ChangeCallback is called when the mode changes.
type ChangeCallback func(from, to string)

// Manager holds the current mode and notifies subscribers of transitions.
type Manager struct {
	mu sync.RWMutex

	// current is the active mode.
	current string

	// previous is the mode before the current one.
	previous string

	// stack allows pushing/popping modes (e.g., panning over a tool).
	stack []string

	// callbacks are notified on mode changes.
	callbacks []ChangeCallback
}

// NewManager creates a manager in Idle.
func NewManager() *Manager {
	return &Manager{current: Idle, stack: make([]string, 0, 4)}
}

// Current returns the current mode.
func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Previous returns the mode before the last transition.
func (m *Manager) Previous() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// Switch changes to name. Switching to the current mode is a no-op and
// notifies nobody. It returns whether the mode changed.
func (m *Manager) Switch(name string) (bool, error) {
	if name == "" {
		return false, ErrEmptyMode
	}
	m.mu.Lock()
	from, callbacks, changed := m.switchLocked(name)
	m.mu.Unlock()

	if changed {
		notify(callbacks, from, name)
	}
	return changed, nil
}

// switchLocked performs the mode switch (must hold lock).
// Returns the old mode and callbacks to notify.
func (m *Manager) switchLocked(name string) (string, []ChangeCallback, bool) {
	from := m.current
	if from == name {
		return from, nil, false
	}
	m.previous = from
	m.current = name
	return from, slices.Clone(m.callbacks), true
}

// Push saves the current mode and switches to name.
// Use Pop to restore the saved mode.
func (m *Manager) Push(name string) error {
	if name == "" {
		return ErrEmptyMode
	}
	m.mu.Lock()
	m.stack = append(m.stack, m.current)
	from, callbacks, changed := m.switchLocked(name)
	m.mu.Unlock()

	if changed {
		notify(callbacks, from, name)
	}
	return nil
}

// Pop restores the most recently pushed mode.
func (m *Manager) Pop() error {
	m.mu.Lock()
	if len(m.stack) == 0 {
		m.mu.Unlock()
		return ErrEmptyStack
	}
	to := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	from, callbacks, changed := m.switchLocked(to)
	m.mu.Unlock()

	if changed {
		notify(callbacks, from, to)
	}
	return nil
}

// Reset returns to Idle and clears the stack.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.stack = m.stack[:0]
	from, callbacks, changed := m.switchLocked(Idle)
	m.mu.Unlock()

	if changed {
		notify(callbacks, from, Idle)
	}
}

// StackDepth returns the number of modes on the stack.
func (m *Manager) StackDepth() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stack)
}

// OnChange registers a callback for mode changes.
// Returns a function to unregister the callback.
func (m *Manager) OnChange(callback ChangeCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// Remove callback by setting to nil (preserves indices)
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}

// Is returns true if the current mode is name.
func (m *Manager) Is(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current == name
}

// IsAny returns true if the current mode is any of names.
func (m *Manager) IsAny(names ...string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Contains(names, m.current)
}

// Tool returns the tool part of the current mode.
func (m *Manager) Tool() string {
	return Tool(m.Current())
}

func notify(callbacks []ChangeCallback, from, to string) {
	for _, cb := range callbacks {
		if cb != nil {
			cb(from, to)
		}
	}
}
