package history

import (
	"strings"

	"github.com/dshills/tessera/internal/engine/scene"
)

// Action is a reversible scene mutation. Prev(Next(s)) must equal s for
// every state the action can be pushed onto.
type Action interface {
	// Next applies the action.
	Next(s scene.State) scene.State

	// Prev reverses the action.
	Prev(s scene.State) scene.State

	// Description returns a human-readable description of the action.
	Description() string
}

// Preparer is implemented by actions that need to inspect the state they
// are pushed onto, for example to capture "before" snapshots or assign
// ids. Prepare returns the action that is actually recorded.
type Preparer interface {
	Prepare(base scene.State) Action
}

// Merger is implemented by actions that coalesce with the entry at the
// cursor. Merge is called with that entry's action and reports whether the
// receiver continues it. Continuation is decided on values only.
type Merger interface {
	Merge(last Action) (Action, bool)
}

// Empty is returned by LastAction and NextAction at the history
// boundaries.
var Empty Action = emptyAction{}

type emptyAction struct{}

func (emptyAction) Next(s scene.State) scene.State { return s }
func (emptyAction) Prev(s scene.State) scene.State { return s }
func (emptyAction) Description() string            { return "" }

// Compound groups actions into one undo unit.
type Compound struct {
	Name    string
	Actions []Action
}

// Next applies all actions in order.
func (c *Compound) Next(s scene.State) scene.State {
	for _, a := range c.Actions {
		s = a.Next(s)
	}
	return s
}

// Prev reverses all actions in reverse order.
func (c *Compound) Prev(s scene.State) scene.State {
	for i := len(c.Actions) - 1; i >= 0; i-- {
		s = c.Actions[i].Prev(s)
	}
	return s
}

// Prepare prepares every member against the state produced by the members
// before it.
func (c *Compound) Prepare(base scene.State) Action {
	out := &Compound{Name: c.Name, Actions: make([]Action, len(c.Actions))}
	s := base
	for i, a := range c.Actions {
		if p, ok := a.(Preparer); ok {
			a = p.Prepare(s)
		}
		out.Actions[i] = a
		s = a.Next(s)
	}
	return out
}

// Description returns the group name, or the member descriptions joined.
func (c *Compound) Description() string {
	if c.Name != "" {
		return c.Name
	}
	descs := make([]string, 0, len(c.Actions))
	for _, a := range c.Actions {
		descs = append(descs, a.Description())
	}
	return strings.Join(descs, ", ")
}
