package action

import (
	"fmt"

	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/scene"
)

// EditField sets a named attribute on items. Repeated edits of the same
// field on the same items coalesce, so typing a label undoes as one step.
type EditField struct {
	IDs    []item.ID
	Field  string
	Value  any
	before snapshot
}

// NewEditField validates the edit against s and returns the action. It
// fails when any item rejects the field or value.
func NewEditField(s scene.State, ids []item.ID, field string, value any) (*EditField, error) {
	ids = normalizeIDs(ids)
	for _, id := range ids {
		it, ok := s.Get(id)
		if !ok {
			continue
		}
		if _, err := it.WithField(field, value); err != nil {
			return nil, fmt.Errorf("edit %s: %w", item.Describe(it), err)
		}
	}
	return &EditField{IDs: ids, Field: field, Value: value}, nil
}

func (a *EditField) Merge(last history.Action) (history.Action, bool) {
	l, ok := last.(*EditField)
	if !ok || l.Field != a.Field || !sameIDs(l.IDs, a.IDs) {
		return nil, false
	}
	return a, true
}

func (a *EditField) Prepare(base scene.State) history.Action {
	e := *a
	e.before = capture(base, a.IDs...)
	return &e
}

func (a *EditField) Next(s scene.State) scene.State {
	return update(s, a.IDs, func(it item.Item) item.Item {
		next, err := it.WithField(a.Field, a.Value)
		if err != nil {
			return it
		}
		return next
	})
}

func (a *EditField) Prev(s scene.State) scene.State { return a.before.restore(s) }

func (a *EditField) Description() string { return "Edit " + a.Field }

// Unchanged reports whether applying a to s would change nothing.
func (a *EditField) Unchanged(s scene.State) bool {
	for _, id := range a.IDs {
		it, ok := s.Get(id)
		if !ok {
			continue
		}
		next, err := it.WithField(a.Field, a.Value)
		if err == nil && !item.Equal(next, it) {
			return false
		}
	}
	return true
}
