package editor

import (
	"context"
	"errors"

	"github.com/dshills/tessera/internal/engine/action"
	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/selection"
	"github.com/dshills/tessera/internal/tool"
)

// ErrBusy is returned by direct edits while a gesture is in progress.
var ErrBusy = errors.New("editor busy")

// Push records a and returns the ids of any items it added. The selection
// is left alone apart from pruning removed items.
func (e *Editor) Push(ctx context.Context, a history.Action) ([]item.ID, error) {
	if e.context().Busy() {
		return nil, ErrBusy
	}
	if err := e.apply(ctx, tool.Output{Push: []history.Action{a}}); err != nil {
		return nil, err
	}
	return action.AddedIDs(e.history.LastAction()), nil
}

// SetSelection replaces the selection. Ids not in the scene are dropped.
func (e *Editor) SetSelection(ctx context.Context, ids ...item.ID) error {
	sel := selection.New(ids...).WithMode(e.selection.Mode())
	return e.apply(ctx, tool.Output{Select: &sel})
}

// Transaction runs fn so that everything it pushes undoes as one step.
// When fn fails its changes are rolled back and the error returned.
func (e *Editor) Transaction(ctx context.Context, name string, fn func() error) error {
	before := e.history.Len()
	err := e.history.Transaction(name, fn)

	c := changes{history: err != nil || e.history.Len() != before}
	if err != nil {
		c.scene = true
		e.sceneRev++
	}
	if sel := e.selection.Prune(e.history.State()); !sel.Equal(e.selection) {
		e.selection = sel
		c.selection = true
	}
	return errors.Join(err, e.publish(ctx, c))
}
