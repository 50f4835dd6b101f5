package tool

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/tessera/internal/engine/action"
	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/scene"
	"github.com/dshills/tessera/internal/engine/selection"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/mode"
)

// ErrMissingField is returned for an edit command without a field.
var ErrMissingField = errors.New("edit: missing field")

// Edit handles the selection commands: delete, duplicate, select-all,
// lock, unlock, field edits and z-order changes. They apply in idle only.
type Edit struct{}

// NewEdit creates the edit behavior.
func NewEdit() *Edit { return &Edit{} }

func (*Edit) Name() string { return "edit" }

func (*Edit) HandlePointer(*Context, Pointer) Output { return Output{} }

func (e *Edit) HandleCommand(ctx *Context, cmd input.Command) Output {
	if ctx.Mode != mode.Idle {
		return Output{}
	}
	if cmd.Name == input.CmdSelectAll {
		if ctx.Scene.Len() == 0 {
			return Output{}
		}
		return selectOutput(selection.New(ctx.Scene.ZList()...))
	}

	ids := targetIDs(ctx, cmd)
	if len(ids) == 0 {
		return Output{}
	}
	switch cmd.Name {
	case input.CmdDelete:
		return Output{
			Push:   []history.Action{action.NewDeleteItems(ids...)},
			Select: &selection.Selection{},
		}
	case input.CmdDuplicate:
		return e.duplicate(ctx, ids)
	case input.CmdLock, input.CmdUnlock:
		return Output{Push: []history.Action{action.NewSetLocked(ids, cmd.Name == input.CmdLock)}}
	case input.CmdEdit:
		return e.edit(ctx, ids, cmd)
	case input.CmdChangeZ:
		op, err := scene.ParseZOp(cmd.Args.GetString("op"))
		if err != nil {
			return Output{Err: err}
		}
		return Output{Push: []history.Action{action.NewChangeZ(ids, op)}}
	}
	return Output{}
}

// targetIDs returns the ids a command applies to: an explicit "ids" or
// "id" argument, otherwise the selection.
func targetIDs(ctx *Context, cmd input.Command) []item.ID {
	if v, ok := cmd.Args.Get("ids"); ok {
		switch list := v.(type) {
		case []item.ID:
			return list
		case []any:
			var ids []item.ID
			for _, x := range list {
				if n, ok := item.Number(x); ok {
					ids = append(ids, item.ID(n))
				}
			}
			return ids
		}
		return nil
	}
	if v, ok := cmd.Args.Get("id"); ok {
		if n, ok := item.Number(v); ok {
			return []item.ID{item.ID(n)}
		}
		return nil
	}
	return ctx.Selection.IDs()
}

func (e *Edit) edit(ctx *Context, ids []item.ID, cmd input.Command) Output {
	field := cmd.Args.GetString("field")
	if field == "" {
		return Output{Err: ErrMissingField}
	}
	value, _ := cmd.Args.Get("value")
	a, err := action.NewEditField(ctx.Scene, ids, field, value)
	if err != nil {
		return Output{Err: err}
	}
	if a.Unchanged(ctx.Scene) {
		return Output{}
	}
	return Output{Push: []history.Action{a}}
}

// duplicate copies the items on top of the stack, shifted by the
// duplicate offset, and selects the copies.
func (e *Edit) duplicate(ctx *Context, ids []item.ID) Output {
	off := ctx.Settings.DuplicateOffset
	var adds []history.Action
	for _, id := range ctx.Scene.ZList() {
		if !slices.Contains(ids, id) {
			continue
		}
		it, _ := ctx.Scene.Get(id)
		it = it.WithLocked(false).Move(off, off)
		adds = append(adds, action.NewAddItem(it))
	}
	if len(adds) == 0 {
		return Output{}
	}
	return Output{
		Push:        []history.Action{action.Batch(fmt.Sprintf("Duplicate %d item(s)", len(adds)), adds...)},
		SelectAdded: true,
	}
}
