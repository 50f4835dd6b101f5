package tool

import "github.com/dshills/tessera/internal/input"

// History maps undo and redo commands onto the history. Both are ignored
// mid-gesture and at the history boundaries.
type History struct{}

// NewHistory creates the history behavior.
func NewHistory() *History { return &History{} }

func (*History) Name() string { return "history" }

func (*History) HandlePointer(*Context, Pointer) Output { return Output{} }

func (*History) HandleCommand(ctx *Context, cmd input.Command) Output {
	if ctx.Busy() {
		return Output{}
	}
	switch cmd.Name {
	case input.CmdUndo:
		return Output{Undo: ctx.CanUndo}
	case input.CmdRedo:
		return Output{Redo: ctx.CanRedo}
	}
	return Output{}
}
