package tool

import (
	"github.com/dshills/tessera/internal/engine/selection"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/mode"
)

// Cancel handles esc. In a tool mode it returns to idle, dropping the
// preview and the snap rules; gesture behaviors revert their own partial
// changes. In idle it leaves vertex mode, then clears the selection.
type Cancel struct{}

// NewCancel creates the cancel behavior.
func NewCancel() *Cancel { return &Cancel{} }

func (*Cancel) Name() string { return "cancel" }

func (*Cancel) HandlePointer(*Context, Pointer) Output { return Output{} }

func (*Cancel) HandleCommand(ctx *Context, cmd input.Command) Output {
	if cmd.Name != input.CmdCancel {
		return Output{}
	}
	switch {
	case ctx.Mode == mode.Panning:
		return Output{PopMode: true}
	case ctx.Mode != mode.Idle:
		return idle()
	case ctx.Selection.Mode() == selection.ModeVertices:
		return selectOutput(ctx.Selection.WithMode(selection.ModeBBox))
	case !ctx.Selection.Empty():
		return selectOutput(selection.New())
	}
	return Output{}
}
