package script

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tessera/internal/editor"
	"github.com/dshills/tessera/internal/engine/action"
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/intent"
	"github.com/dshills/tessera/internal/input/keymap"
)

// api binds the editor module for one run.
type api struct {
	ctx context.Context
	e   *editor.Editor
	s   *State
}

// Install sets the global "editor" table of s to operate on e. ctx is
// passed to every editor call.
func Install(ctx context.Context, s *State, e *editor.Editor) {
	a := &api{ctx: ctx, e: e, s: s}
	funcs := map[string]lua.LGFunction{
		"polygon":   a.polygon,
		"polyline":  a.polyline,
		"select":    a.sel,
		"move":      a.move,
		"delete":    a.delete,
		"edit":      a.edit,
		"undo":      a.undo,
		"redo":      a.redo,
		"command":   a.command,
		"intent":    a.intent,
		"items":     a.items,
		"mode":      a.mode,
		"selection": a.selection,
	}
	for name, fn := range funcs {
		funcs[name] = a.charged(fn)
	}
	s.L.SetGlobal("editor", s.L.SetFuncs(s.L.NewTable(), funcs))
}

func (a *api) charged(fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		a.s.charge(L)
		return fn(L)
	}
}

// check raises err as a Lua error.
func check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%v", err)
	}
}

func (a *api) polygon(L *lua.LState) int {
	pts := checkPoints(L, 1)
	if len(pts) < 3 {
		L.ArgError(1, "a polygon needs at least 3 points")
	}
	pg := item.NewPolygon(pts, a.style(), a.meta())
	pg.Alpha = a.e.Settings().Tool.Opacity
	return a.add(L, pg)
}

func (a *api) polyline(L *lua.LState) int {
	pts := checkPoints(L, 1)
	if len(pts) < 2 {
		L.ArgError(1, "a polyline needs at least 2 points")
	}
	pl := item.NewPolyline(pts, a.style(), a.meta())
	pl.Alpha = a.e.Settings().Tool.Opacity
	return a.add(L, pl)
}

// add applies the optional field table at argument 2 and pushes it.
func (a *api) add(L *lua.LState, it item.Item) int {
	if fields := L.OptTable(2, nil); fields != nil {
		var err error
		fields.ForEach(func(k, v lua.LValue) {
			if err != nil {
				return
			}
			it, err = it.WithField(k.String(), toGo(v))
		})
		check(L, err)
	}
	ids, err := a.e.Push(a.ctx, action.NewAddItem(it))
	check(L, err)
	if len(ids) == 0 {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(ids[0]))
	return 1
}

func (a *api) style() item.Style { return a.e.Settings().Tool.Style }

func (a *api) meta() item.Meta {
	return item.Meta{FontSize: a.e.Settings().Tool.FontSize}
}

// targets returns the ids at argument n, or the selection.
func (a *api) targets(L *lua.LState, n int) []item.ID {
	if ids, ok := optIDs(L, n); ok {
		return ids
	}
	return a.e.Selection().IDs()
}

func (a *api) sel(L *lua.LState) int {
	var ids []item.ID
	if t, ok := L.Get(1).(*lua.LTable); ok {
		ids = tableIDs(L, 1, t)
	} else {
		for i := 1; i <= L.GetTop(); i++ {
			ids = append(ids, item.ID(L.CheckNumber(i)))
		}
	}
	check(L, a.e.SetSelection(a.ctx, ids...))
	return 0
}

func (a *api) move(L *lua.LState) int {
	d := geom.Pt(float64(L.CheckNumber(1)), float64(L.CheckNumber(2)))
	ids := a.targets(L, 3)
	if len(ids) == 0 || d.IsZero() {
		return 0
	}
	_, err := a.e.Push(a.ctx, action.NewNudge(ids, d))
	check(L, err)
	return 0
}

func (a *api) delete(L *lua.LState) int {
	ids := a.targets(L, 1)
	if len(ids) == 0 {
		return 0
	}
	_, err := a.e.Push(a.ctx, action.NewDeleteItems(ids...))
	check(L, err)
	return 0
}

func (a *api) edit(L *lua.LState) int {
	field := L.CheckString(1)
	value := toGo(L.CheckAny(2))
	cmd := input.NewCommand(input.CmdEdit).With("field", field).With("value", value)
	if ids, ok := optIDs(L, 3); ok {
		cmd = cmd.With("ids", ids)
	}
	check(L, a.e.Execute(a.ctx, cmd.WithSource(input.SourceScript)))
	return 0
}

// history runs undo or redo and reports whether anything changed.
func (a *api) history(L *lua.LState, name string) int {
	before := a.e.History().Index()
	check(L, a.e.Execute(a.ctx, input.NewCommand(name).WithSource(input.SourceScript)))
	L.Push(lua.LBool(a.e.History().Index() != before))
	return 1
}

func (a *api) undo(L *lua.LState) int { return a.history(L, input.CmdUndo) }
func (a *api) redo(L *lua.LState) int { return a.history(L, input.CmdRedo) }

func (a *api) command(L *lua.LState) int {
	name, args, err := keymap.ParseCommandSpec(L.CheckString(1))
	check(L, err)
	cmd := input.Command{Name: name, Args: args, Source: input.SourceScript}
	if extra := L.OptTable(2, nil); extra != nil {
		extra.ForEach(func(k, v lua.LValue) {
			cmd = cmd.With(k.String(), toGo(v))
		})
	}
	check(L, a.e.Execute(a.ctx, cmd))
	return 0
}

func (a *api) intent(L *lua.LState) int {
	switch v := L.CheckAny(1).(type) {
	case lua.LString:
		cmds, err := intent.DecodeAll([]byte(v))
		check(L, err)
		for _, cmd := range cmds {
			check(L, a.e.Execute(a.ctx, cmd.WithSource(input.SourceScript)))
		}
	case *lua.LTable:
		fields, _ := toGo(v).(map[string]any)
		name, _ := fields["type"].(string)
		if name == "" {
			check(L, intent.ErrMissingType)
		}
		cmd := input.NewCommand(name).WithSource(input.SourceScript)
		for k, val := range fields {
			if k != "type" {
				cmd = cmd.With(k, val)
			}
		}
		check(L, a.e.Execute(a.ctx, cmd))
	default:
		L.ArgError(1, "expected a JSON string or a table")
	}
	return 0
}

func (a *api) items(L *lua.LState) int {
	items := a.e.Scene().Items()
	t := L.CreateTable(len(items), 0)
	for _, it := range items {
		t.Append(itemTable(L, it))
	}
	L.Push(t)
	return 1
}

func (a *api) mode(L *lua.LState) int {
	L.Push(lua.LString(a.e.Mode()))
	return 1
}

func (a *api) selection(L *lua.LState) int {
	L.Push(idsTable(L, a.e.Selection().IDs()))
	return 1
}
