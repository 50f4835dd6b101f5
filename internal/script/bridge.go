package script

import (
	"fmt"
	"maps"
	"slices"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/item"
)

// toGo converts a Lua value to a Go value. Sequences become []any, other
// tables map[string]any. Integral numbers become int.
func toGo(lv lua.LValue) any {
	return toGoVisited(lv, map[*lua.LTable]bool{})
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGoVisited(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = toGoVisited(v, visited)
	})
	return m
}

// toLua converts a Go value to a Lua value.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case item.ID:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []string:
		t := L.NewTable()
		for _, s := range val {
			t.Append(lua.LString(s))
		}
		return t
	case []any:
		t := L.NewTable()
		for _, e := range val {
			t.Append(toLua(L, e))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for _, k := range slices.Sorted(maps.Keys(val)) {
			t.RawSetString(k, toLua(L, val[k]))
		}
		return t
	case geom.Point:
		t := L.NewTable()
		t.Append(lua.LNumber(val.X))
		t.Append(lua.LNumber(val.Y))
		return t
	default:
		return lua.LString(fmt.Sprint(val))
	}
}

// checkPoints reads argument n as a list of points.
func checkPoints(L *lua.LState, n int) []geom.Point {
	t := L.CheckTable(n)
	var pts []geom.Point
	for i := 1; i <= t.Len(); i++ {
		p, ok := point(t.RawGetInt(i))
		if !ok {
			L.ArgError(n, fmt.Sprintf("point %d: expected {x, y}", i))
		}
		pts = append(pts, p)
	}
	return pts
}

func point(lv lua.LValue) (geom.Point, bool) {
	t, ok := lv.(*lua.LTable)
	if !ok {
		return geom.Point{}, false
	}
	x, xok := t.RawGetString("x").(lua.LNumber)
	y, yok := t.RawGetString("y").(lua.LNumber)
	if xok && yok {
		return geom.Pt(float64(x), float64(y)), true
	}
	x, xok = t.RawGetInt(1).(lua.LNumber)
	y, yok = t.RawGetInt(2).(lua.LNumber)
	if xok && yok {
		return geom.Pt(float64(x), float64(y)), true
	}
	return geom.Point{}, false
}

// optIDs reads argument n as an optional list of ids.
func optIDs(L *lua.LState, n int) ([]item.ID, bool) {
	if L.GetTop() < n || L.Get(n) == lua.LNil {
		return nil, false
	}
	t := L.CheckTable(n)
	return tableIDs(L, n, t), true
}

func tableIDs(L *lua.LState, n int, t *lua.LTable) []item.ID {
	ids := make([]item.ID, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		v, ok := t.RawGetInt(i).(lua.LNumber)
		if !ok {
			L.ArgError(n, "expected a list of ids")
		}
		ids = append(ids, item.ID(v))
	}
	return ids
}

func idsTable(L *lua.LState, ids []item.ID) *lua.LTable {
	t := L.CreateTable(len(ids), 0)
	for _, id := range ids {
		t.Append(lua.LNumber(id))
	}
	return t
}

// itemTable describes it for scripts.
func itemTable(L *lua.LState, it item.Item) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LNumber(it.ID()))
	t.RawSetString("kind", lua.LString(it.Kind()))
	t.RawSetString("locked", lua.LBool(it.Locked()))
	if label, err := item.Field(it, item.FieldLabel); err == nil {
		t.RawSetString("label", toLua(L, label))
	}
	verts := L.NewTable()
	for _, p := range it.Vertices() {
		verts.Append(toLua(L, p))
	}
	t.RawSetString("vertices", verts)
	return t
}
