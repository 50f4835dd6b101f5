package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/tessera/internal/editor"
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/mode"
)

func newRunner(t *testing.T, opts ...StateOption) (*Runner, *editor.Editor) {
	t.Helper()
	e := editor.New()
	return NewRunner(e, nil, opts...), e
}

func run(t *testing.T, r *Runner, code string) {
	t.Helper()
	if err := r.RunString(context.Background(), "test", code); err != nil {
		t.Fatalf("RunString: %v", err)
	}
}

func TestPolygonAndPolyline(t *testing.T) {
	r, e := newRunner(t)
	run(t, r, `
		local a = editor.polygon({{0, 0}, {10, 0}, {10, 10}}, {label = "A", fill = "#ff0000"})
		local b = editor.polyline({{x = 0, y = 20}, {x = 30, y = 20}})
		assert(a == 1 and b == 2, "ids")
	`)

	items := e.Scene().Items()
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
	if items[0].Kind() != item.KindPolygon || items[1].Kind() != item.KindPolyline {
		t.Errorf("kinds = %s, %s", items[0].Kind(), items[1].Kind())
	}
	if v, _ := item.Field(items[0], item.FieldLabel); v != "A" {
		t.Errorf("label = %v", v)
	}
	if v, _ := item.Field(items[0], item.FieldFill); v != "#ff0000" {
		t.Errorf("fill = %v", v)
	}
	if got := items[1].Vertices()[1]; got != geom.Pt(30, 20) {
		t.Errorf("polyline end = %v", got)
	}
}

func TestRunIsOneUndoStep(t *testing.T) {
	r, e := newRunner(t)
	run(t, r, `
		editor.polygon({{0, 0}, {10, 0}, {10, 10}})
		editor.polygon({{20, 0}, {30, 0}, {30, 10}})
		editor.select(1, 2)
		editor.move(5, 5)
	`)
	if e.History().Len() != 1 {
		t.Fatalf("entries = %d, want 1", e.History().Len())
	}
	it, _ := e.Scene().Get(2)
	if it.BBox().Min != geom.Pt(25, 5) {
		t.Errorf("moved bbox = %v", it.BBox())
	}

	if err := e.Execute(context.Background(), input.NewCommand(input.CmdUndo)); err != nil {
		t.Fatal(err)
	}
	if e.Scene().Len() != 0 {
		t.Errorf("undo left %d items", e.Scene().Len())
	}
}

func TestFailedRunRollsBack(t *testing.T) {
	r, e := newRunner(t)
	err := r.RunString(context.Background(), "bad", `
		editor.polygon({{0, 0}, {10, 0}, {10, 10}})
		error("boom")
	`)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("err = %v", err)
	}
	if e.Scene().Len() != 0 || e.History().Len() != 0 {
		t.Errorf("scene %d items, %d entries after failed run", e.Scene().Len(), e.History().Len())
	}
}

func TestQueries(t *testing.T) {
	r, e := newRunner(t)
	run(t, r, `
		editor.polygon({{0, 0}, {10, 0}, {10, 10}}, {label = "room"})
		editor.select({1})
		local items = editor.items()
		assert(#items == 1, "items")
		assert(items[1].kind == "Polygon", "kind")
		assert(items[1].label == "room", "label")
		assert(#items[1].vertices == 3 and items[1].vertices[2][1] == 10, "vertices")
		assert(editor.selection()[1] == 1, "selection")
		assert(editor.mode() == "idle", "mode")
	`)
	if !e.Selection().Has(1) {
		t.Error("selection not applied")
	}
}

func TestEditCommandIntent(t *testing.T) {
	r, e := newRunner(t)
	run(t, r, `
		editor.polygon({{0, 0}, {10, 0}, {10, 10}})
		editor.polygon({{20, 0}, {30, 0}, {30, 10}})
		editor.edit("label", "first", {1})
		editor.select(2)
		editor.command("lock")
		editor.intent('{"type":"edit","field":"label","value":"second"}')
		editor.intent({type = "change-z-index", op = "bottom"})
	`)
	first, _ := e.Scene().Get(1)
	second, _ := e.Scene().Get(2)
	if v, _ := item.Field(first, item.FieldLabel); v != "first" {
		t.Errorf("first label = %v", v)
	}
	if !second.Locked() {
		t.Error("second should be locked")
	}
	if z := e.Scene().ZList(); len(z) != 2 || z[0] != 2 {
		t.Errorf("zlist = %v", z)
	}
}

func TestUndoRedoFromScript(t *testing.T) {
	r, e := newRunner(t)
	run(t, r, `editor.polygon({{0, 0}, {10, 0}, {10, 10}})`)
	run(t, r, `
		assert(editor.undo() == true, "undo")
		assert(editor.undo() == false, "nothing left")
		assert(editor.redo() == true, "redo")
	`)
	if e.Scene().Len() != 1 {
		t.Errorf("items = %d", e.Scene().Len())
	}
}

func TestDeleteSelection(t *testing.T) {
	r, e := newRunner(t)
	run(t, r, `
		editor.polygon({{0, 0}, {10, 0}, {10, 10}})
		editor.polygon({{20, 0}, {30, 0}, {30, 10}})
		editor.select(1)
		editor.delete()
		editor.delete({2})
	`)
	if e.Scene().Len() != 0 {
		t.Errorf("items = %d", e.Scene().Len())
	}
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"too few points", `editor.polygon({{0, 0}, {1, 1}})`, "at least 3"},
		{"bad point", `editor.polyline({{0, 0}, "x"})`, "expected {x, y}"},
		{"bad field", `editor.polygon({{0, 0}, {1, 0}, {1, 1}}, {stroke = "nope"})`, "stroke"},
		{"unknown command", `editor.command("teleport")`, "unknown command"},
		{"missing intent type", `editor.intent({field = "label"})`, "missing type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRunner(t)
			err := r.RunString(context.Background(), "t", tt.code)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestSandbox(t *testing.T) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os", "debug"} {
		t.Run(name, func(t *testing.T) {
			r, _ := newRunner(t)
			run(t, r, `assert(`+name+` == nil, "`+name+` should be unavailable")`)
		})
	}
	r, _ := newRunner(t)
	run(t, r, `assert(string.upper("a") == "A" and math.floor(1.5) == 1 and table.concat({"a", "b"}) == "ab")`)
}

func TestBudgets(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		r, _ := newRunner(t, WithTimeout(50*time.Millisecond))
		start := time.Now()
		err := r.RunString(context.Background(), "spin", `while true do end`)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("err = %v", err)
		}
		if time.Since(start) > 5*time.Second {
			t.Error("timeout not enforced")
		}
	})
	t.Run("call limit", func(t *testing.T) {
		r, _ := newRunner(t, WithCallLimit(10))
		err := r.RunString(context.Background(), "chatty", `for i = 1, 100 do editor.mode() end`)
		if err == nil || !strings.Contains(err.Error(), "call limit") {
			t.Errorf("err = %v", err)
		}
	})
}

func TestBindRegistersCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.lua")
	if err := os.WriteFile(path, []byte(`editor.polygon({{0, 0}, {10, 0}, {5, 8}})`), 0o644); err != nil {
		t.Fatal(err)
	}
	loop := filepath.Join(dir, "loop.lua")
	if err := os.WriteFile(loop, []byte(`editor.command("script.loop")`), 0o644); err != nil {
		t.Fatal(err)
	}

	r, e := newRunner(t)
	r.Bind(map[string]string{"tri": path, "loop": loop})
	if got := r.Names(); len(got) != 2 || got[0] != "loop" {
		t.Errorf("Names() = %v", got)
	}

	if err := e.Execute(context.Background(), input.NewCommand("script.tri")); err != nil {
		t.Fatal(err)
	}
	if e.Scene().Len() != 1 || e.Mode() != mode.Idle {
		t.Errorf("items = %d, mode %q", e.Scene().Len(), e.Mode())
	}

	err := e.Execute(context.Background(), input.NewCommand("script.loop"))
	if err == nil || !strings.Contains(err.Error(), ErrReentrant.Error()) {
		t.Errorf("re-entrant run: %v", err)
	}

	r.Bind(map[string]string{"tri": path})
	if err := e.Execute(context.Background(), input.NewCommand("script.loop")); !errors.Is(err, editor.ErrUnknownCommand) {
		t.Errorf("unbound script: %v", err)
	}
}

func TestPrintGoesToLog(t *testing.T) {
	r, _ := newRunner(t)
	run(t, r, `print("hello", 1)`)
}
