package input

import "testing"

func TestCommandWithCopiesArgs(t *testing.T) {
	base := NewCommand(CmdNudge).With("dx", 1.0)
	derived := base.With("dy", 2)

	if _, ok := base.Args.Get("dy"); ok {
		t.Error("With mutated the receiver")
	}
	if derived.Args.GetFloat("dx") != 1 || derived.Args.GetFloat("dy") != 2 {
		t.Errorf("args = %v", derived.Args)
	}
}

func TestArgsAccessors(t *testing.T) {
	a := Args{"s": "x", "b": true, "n": int64(3)}
	if a.GetString("s") != "x" || a.GetString("b") != "" {
		t.Error("GetString")
	}
	if !a.GetBool("b") || a.GetBool("missing") {
		t.Error("GetBool")
	}
	if a.GetFloat("n") != 3 {
		t.Error("GetFloat")
	}
	var nilArgs Args
	if nilArgs.GetString("x") != "" {
		t.Error("nil args")
	}
}

func TestScriptCommand(t *testing.T) {
	if name, ok := NewCommand("script.grid").Script(); !ok || name != "grid" {
		t.Errorf("Script() = %q, %v", name, ok)
	}
	if _, ok := NewCommand(CmdUndo).Script(); ok {
		t.Error("undo is not a script")
	}
}
