package keymap

import "github.com/dshills/tessera/internal/input"

// Default returns the built-in bindings.
func Default() *Keymap {
	k := New()
	for _, b := range defaultBindings() {
		k.MustAdd(b)
	}
	return k
}

func nudge(dx, dy float64, large bool) input.Args {
	return input.Args{"dx": dx, "dy": dy, "large": large}
}

func defaultBindings() []Binding {
	return []Binding{
		// Tools
		{Keys: "r", Command: input.CmdRect, Description: "Draw rectangle", Category: "Tools"},
		{Keys: "l", Command: input.CmdLine, Description: "Draw line", Category: "Tools"},
		{Keys: "p", Command: input.CmdPolygon, Description: "Draw polygon", Category: "Tools"},
		{Keys: "v", Command: input.CmdVertexMode, Description: "Toggle vertex editing", Category: "Tools"},
		{Keys: "esc", Command: input.CmdCancel, Description: "Cancel", Category: "Tools"},
		{Keys: "enter", Command: input.CmdFinish, Description: "Finish shape", Category: "Tools"},

		// History
		{Keys: "mod+z", Command: input.CmdUndo, Description: "Undo", Category: "History"},
		{Keys: "mod+shift+z", Command: input.CmdRedo, Description: "Redo", Category: "History"},
		{Keys: "mod+y", Command: input.CmdRedo, Description: "Redo", Category: "History"},

		// Edit
		{Keys: "delete", Command: input.CmdDelete, Description: "Delete selection", Category: "Edit"},
		{Keys: "backspace", Command: input.CmdDelete, Description: "Delete selection", Category: "Edit"},
		{Keys: "d", Command: input.CmdDuplicate, Description: "Duplicate selection", Category: "Edit"},
		{Keys: "mod+a", Command: input.CmdSelectAll, Description: "Select all", Category: "Edit"},
		{Keys: "mod+l", Command: input.CmdLock, Description: "Lock selection", Category: "Edit"},
		{Keys: "mod+shift+l", Command: input.CmdUnlock, Description: "Unlock selection", Category: "Edit"},
		{Keys: "]", Command: input.CmdChangeZ, Args: input.Args{"op": "inc"}, Description: "Bring forward", Category: "Edit"},
		{Keys: "[", Command: input.CmdChangeZ, Args: input.Args{"op": "dec"}, Description: "Send backward", Category: "Edit"},
		{Keys: "}", Command: input.CmdChangeZ, Args: input.Args{"op": "top"}, Description: "Bring to front", Category: "Edit"},
		{Keys: "{", Command: input.CmdChangeZ, Args: input.Args{"op": "bottom"}, Description: "Send to back", Category: "Edit"},

		// Nudge
		{Keys: "left", Command: input.CmdNudge, Args: nudge(-1, 0, false), Category: "Nudge"},
		{Keys: "right", Command: input.CmdNudge, Args: nudge(1, 0, false), Category: "Nudge"},
		{Keys: "up", Command: input.CmdNudge, Args: nudge(0, -1, false), Category: "Nudge"},
		{Keys: "down", Command: input.CmdNudge, Args: nudge(0, 1, false), Category: "Nudge"},
		{Keys: "shift+left", Command: input.CmdNudge, Args: nudge(-1, 0, true), Category: "Nudge"},
		{Keys: "shift+right", Command: input.CmdNudge, Args: nudge(1, 0, true), Category: "Nudge"},
		{Keys: "shift+up", Command: input.CmdNudge, Args: nudge(0, -1, true), Category: "Nudge"},
		{Keys: "shift+down", Command: input.CmdNudge, Args: nudge(0, 1, true), Category: "Nudge"},

		// View
		{Keys: "+", Command: input.CmdZoomIn, Description: "Zoom in", Category: "View"},
		{Keys: "=", Command: input.CmdZoomIn, Description: "Zoom in", Category: "View"},
		{Keys: "-", Command: input.CmdZoomOut, Description: "Zoom out", Category: "View"},
		{Keys: "0", Command: input.CmdZoomReset, Description: "Reset zoom", Category: "View"},

		// File
		{Keys: "mod+s", Command: input.CmdSave, Description: "Save", Category: "File"},
		{Keys: "mod+q", Command: input.CmdQuit, Description: "Quit", Category: "File"},
	}
}
