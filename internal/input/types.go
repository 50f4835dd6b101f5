package input

import (
	"maps"
	"strings"
)

// Source indicates the origin of a command.
type Source uint8

const (
	// SourceKeyboard indicates a resolved shortcut chord.
	SourceKeyboard Source = iota
	// SourceIntent indicates a UI intent.
	SourceIntent
	// SourceScript indicates a Lua macro.
	SourceScript
	// SourceAPI indicates a direct call.
	SourceAPI
)

// String returns a string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceIntent:
		return "intent"
	case SourceScript:
		return "script"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Command names understood by the editor.
const (
	CmdRect       = "rect"
	CmdLine       = "line"
	CmdPolygon    = "polygon"
	CmdDelete     = "delete"
	CmdUndo       = "undo"
	CmdRedo       = "redo"
	CmdEdit       = "edit"
	CmdChangeZ    = "change-z-index"
	CmdLock       = "lock"
	CmdUnlock     = "unlock"
	CmdDuplicate  = "duplicate"
	CmdSelectAll  = "select-all"
	CmdCancel     = "cancel"
	CmdVertexMode = "vertex-mode"
	CmdZoomIn     = "zoom-in"
	CmdZoomOut    = "zoom-out"
	CmdZoomReset  = "zoom-reset"
	CmdNudge      = "nudge"
	CmdFinish     = "finish"
	CmdSave       = "save"
	CmdQuit       = "quit"

	// ScriptPrefix prefixes commands that run a named Lua macro.
	ScriptPrefix = "script."
)

// Args holds command arguments.
type Args map[string]any

// Get retrieves a raw value.
func (a Args) Get(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// GetString retrieves a string value.
func (a Args) GetString(key string) string {
	if s, ok := a[key].(string); ok {
		return s
	}
	return ""
}

// GetFloat retrieves a numeric value.
func (a Args) GetFloat(key string) float64 {
	switch n := a[key].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// GetBool retrieves a bool value.
func (a Args) GetBool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// Command is a named request to the editor.
type Command struct {
	// Name is the command identifier (e.g., "rect", "undo", "edit").
	Name string

	// Args contains command-specific arguments.
	Args Args

	// Source indicates where this command originated.
	Source Source
}

// NewCommand returns a command with no arguments.
func NewCommand(name string) Command {
	return Command{Name: name}
}

// With returns a copy of the command with an argument set.
func (c Command) With(key string, value any) Command {
	args := make(Args, len(c.Args)+1)
	maps.Copy(args, c.Args)
	args[key] = value
	c.Args = args
	return c
}

// WithSource returns a copy of the command with the source replaced.
func (c Command) WithSource(s Source) Command {
	c.Source = s
	return c
}

// Script returns the macro name for script commands.
func (c Command) Script() (string, bool) {
	return strings.CutPrefix(c.Name, ScriptPrefix)
}
