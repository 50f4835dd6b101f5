package keymap

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/dshills/tessera/internal/input"
)

// Binding represents a single chord-to-command mapping.
type Binding struct {
	// Keys is the chord that triggers this binding.
	// Formats: "d", "mod+z", "<C-z>", "Ctrl+Shift+Z"
	Keys string

	// Command is the command to execute.
	Command string

	// Args are fixed arguments for the command.
	Args input.Args

	// Mode restricts the binding to a mode or mode family.
	// Empty means all modes.
	Mode string

	// Description provides documentation for the binding.
	Description string

	// Priority determines precedence when multiple bindings match.
	Priority int

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given keys and command.
func NewBinding(keys, command string) Binding {
	return Binding{Keys: keys, Command: command}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args input.Args) Binding {
	b.Args = args
	return b
}

// InMode restricts the binding to mode.
func (b Binding) InMode(mode string) Binding {
	b.Mode = mode
	return b
}

// Matches reports whether the binding applies in mode.
func (b Binding) Matches(mode string) bool {
	return b.Mode == "" || b.Mode == mode || strings.HasPrefix(mode, b.Mode+".")
}

// ToCommand builds the command this binding triggers.
func (b Binding) ToCommand() input.Command {
	cmd := input.Command{Name: b.Command, Source: input.SourceKeyboard}
	if len(b.Args) > 0 {
		cmd.Args = maps.Clone(b.Args)
	}
	return cmd
}

// ParseCommandSpec parses "name key=value ..." into a command name and
// arguments. Values that parse as numbers or booleans are typed.
func ParseCommandSpec(spec string) (string, input.Args, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	var args input.Args
	for _, f := range fields[1:] {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return "", nil, fmt.Errorf("argument %q: expected key=value", f)
		}
		if args == nil {
			args = input.Args{}
		}
		args[k] = parseValue(v)
	}
	return fields[0], args, nil
}

func parseValue(v string) any {
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}
