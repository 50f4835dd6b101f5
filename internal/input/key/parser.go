package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a chord specification into an Event.
//
// Supported formats:
//   - Single character: "d", "D", "+", "?"
//   - Key names: "esc", "Enter", "Delete", "space"
//   - With modifiers: "mod+z", "Ctrl+Shift+Z", "shift+up"
//   - Vim-style: "<C-z>", "<Esc>", "<S-Up>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseParts(strings.Split(spec[1:len(spec)-1], "-"))
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		parts := strings.Split(spec, "+")
		// "ctrl++" binds the plus key.
		if strings.HasSuffix(spec, "++") {
			parts = append(parts[:len(parts)-2], "+")
		}
		return parseParts(parts)
	}
	return parseParts([]string{spec})
}

// parseParts treats the last part as the key and the rest as modifiers.
func parseParts(parts []string) (Event, error) {
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}
	if strings.EqualFold(keyPart, "space") {
		return NewRuneEvent(' ', mods).Normalize(), nil
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if runes := []rune(keyPart); len(runes) == 1 {
		return NewRuneEvent(runes[0], mods).Normalize(), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a chord and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// NormalizeChord parses a chord and returns its canonical form.
func NormalizeChord(spec string) (string, error) {
	event, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return event.Chord(), nil
}
