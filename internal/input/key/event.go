package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// Normalize gives every chord a single representation. Letters pressed
// with Ctrl, Alt or Meta become lower case and carry Shift explicitly;
// plain letters fold Shift into the character. For other characters Shift
// is already reflected in the rune and is dropped.
func (e Event) Normalize() Event {
	if !e.IsRune() {
		return e
	}
	r, mods := e.Rune, e.Modifiers
	switch {
	case unicode.IsLetter(r) && mods&(ModCtrl|ModAlt|ModMeta) != 0:
		if unicode.IsUpper(r) {
			mods = mods.With(ModShift)
		}
		r = unicode.ToLower(r)
	case unicode.IsLetter(r):
		if mods.Has(ModShift) {
			r = unicode.ToUpper(r)
		}
		mods = mods.Without(ModShift)
	default:
		mods = mods.Without(ModShift)
	}
	e.Rune, e.Modifiers = r, mods
	return e
}

// Chord returns the canonical chord string, e.g. "d", "D", "ctrl+z",
// "ctrl+shift+z", "esc", "shift+up".
func (e Event) Chord() string {
	e = e.Normalize()
	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "space"
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}
	if m := e.Modifiers.String(); m != "" {
		return m + "+" + name
	}
	return name
}

// Equals returns true if two events name the same chord.
func (e Event) Equals(other Event) bool {
	return e.Chord() == other.Chord()
}

// IsEscape returns true if this is the Escape key (with no modifiers).
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key (with no modifiers).
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}", e.Key, e.Rune, e.Modifiers)
}
