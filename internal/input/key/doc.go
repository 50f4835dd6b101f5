// Package key provides keyboard event types and chord parsing.
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: modifier key bit set (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press with modifiers
//
// # Chords
//
// Chords can be written in several formats:
//
//   - Simple keys: "d", "D", "esc", "Enter", "Delete"
//   - With modifiers: "Ctrl+Z", "shift+up", "mod+shift+z"
//   - Vim-style: "<C-z>", "<Esc>", "<S-Up>"
//
// "mod" is the platform's primary shortcut modifier and resolves to Ctrl.
// Every chord has a canonical form, returned by Event.Chord, which is what
// keymaps are keyed by.
package key
