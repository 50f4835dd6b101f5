// Package keymap maps key chords to editor commands.
//
// A Keymap holds bindings keyed by canonical chord (see key.Event.Chord).
// A binding may be restricted to a mode or a mode family: Mode "polygon"
// matches "polygon.ready" and "polygon.drawing". When several bindings
// share a chord, mode-specific bindings win over global ones and higher
// Priority wins after that.
//
// User configuration overrides bindings with a chord to command table:
//
//	[keymap]
//	"mod+shift+z" = "redo"
//	"shift+right" = "nudge dx=10"
//	"d" = "none"          # unbind
package keymap
