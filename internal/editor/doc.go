// Package editor ties the editing engine together.
//
// An Editor owns the history, the selection, the mode manager, the active
// snap rules, the preview item and the viewport. It turns raw input (key
// events, pointer events, JSON intents and commands) into calls on its
// tool behaviors, merges their outputs and applies them in a fixed order:
//
//  1. mode transition
//  2. history (undo, redo, then pushed actions)
//  3. selection
//  4. snap rules
//  5. preview
//  6. viewport
//
// Change notifications are published on the event bus once the whole
// event has settled. An Editor is not safe for concurrent use: drive it
// from a single goroutine, typically through Run.
package editor
