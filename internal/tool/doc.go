// Package tool implements the interactive behaviors of the editor.
//
// A Behavior reacts to pointer events and commands given a read-only
// Context (mode, scene, selection, active snap rules, viewport) and
// returns an Output describing what should change: the next mode, actions
// to push, selection updates, the snap rules for the next events, and a
// preview item. Behaviors never mutate editor state themselves; the editor
// merges the outputs of every behavior for an event and applies them in a
// fixed order.
//
// Each pointer-driven behavior guards on the current mode, so for a given
// mode value only one behavior is armed. Guards that claim the pointer
// (resize handles, vertex hover) are checked by the generic select and
// drag behaviors before they act.
//
// Behaviors:
//
//   - History: undo and redo
//   - Cancel: esc returns any mode to idle
//   - Select and Drag: click to select, drag to move, keyboard nudge
//   - Resize: eight bbox handles on a single selected item
//   - Vertex: move, insert and delete vertices in vertex mode
//   - Rect, Line, Polygon: drawing tools
//   - Viewport: wheel zoom, middle-button pan and zoom commands
//   - Edit: delete, duplicate, select-all, lock, field edits, z-order
package tool
