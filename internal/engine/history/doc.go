// Package history provides undo/redo for the diagram engine.
//
// The history system uses the Command pattern: every scene mutation is an
// Action that knows how to apply itself (Next) and how to reverse itself
// (Prev). Key concepts:
//
// # Actions
//
// An Action maps one scene state to another. Two optional capabilities
// hook into History.Push:
//   - Preparer: capture "before" data or assign ids against the state the
//     action is about to be applied to.
//   - Merger: coalesce a continuous gesture (a drag, a resize, repeated
//     edits of one field) into the entry at the cursor.
//
// # History
//
// History is a linear list of actions over an initial state with a cursor:
//
//	h := New(scene.State{}, 500) // keep at most 500 entries
//
//	h.Push(action.NewAddItem(poly))
//	h.Undo()
//	h.Redo()
//
// Pushing after an undo discards the redo tail. Folding Next over the
// applied entries from the initial state always reproduces State().
//
// # Grouping
//
// Several pushes can be collapsed into a single undo unit:
//
//	h.BeginGroup("Run macro")
//	// ... pushes ...
//	h.EndGroup()
package history
