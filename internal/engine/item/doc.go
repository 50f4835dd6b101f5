// Package item defines the drawable shapes of a diagram.
//
// Items are immutable values. Every geometric operation returns a new Item
// and leaves the receiver untouched, which lets actions keep the "before"
// value around for undo without copying defensively.
//
// # Variants
//
//   - Polygon: closed shape with at least one vertex, styling and semantic
//     metadata (label, tags, label offset, font size).
//   - Polyline: the open counterpart of Polygon.
//   - Image: a positioned raster reference. Images have no editable vertices.
//
// # Locking
//
// A locked item ignores Move, Resize and all vertex operations; each variant
// enforces this itself so callers never need to check.
package item
