package mode

import "strings"

// Built-in modes.
const (
	Idle = "idle"

	RectReady   = "rect.ready"
	RectDrawing = "rect.drawing"

	LineReady   = "line.ready"
	LineDrawing = "line.drawing"

	PolygonReady   = "polygon.ready"
	PolygonDrawing = "polygon.drawing"

	Dragging     = "dragging"
	Resizing     = "resizing"
	VertexMoving = "vertex.moving"
	Panning      = "panning"
)

// Tool returns the tool part of a mode name: "rect" for "rect.drawing".
func Tool(name string) string {
	tool, _, _ := strings.Cut(name, ".")
	return tool
}

// State returns the state part of a mode name: "drawing" for
// "rect.drawing", or the whole name when it has no tool prefix.
func State(name string) string {
	if _, state, ok := strings.Cut(name, "."); ok {
		return state
	}
	return name
}

// DisplayName returns a human-readable name for the status line.
func DisplayName(name string) string {
	switch name {
	case Idle:
		return "SELECT"
	case Dragging:
		return "MOVE"
	case Resizing:
		return "RESIZE"
	case VertexMoving:
		return "VERTEX"
	case Panning:
		return "PAN"
	}
	return strings.ToUpper(strings.ReplaceAll(name, ".", " "))
}
