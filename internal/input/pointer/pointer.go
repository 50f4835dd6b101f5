// Package pointer provides pointer (mouse) events in screen space and a
// Tracker that synthesizes click and double-click events from raw
// down/up pairs.
package pointer

import (
	"fmt"
	"time"

	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/input/key"
)

// Kind is the type of pointer event.
type Kind uint8

const (
	// Move is pointer movement, with or without a button held.
	Move Kind = iota
	// Down is a button press.
	Down
	// Up is a button release.
	Up
	// Click is synthesized after a down/up pair without movement.
	Click
	// DoubleClick is synthesized after the second click in quick
	// succession.
	DoubleClick
	// Wheel is a scroll wheel step.
	Wheel
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Down:
		return "down"
	case Up:
		return "up"
	case Click:
		return "click"
	case DoubleClick:
		return "double-click"
	case Wheel:
		return "wheel"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Button represents a pointer button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary button.
	ButtonLeft
	// ButtonMiddle is the middle button (wheel click).
	ButtonMiddle
	// ButtonRight is the secondary button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Event is a pointer event in screen coordinates.
type Event struct {
	Kind Kind
	Pos  geom.Point

	// Button is the button pressed or released; for Move it is the button
	// held, if any.
	Button Button

	// Mods are the keyboard modifiers held during the event.
	Mods key.Modifier

	// Delta is the wheel step: positive away from the user.
	Delta float64

	Time time.Time
}

// Dragging reports whether a button is held during a move.
func (e Event) Dragging() bool {
	return e.Kind == Move && e.Button != ButtonNone
}

// String returns a compact description for logging.
func (e Event) String() string {
	return fmt.Sprintf("%s %s (%g,%g)", e.Kind, e.Button, e.Pos.X, e.Pos.Y)
}
