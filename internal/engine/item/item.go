package item

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/dshills/tessera/internal/engine/geom"
)

// ID identifies an item within a scene. Zero is never a valid id.
type ID int

// Kind names an item variant. The values double as the serialized type tag.
type Kind string

// Item variants.
const (
	KindPolygon  Kind = "Polygon"
	KindPolyline Kind = "Polyline"
	KindImage    Kind = "Image"
)

// Errors returned by WithField.
var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid field value")
)

// Item is the capability set the engine relies on. Implementations are
// value types; all methods are free of side effects.
type Item interface {
	ID() ID
	Kind() Kind
	Locked() bool
	Opacity() float64

	// WithID returns a copy carrying id.
	WithID(id ID) Item

	// WithLocked returns a copy with the lock flag set to locked.
	WithLocked(locked bool) Item

	// Move translates the item. Identity when locked.
	Move(dx, dy float64) Item

	// Resize maps the item's geometry from rectangle from onto rectangle to.
	// Identity when locked.
	Resize(from, to geom.Rect) Item

	// BBox returns the axis-aligned bounds of the geometry.
	BBox() geom.Rect

	// Contains reports whether p hits the item within tolerance tol.
	Contains(p geom.Point, tol float64) bool

	// Vertices returns a copy of the item's defining points.
	Vertices() []geom.Point

	// SupportsVertexEdit reports whether the item implements VertexEditor.
	SupportsVertexEdit() bool

	// WithField returns a copy with a named attribute replaced.
	WithField(name string, value any) (Item, error)
}

// VertexEditor is implemented by items whose vertices can be edited one by
// one. Out-of-range indices and locked items yield the receiver unchanged.
type VertexEditor interface {
	Item

	// MoveVertex places vertex i at p.
	MoveVertex(i int, p geom.Point) Item

	// InsertVertex inserts p so that it becomes vertex i.
	InsertVertex(i int, p geom.Point) Item

	// DeleteVertex removes vertex i unless that would leave fewer than
	// MinVertices points.
	DeleteVertex(i int) Item

	// MinVertices is the smallest vertex count the variant allows.
	MinVertices() int
}

// Equal reports whether two items are structurally identical.
func Equal(a, b Item) bool {
	return reflect.DeepEqual(a, b)
}

// Describe returns a short human-readable name such as "polygon #3".
func Describe(it Item) string {
	if it == nil {
		return "nothing"
	}
	switch it.Kind() {
	case KindPolygon:
		return fmt.Sprintf("polygon #%d", it.ID())
	case KindPolyline:
		return fmt.Sprintf("polyline #%d", it.ID())
	case KindImage:
		return fmt.Sprintf("image #%d", it.ID())
	default:
		return fmt.Sprintf("item #%d", it.ID())
	}
}

func fieldError(name string, err error) error {
	return fmt.Errorf("field %q: %w", name, err)
}
