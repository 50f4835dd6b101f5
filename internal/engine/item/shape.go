package item

import (
	"slices"

	"github.com/dshills/tessera/internal/engine/geom"
)

// Style holds the paint attributes of a shape. Colors are "#rgb" or
// "#rrggbb"; the empty string means "none".
type Style struct {
	Stroke      string
	StrokeWidth float64
	Fill        string
}

// Meta holds the semantic annotations of a shape.
type Meta struct {
	Label       string
	Tags        []string
	LabelOffset geom.Point
	FontSize    float64
}

// Shape is the state shared by Polygon and Polyline.
type Shape struct {
	ItemID   ID
	IsLocked bool
	Alpha    float64
	Points   []geom.Point
	Style    Style
	Meta     Meta
}

func (s Shape) ID() ID                 { return s.ItemID }
func (s Shape) Locked() bool           { return s.IsLocked }
func (s Shape) Opacity() float64       { return s.Alpha }
func (s Shape) BBox() geom.Rect        { return geom.BBox(s.Points) }
func (s Shape) Vertices() []geom.Point { return slices.Clone(s.Points) }

// SupportsVertexEdit reports true for every shape.
func (s Shape) SupportsVertexEdit() bool { return true }

// Label returns the shape's label text.
func (s Shape) Label() string { return s.Meta.Label }

// LabelPos returns the world position where the label is anchored: the
// bounding box center shifted by the label offset.
func (s Shape) LabelPos() geom.Point {
	return s.BBox().Center().Add(s.Meta.LabelOffset)
}

// HasTag reports whether tag is among the shape's tags.
func (s Shape) HasTag(tag string) bool {
	return slices.Contains(s.Meta.Tags, tag)
}

func (s Shape) moved(dx, dy float64) Shape {
	pts := make([]geom.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = geom.Point{X: p.X + dx, Y: p.Y + dy}
	}
	s.Points = pts
	return s
}

func (s Shape) resized(from, to geom.Rect) Shape {
	pts := make([]geom.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = geom.MapPoint(p, from, to)
	}
	s.Points = pts
	return s
}

func (s Shape) vertexMoved(i int, p geom.Point) (Shape, bool) {
	if s.IsLocked || i < 0 || i >= len(s.Points) {
		return s, false
	}
	s.Points = slices.Clone(s.Points)
	s.Points[i] = p
	return s, true
}

func (s Shape) vertexInserted(i int, p geom.Point) (Shape, bool) {
	if s.IsLocked || i < 0 || i > len(s.Points) {
		return s, false
	}
	s.Points = slices.Insert(slices.Clone(s.Points), i, p)
	return s, true
}

func (s Shape) vertexDeleted(i, minVertices int) (Shape, bool) {
	if s.IsLocked || i < 0 || i >= len(s.Points) || len(s.Points) <= minVertices {
		return s, false
	}
	s.Points = slices.Delete(slices.Clone(s.Points), i, i+1)
	return s, true
}

// nearPath reports whether p lies within tol of the path through pts,
// closing it back to the first point when closed is set.
func nearPath(p geom.Point, pts []geom.Point, tol float64, closed bool) bool {
	switch len(pts) {
	case 0:
		return false
	case 1:
		return p.Dist(pts[0]) <= tol
	}
	for i := 1; i < len(pts); i++ {
		if geom.DistToSegment(p, pts[i-1], pts[i]) <= tol {
			return true
		}
	}
	if closed {
		return geom.DistToSegment(p, pts[len(pts)-1], pts[0]) <= tol
	}
	return false
}

// Polygon is a closed shape.
type Polygon struct {
	Shape
}

// NewPolygon returns an unlocked, fully opaque polygon without an id.
func NewPolygon(points []geom.Point, style Style, meta Meta) Polygon {
	return Polygon{Shape: Shape{
		Alpha:  1,
		Points: slices.Clone(points),
		Style:  style,
		Meta:   normalizeMeta(meta),
	}}
}

func (p Polygon) Kind() Kind { return KindPolygon }

func (p Polygon) WithID(id ID) Item {
	p.ItemID = id
	return p
}

func (p Polygon) WithLocked(locked bool) Item {
	p.IsLocked = locked
	return p
}

func (p Polygon) Move(dx, dy float64) Item {
	if p.IsLocked {
		return p
	}
	p.Shape = p.moved(dx, dy)
	return p
}

func (p Polygon) Resize(from, to geom.Rect) Item {
	if p.IsLocked {
		return p
	}
	p.Shape = p.resized(from, to)
	return p
}

func (p Polygon) Contains(pt geom.Point, tol float64) bool {
	if len(p.Points) >= 3 && geom.PointInPolygon(pt, p.Points) {
		return true
	}
	return nearPath(pt, p.Points, tol, true)
}

func (p Polygon) MinVertices() int { return 3 }

func (p Polygon) MoveVertex(i int, pt geom.Point) Item {
	p.Shape, _ = p.vertexMoved(i, pt)
	return p
}

func (p Polygon) InsertVertex(i int, pt geom.Point) Item {
	p.Shape, _ = p.vertexInserted(i, pt)
	return p
}

func (p Polygon) DeleteVertex(i int) Item {
	p.Shape, _ = p.vertexDeleted(i, p.MinVertices())
	return p
}

func (p Polygon) WithField(name string, value any) (Item, error) {
	s, err := p.withField(name, value)
	if err != nil {
		return p, err
	}
	p.Shape = s
	return p, nil
}

// Polyline is an open path.
type Polyline struct {
	Shape
}

// NewPolyline returns an unlocked, fully opaque polyline without an id.
func NewPolyline(points []geom.Point, style Style, meta Meta) Polyline {
	return Polyline{Shape: Shape{
		Alpha:  1,
		Points: slices.Clone(points),
		Style:  style,
		Meta:   normalizeMeta(meta),
	}}
}

func (l Polyline) Kind() Kind { return KindPolyline }

func (l Polyline) WithID(id ID) Item {
	l.ItemID = id
	return l
}

func (l Polyline) WithLocked(locked bool) Item {
	l.IsLocked = locked
	return l
}

func (l Polyline) Move(dx, dy float64) Item {
	if l.IsLocked {
		return l
	}
	l.Shape = l.moved(dx, dy)
	return l
}

func (l Polyline) Resize(from, to geom.Rect) Item {
	if l.IsLocked {
		return l
	}
	l.Shape = l.resized(from, to)
	return l
}

func (l Polyline) Contains(pt geom.Point, tol float64) bool {
	return nearPath(pt, l.Points, tol, false)
}

func (l Polyline) MinVertices() int { return 2 }

func (l Polyline) MoveVertex(i int, pt geom.Point) Item {
	l.Shape, _ = l.vertexMoved(i, pt)
	return l
}

func (l Polyline) InsertVertex(i int, pt geom.Point) Item {
	l.Shape, _ = l.vertexInserted(i, pt)
	return l
}

func (l Polyline) DeleteVertex(i int) Item {
	l.Shape, _ = l.vertexDeleted(i, l.MinVertices())
	return l
}

func (l Polyline) WithField(name string, value any) (Item, error) {
	s, err := l.withField(name, value)
	if err != nil {
		return l, err
	}
	l.Shape = s
	return l, nil
}

// Rectangle returns the four corners of the rectangle spanned by a and b,
// clockwise from the top-left.
func Rectangle(a, b geom.Point) []geom.Point {
	return geom.RectFromPoints(a, b).Corners()
}

var (
	_ VertexEditor = Polygon{}
	_ VertexEditor = Polyline{}
)
