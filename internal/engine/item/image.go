package item

import (
	"math"

	"github.com/dshills/tessera/internal/engine/geom"
)

// Image is a positioned raster reference. It is placed by its top-left
// corner and has no editable vertices.
type Image struct {
	ItemID        ID
	IsLocked      bool
	Alpha         float64
	Pos           geom.Point
	Width         float64
	Height        float64
	NaturalWidth  float64
	NaturalHeight float64
	URL           string
}

// NewImage returns an image at pos rendered at its natural size.
func NewImage(url string, pos geom.Point, naturalW, naturalH float64) Image {
	return Image{
		Alpha:         1,
		Pos:           pos,
		Width:         naturalW,
		Height:        naturalH,
		NaturalWidth:  naturalW,
		NaturalHeight: naturalH,
		URL:           url,
	}
}

func (m Image) ID() ID                   { return m.ItemID }
func (m Image) Kind() Kind               { return KindImage }
func (m Image) Locked() bool             { return m.IsLocked }
func (m Image) Opacity() float64         { return m.Alpha }
func (m Image) SupportsVertexEdit() bool { return false }

func (m Image) WithID(id ID) Item {
	m.ItemID = id
	return m
}

func (m Image) WithLocked(locked bool) Item {
	m.IsLocked = locked
	return m
}

func (m Image) BBox() geom.Rect {
	return geom.RectFromPoints(m.Pos, geom.Point{X: m.Pos.X + m.Width, Y: m.Pos.Y + m.Height})
}

func (m Image) Vertices() []geom.Point {
	return m.BBox().Corners()
}

func (m Image) Move(dx, dy float64) Item {
	if m.IsLocked {
		return m
	}
	m.Pos = m.Pos.Add(geom.Point{X: dx, Y: dy})
	return m
}

func (m Image) Resize(from, to geom.Rect) Item {
	if m.IsLocked {
		return m
	}
	a := geom.MapPoint(m.Pos, from, to)
	b := geom.MapPoint(geom.Point{X: m.Pos.X + m.Width, Y: m.Pos.Y + m.Height}, from, to)
	m.Pos = geom.Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
	m.Width = math.Abs(b.X - a.X)
	m.Height = math.Abs(b.Y - a.Y)
	return m
}

func (m Image) Contains(p geom.Point, tol float64) bool {
	return m.BBox().Expand(tol).Contains(p)
}

// WithField supports "opacity" and "url".
func (m Image) WithField(name string, value any) (Item, error) {
	switch name {
	case FieldOpacity:
		v, err := opacityValue(value)
		if err != nil {
			return m, fieldError(name, err)
		}
		m.Alpha = v
	case FieldURL:
		s, ok := value.(string)
		if !ok {
			return m, fieldError(name, ErrInvalidValue)
		}
		m.URL = s
	default:
		return m, fieldError(name, ErrUnknownField)
	}
	return m, nil
}
