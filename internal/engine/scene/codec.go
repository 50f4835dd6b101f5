package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/item"
)

// Errors reported through DecodeError.
var (
	ErrUnknownType   = errors.New("unknown item type")
	ErrDuplicateID   = errors.New("duplicate item id")
	ErrInvalidID     = errors.New("invalid item id")
	ErrNoPoints      = errors.New("item has no points")
	ErrInvalidZList  = errors.New("zlist is not a permutation of item ids")
	ErrInvalidStyle  = errors.New("invalid style")
	ErrInvalidFormat = errors.New("malformed document")
)

// DecodeError describes why a snapshot could not be decoded. Index is the
// offending entry in the items array, or -1 for document-level problems.
type DecodeError struct {
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("decode scene: %v", e.Err)
	}
	return fmt.Sprintf("decode scene: item %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type document struct {
	Items []itemDTO `json:"items"`
	ZList []item.ID `json:"zlist"`
}

type pointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type itemDTO struct {
	Type        string     `json:"type"`
	ID          item.ID    `json:"id"`
	Locked      bool       `json:"locked"`
	Label       string     `json:"label"`
	Tags        []string   `json:"tags"`
	Points      []pointDTO `json:"points"`
	Stroke      string     `json:"stroke"`
	StrokeWidth float64    `json:"strokeWidth"`
	Opacity     float64    `json:"opacity"`
	Fill        string     `json:"fill"`
	FontSize    float64    `json:"fontSize"`
	LabelOffset pointDTO   `json:"labelOffset"`
}

// Marshal serializes the polygons and polylines of s. Images are not part
// of the snapshot format and are dropped together with their z-list
// entries.
func Marshal(s State) ([]byte, error) {
	doc := document{Items: []itemDTO{}, ZList: []item.ID{}}
	kept := make(map[item.ID]bool)
	for _, it := range s.Items() {
		var (
			sh  item.Shape
			typ item.Kind
		)
		switch v := it.(type) {
		case item.Polygon:
			sh, typ = v.Shape, item.KindPolygon
		case item.Polyline:
			sh, typ = v.Shape, item.KindPolyline
		default:
			continue
		}
		kept[sh.ItemID] = true
		doc.Items = append(doc.Items, encodeShape(typ, sh))
	}
	for _, id := range s.zlist {
		if kept[id] {
			doc.ZList = append(doc.ZList, id)
		}
	}
	return json.Marshal(doc)
}

func encodeShape(typ item.Kind, sh item.Shape) itemDTO {
	pts := make([]pointDTO, len(sh.Points))
	for i, p := range sh.Points {
		pts[i] = pointDTO{X: p.X, Y: p.Y}
	}
	return itemDTO{
		Type:        string(typ),
		ID:          sh.ItemID,
		Locked:      sh.IsLocked,
		Label:       sh.Meta.Label,
		Tags:        sh.Meta.Tags,
		Points:      pts,
		Stroke:      sh.Style.Stroke,
		StrokeWidth: sh.Style.StrokeWidth,
		Opacity:     sh.Alpha,
		Fill:        sh.Style.Fill,
		FontSize:    sh.Meta.FontSize,
		LabelOffset: pointDTO{X: sh.Meta.LabelOffset.X, Y: sh.Meta.LabelOffset.Y},
	}
}

// Unmarshal decodes a snapshot produced by Marshal. A missing zlist stacks
// items in document order.
func Unmarshal(data []byte) (State, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return State{}, &DecodeError{Index: -1, Err: fmt.Errorf("%w: %v", ErrInvalidFormat, err)}
	}

	items := make(map[item.ID]item.Item, len(doc.Items))
	order := make([]item.ID, 0, len(doc.Items))
	for i, dto := range doc.Items {
		it, err := decodeItem(dto)
		if err != nil {
			return State{}, &DecodeError{Index: i, Err: err}
		}
		if _, dup := items[it.ID()]; dup {
			return State{}, &DecodeError{Index: i, Err: fmt.Errorf("%w: %d", ErrDuplicateID, it.ID())}
		}
		items[it.ID()] = it
		order = append(order, it.ID())
	}

	zlist := doc.ZList
	if zlist == nil {
		zlist = order
	}
	if !isPermutation(order, zlist) {
		return State{}, &DecodeError{Index: -1, Err: ErrInvalidZList}
	}
	return State{items: items, zlist: append([]item.ID(nil), zlist...)}, nil
}

func decodeItem(dto itemDTO) (item.Item, error) {
	if dto.ID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidID, dto.ID)
	}
	if len(dto.Points) == 0 {
		return nil, ErrNoPoints
	}
	if !item.ValidColor(dto.Stroke) || !item.ValidColor(dto.Fill) {
		return nil, fmt.Errorf("%w: color", ErrInvalidStyle)
	}
	if dto.Opacity < 0 || dto.Opacity > 1 || dto.StrokeWidth < 0 || dto.FontSize < 0 {
		return nil, fmt.Errorf("%w: out of range value", ErrInvalidStyle)
	}

	pts := make([]geom.Point, len(dto.Points))
	for i, p := range dto.Points {
		pts[i] = geom.Point{X: p.X, Y: p.Y}
	}
	sh := item.Shape{
		ItemID:   dto.ID,
		IsLocked: dto.Locked,
		Alpha:    dto.Opacity,
		Points:   pts,
		Style:    item.Style{Stroke: dto.Stroke, StrokeWidth: dto.StrokeWidth, Fill: dto.Fill},
		Meta: item.Meta{
			Label:       dto.Label,
			Tags:        item.NormalizeTags(dto.Tags),
			LabelOffset: geom.Point{X: dto.LabelOffset.X, Y: dto.LabelOffset.Y},
			FontSize:    dto.FontSize,
		},
	}

	switch item.Kind(dto.Type) {
	case item.KindPolygon:
		return item.Polygon{Shape: sh}, nil
	case item.KindPolyline:
		return item.Polyline{Shape: sh}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, dto.Type)
}

// WithoutImages returns s with every Image removed. It is the state a
// Marshal/Unmarshal round trip reproduces.
func WithoutImages(s State) State {
	var ids []item.ID
	for id, it := range s.items {
		if it.Kind() == item.KindImage {
			ids = append(ids, id)
		}
	}
	return s.Remove(ids...)
}
