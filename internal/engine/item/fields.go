package item

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/tessera/internal/engine/geom"
)

// Field names accepted by WithField.
const (
	FieldLabel       = "label"
	FieldTags        = "tags"
	FieldStroke      = "stroke"
	FieldStrokeWidth = "strokeWidth"
	FieldFill        = "fill"
	FieldOpacity     = "opacity"
	FieldFontSize    = "fontSize"
	FieldLabelOffset = "labelOffset"
	FieldURL         = "url"
)

// ValidColor reports whether s is an accepted color: empty, "none", or a
// hex triplet in short or long form.
func ValidColor(s string) bool {
	if s == "" || s == "none" {
		return true
	}
	_, err := colorful.Hex(expandHex(s))
	return err == nil
}

// ParseColor returns the color for s. ok is false for "none" and invalid
// input.
func ParseColor(s string) (c colorful.Color, ok bool) {
	if s == "" || s == "none" {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(expandHex(s))
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// expandHex turns "#abc" into "#aabbcc".
func expandHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

func (s Shape) withField(name string, value any) (Shape, error) {
	switch name {
	case FieldLabel:
		v, ok := value.(string)
		if !ok {
			return s, fieldError(name, ErrInvalidValue)
		}
		s.Meta.Label = v
	case FieldTags:
		tags, err := tagsValue(value)
		if err != nil {
			return s, fieldError(name, err)
		}
		s.Meta.Tags = tags
	case FieldStroke, FieldFill:
		v, ok := value.(string)
		if !ok || !ValidColor(v) {
			return s, fieldError(name, ErrInvalidValue)
		}
		if name == FieldStroke {
			s.Style.Stroke = v
		} else {
			s.Style.Fill = v
		}
	case FieldStrokeWidth, FieldFontSize:
		v, ok := Number(value)
		if !ok || v < 0 {
			return s, fieldError(name, ErrInvalidValue)
		}
		if name == FieldStrokeWidth {
			s.Style.StrokeWidth = v
		} else {
			s.Meta.FontSize = v
		}
	case FieldOpacity:
		v, err := opacityValue(value)
		if err != nil {
			return s, fieldError(name, err)
		}
		s.Alpha = v
	case FieldLabelOffset:
		p, ok := pointValue(value)
		if !ok {
			return s, fieldError(name, ErrInvalidValue)
		}
		s.Meta.LabelOffset = p
	default:
		return s, fieldError(name, ErrUnknownField)
	}
	return s, nil
}

// Field returns the current value of a named attribute, in the same shape
// WithField accepts it.
func Field(it Item, name string) (any, error) {
	if name == FieldOpacity {
		return it.Opacity(), nil
	}
	var s Shape
	switch v := it.(type) {
	case Polygon:
		s = v.Shape
	case Polyline:
		s = v.Shape
	case Image:
		if name == FieldURL {
			return v.URL, nil
		}
		return nil, fieldError(name, ErrUnknownField)
	default:
		return nil, fieldError(name, ErrUnknownField)
	}
	switch name {
	case FieldLabel:
		return s.Meta.Label, nil
	case FieldTags:
		return slices.Clone(s.Meta.Tags), nil
	case FieldStroke:
		return s.Style.Stroke, nil
	case FieldFill:
		return s.Style.Fill, nil
	case FieldStrokeWidth:
		return s.Style.StrokeWidth, nil
	case FieldFontSize:
		return s.Meta.FontSize, nil
	case FieldLabelOffset:
		return s.Meta.LabelOffset, nil
	}
	return nil, fieldError(name, ErrUnknownField)
}

// Number converts the numeric types produced by decoders and literals to
// float64.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

func opacityValue(v any) (float64, error) {
	f, ok := Number(v)
	if !ok || f < 0 || f > 1 {
		return 0, fmt.Errorf("%w: opacity must be within [0, 1]", ErrInvalidValue)
	}
	return f, nil
}

func pointValue(v any) (geom.Point, bool) {
	switch p := v.(type) {
	case geom.Point:
		return p, true
	case map[string]any:
		x, okx := Number(p["x"])
		y, oky := Number(p["y"])
		return geom.Point{X: x, Y: y}, okx && oky
	default:
		return geom.Point{}, false
	}
}

func tagsValue(v any) ([]string, error) {
	var raw []string
	switch t := v.(type) {
	case []string:
		raw = t
	case []any:
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, ErrInvalidValue
			}
			raw = append(raw, s)
		}
	case string:
		raw = strings.Split(t, ",")
	default:
		return nil, ErrInvalidValue
	}
	return NormalizeTags(raw), nil
}

// NormalizeTags trims, de-duplicates and sorts tags. An empty set is nil.
func NormalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func normalizeMeta(m Meta) Meta {
	m.Tags = NormalizeTags(m.Tags)
	return m
}
