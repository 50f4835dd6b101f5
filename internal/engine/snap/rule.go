// Package snap corrects raw pointer positions against scene geometry.
//
// An Engine folds an ordered list of rules over the target point. Each
// rule proposes a candidate; the candidate is accepted only when it
// satisfies the constraints of every rule accepted before it, so the
// first rule to apply wins any conflict.
package snap

import (
	"math"
	"slices"

	"github.com/dshills/tessera/internal/engine/geom"
)

// Rule names as they appear in Result.Applied.
const (
	NameCement   = "cement"
	NameAlign    = "align"
	NameRestrict = "restrict"
)

// Modifiers are the snapping-relevant modifier keys held during an event.
type Modifiers uint8

const (
	// ModDisable turns every rule off.
	ModDisable Modifiers = 1 << iota
	// ModRestrict arms modifier-gated Restrict rules.
	ModRestrict
)

// Input is what a rule sees when proposing a candidate.
type Input struct {
	// Point is the position after the rules applied so far.
	Point geom.Point
	// Tol is the sense range in world units.
	Tol    float64
	Points []geom.Point
	Mods   Modifiers
}

// Candidate is a rule's proposal.
type Candidate struct {
	Point geom.Point
	// Ensure must hold for positions accepted after this candidate.
	Ensure func(geom.Point) bool
	// Info holds guide points for visualization.
	Info []geom.Point
}

// Rule proposes a corrected position.
type Rule interface {
	Name() string
	Candidate(in Input) (Candidate, bool)
}

func always(geom.Point) bool { return true }

// targets returns the scene points a rule considers: points minus exclude,
// followed by include.
func targets(points, include, exclude []geom.Point) []geom.Point {
	if len(exclude) == 0 && len(include) == 0 {
		return points
	}
	out := make([]geom.Point, 0, len(points)+len(include))
	for _, p := range points {
		if !slices.Contains(exclude, p) {
			out = append(out, p)
		}
	}
	return append(out, include...)
}

// Cement snaps onto the nearest scene point within range.
type Cement struct {
	Include []geom.Point
	Exclude []geom.Point
}

func (Cement) Name() string { return NameCement }

func (c Cement) Candidate(in Input) (Candidate, bool) {
	best, bestDist, found := geom.Point{}, math.Inf(1), false
	for _, q := range targets(in.Points, c.Include, c.Exclude) {
		if d := in.Point.Dist(q); d <= in.Tol && d < bestDist {
			best, bestDist, found = q, d, true
		}
	}
	if !found {
		return Candidate{}, false
	}
	return Candidate{Point: best, Ensure: always, Info: []geom.Point{best}}, true
}

// Align lines the point up horizontally and vertically with scene points.
//
// The horizontal guide is the point with the smallest |dy| within range,
// ties broken by smallest |dx|; it supplies y. The vertical guide is the
// point with the smallest |dx| within range, ties broken by smallest |dy|;
// it supplies x. Points within range on both axes are left to Cement and
// ignored, and remaining ties keep the earliest point. A point that already
// sits exactly on a scene point is not aligned at all, so Align never pulls
// it off that vertex.
type Align struct {
	Include []geom.Point
	Exclude []geom.Point
}

func (Align) Name() string { return NameAlign }

func (a Align) Candidate(in Input) (Candidate, bool) {
	p := in.Point
	var (
		h, v     geom.Point
		hFound   bool
		vFound   bool
		hdy, hdx = math.Inf(1), math.Inf(1)
		vdx, vdy = math.Inf(1), math.Inf(1)
	)
	for _, q := range targets(in.Points, a.Include, a.Exclude) {
		if q == p {
			return Candidate{}, false
		}
		dx, dy := math.Abs(q.X-p.X), math.Abs(q.Y-p.Y)
		if dx <= in.Tol && dy <= in.Tol {
			continue
		}
		if dy <= in.Tol && (dy < hdy || (dy == hdy && dx < hdx)) {
			h, hdy, hdx, hFound = q, dy, dx, true
		}
		if dx <= in.Tol && (dx < vdx || (dx == vdx && dy < vdy)) {
			v, vdx, vdy, vFound = q, dx, dy, true
		}
	}
	if !hFound && !vFound {
		return Candidate{}, false
	}

	c := Candidate{Point: p, Ensure: always}
	if vFound {
		c.Point.X = v.X
		c.Info = append(c.Info, v)
	}
	if hFound {
		c.Point.Y = h.Y
		c.Info = append(c.Info, h)
	}
	return c, true
}

// Restrict keeps the point on the horizontal or vertical axis through
// Anchor, substituting the coordinate with the smaller offset. Unless
// Always is set the rule only acts while the restrict modifier is held.
type Restrict struct {
	Anchor geom.Point
	Always bool
}

func (Restrict) Name() string { return NameRestrict }

func (r Restrict) Candidate(in Input) (Candidate, bool) {
	if !r.Always && in.Mods&ModRestrict == 0 {
		return Candidate{}, false
	}
	a, p := r.Anchor, in.Point
	c := Candidate{
		Ensure: func(q geom.Point) bool { return q.X == a.X || q.Y == a.Y },
		Info:   []geom.Point{a},
	}
	if math.Abs(p.X-a.X) >= math.Abs(p.Y-a.Y) {
		c.Point = geom.Point{X: p.X, Y: a.Y}
	} else {
		c.Point = geom.Point{X: a.X, Y: p.Y}
	}
	return c, true
}
