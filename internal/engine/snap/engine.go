package snap

import (
	"slices"

	"github.com/dshills/tessera/internal/engine/geom"
)

// DefaultSenseRange is the snapping distance in screen pixels.
const DefaultSenseRange = 8

// Result is the outcome of an adjustment.
type Result struct {
	Point geom.Point
	// Applied lists the accepted rule names in order.
	Applied []string
	// Info holds guide points of the accepted rules.
	Info   []geom.Point
	ensure func(geom.Point) bool
}

// Identity returns the unadjusted result for p.
func Identity(p geom.Point) Result {
	return Result{Point: p, ensure: always}
}

// Ensure reports whether p satisfies every accepted rule's constraint.
func (r Result) Ensure(p geom.Point) bool {
	if r.ensure == nil {
		return true
	}
	return r.ensure(p)
}

// Snapped reports whether any rule applied.
func (r Result) Snapped() bool { return len(r.Applied) > 0 }

// Engine adjusts points. The zero value uses DefaultSenseRange.
type Engine struct {
	// SenseRange is the snapping distance in screen pixels; it is divided
	// by the zoom scale to get world units.
	SenseRange float64
}

// NewEngine returns an engine with the given sense range.
func NewEngine(senseRange float64) *Engine {
	return &Engine{SenseRange: senseRange}
}

func (e *Engine) senseRange() float64 {
	if e == nil || e.SenseRange <= 0 {
		return DefaultSenseRange
	}
	return e.SenseRange
}

// Adjust folds rules over target. k is the viewport scale and points the
// scene vertices. Holding ModDisable yields the identity result.
func (e *Engine) Adjust(target geom.Point, k float64, rules []Rule, points []geom.Point, mods Modifiers) Result {
	res := Identity(target)
	if mods&ModDisable != 0 || len(rules) == 0 {
		return res
	}
	if k <= 0 {
		k = 1
	}
	tol := e.senseRange() / k

	for _, r := range rules {
		c, ok := r.Candidate(Input{Point: res.Point, Tol: tol, Points: points, Mods: mods})
		if !ok || !res.Ensure(c.Point) {
			continue
		}
		res.Point = c.Point
		res.Applied = append(res.Applied, r.Name())
		res.Info = append(res.Info, c.Info...)
		res.ensure = and(res.ensure, c.Ensure)
	}
	return res
}

func and(a, b func(geom.Point) bool) func(geom.Point) bool {
	if b == nil {
		return a
	}
	return func(p geom.Point) bool { return a(p) && b(p) }
}

// MemoKey identifies the inputs of one adjustment. Revisions change when
// the rule set or the scene geometry changes.
type MemoKey struct {
	Point         geom.Point
	K             float64
	RulesRevision uint64
	SceneRevision uint64
	Mods          Modifiers
}

// Memo caches the most recent adjustment.
type Memo struct {
	engine *Engine
	key    MemoKey
	result Result
	valid  bool
}

// NewMemo wraps e.
func NewMemo(e *Engine) *Memo {
	return &Memo{engine: e}
}

// Adjust returns the cached result when key matches the previous call and
// computes a fresh one otherwise.
func (m *Memo) Adjust(key MemoKey, rules []Rule, points []geom.Point) Result {
	if m.valid && m.key == key {
		return m.result
	}
	m.key = key
	m.result = m.engine.Adjust(key.Point, key.K, rules, points, key.Mods)
	m.result.Applied = slices.Clip(m.result.Applied)
	m.valid = true
	return m.result
}

// Invalidate drops the cached result.
func (m *Memo) Invalidate() { m.valid = false }

// SetEngine replaces the engine and invalidates the cache.
func (m *Memo) SetEngine(e *Engine) {
	m.engine = e
	m.valid = false
}
