package snap

import (
	"slices"
	"testing"

	"github.com/dshills/tessera/internal/engine/geom"
)

func TestAlignLiteral(t *testing.T) {
	e := NewEngine(5)
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0)}

	res := e.Adjust(geom.Pt(102, 3), 1, []Rule{Align{}}, points, 0)
	if res.Point != geom.Pt(102, 0) {
		t.Errorf("point = %v, want (102,0)", res.Point)
	}
	if !slices.Equal(res.Applied, []string{NameAlign}) {
		t.Errorf("applied = %v", res.Applied)
	}
}

func TestCementLiteral(t *testing.T) {
	e := NewEngine(10)
	res := e.Adjust(geom.Pt(54, 53), 1, []Rule{Cement{}}, []geom.Point{geom.Pt(50, 50)}, 0)
	if res.Point != geom.Pt(50, 50) {
		t.Errorf("point = %v, want (50,50)", res.Point)
	}
	if !slices.Equal(res.Applied, []string{NameCement}) {
		t.Errorf("applied = %v", res.Applied)
	}
}

func TestSenseRangeScalesWithZoom(t *testing.T) {
	e := NewEngine(10)
	pts := []geom.Point{geom.Pt(50, 50)}
	// At k=4 the range is 2.5 world units.
	if res := e.Adjust(geom.Pt(54, 53), 4, []Rule{Cement{}}, pts, 0); res.Snapped() {
		t.Errorf("should not snap at high zoom: %v", res.Point)
	}
	if res := e.Adjust(geom.Pt(51, 51), 4, []Rule{Cement{}}, pts, 0); res.Point != geom.Pt(50, 50) {
		t.Errorf("point = %v", res.Point)
	}
}

func TestAlignTieBreaks(t *testing.T) {
	e := NewEngine(5)
	tests := []struct {
		name   string
		points []geom.Point
		target geom.Point
		want   geom.Point
	}{
		{"horizontal prefers smaller dy", []geom.Point{geom.Pt(0, 4), geom.Pt(50, 1)}, geom.Pt(20, 0), geom.Pt(20, 1)},
		{"horizontal tie prefers smaller dx", []geom.Point{geom.Pt(0, 2), geom.Pt(50, -2)}, geom.Pt(30, 0), geom.Pt(30, -2)},
		{"vertical prefers smaller dx", []geom.Point{geom.Pt(3, 80), geom.Pt(1, 40)}, geom.Pt(0, 0), geom.Pt(1, 0)},
		{"both guides", []geom.Point{geom.Pt(40, 2), geom.Pt(1, 60)}, geom.Pt(0, 0), geom.Pt(1, 2)},
		{"equal distances keep first", []geom.Point{geom.Pt(-20, 3), geom.Pt(20, 3)}, geom.Pt(0, 0), geom.Pt(0, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Adjust(tt.target, 1, []Rule{Align{}}, tt.points, 0)
			if res.Point != tt.want {
				t.Errorf("point = %v, want %v", res.Point, tt.want)
			}
		})
	}
}

func TestAlignOnExistingPointIsNoop(t *testing.T) {
	e := NewEngine(5)
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 2)}
	tests := []struct {
		name  string
		rules []Rule
		want  []string
	}{
		{"after cement", []Rule{Cement{}, Align{}}, []string{NameCement}},
		{"align alone", []Rule{Align{}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Adjust(geom.Pt(0, 0), 1, tt.rules, pts, 0)
			if res.Point != geom.Pt(0, 0) || !slices.Equal(res.Applied, tt.want) {
				t.Errorf("got %v %v, want (0,0) %v", res.Point, res.Applied, tt.want)
			}
		})
	}
}

func TestRestrict(t *testing.T) {
	e := NewEngine(5)
	r := Restrict{Anchor: geom.Pt(10, 10)}

	if res := e.Adjust(geom.Pt(40, 14), 1, []Rule{r}, nil, 0); res.Snapped() {
		t.Error("restrict should be gated by its modifier")
	}
	res := e.Adjust(geom.Pt(40, 14), 1, []Rule{r}, nil, ModRestrict)
	if res.Point != geom.Pt(40, 10) {
		t.Errorf("point = %v, want (40,10)", res.Point)
	}
	res = e.Adjust(geom.Pt(12, 50), 1, []Rule{Restrict{Anchor: geom.Pt(10, 10), Always: true}}, nil, 0)
	if res.Point != geom.Pt(10, 50) {
		t.Errorf("point = %v, want (10,50)", res.Point)
	}
}

func TestFirstAppliedWins(t *testing.T) {
	e := NewEngine(5)
	// Restrict pins y to 0; cementing onto (42,3) would break that.
	rules := []Rule{Restrict{Anchor: geom.Pt(0, 0), Always: true}, Cement{}}
	res := e.Adjust(geom.Pt(40, 2), 1, rules, []geom.Point{geom.Pt(42, 3)}, 0)
	if res.Point != geom.Pt(40, 0) {
		t.Errorf("point = %v, want (40,0)", res.Point)
	}
	if !slices.Equal(res.Applied, []string{NameRestrict}) {
		t.Errorf("applied = %v", res.Applied)
	}
	if !res.Ensure(geom.Pt(99, 0)) || res.Ensure(geom.Pt(99, 1)) {
		t.Error("ensure predicate not carried")
	}
}

func TestDisableModifier(t *testing.T) {
	e := NewEngine(10)
	res := e.Adjust(geom.Pt(54, 53), 1, []Rule{Cement{}}, []geom.Point{geom.Pt(50, 50)}, ModDisable)
	if res.Point != geom.Pt(54, 53) || res.Snapped() {
		t.Errorf("disable modifier ignored: %v", res)
	}
}

func TestIncludeExclude(t *testing.T) {
	e := NewEngine(10)
	pts := []geom.Point{geom.Pt(50, 50)}

	res := e.Adjust(geom.Pt(54, 53), 1, []Rule{Cement{Exclude: pts}}, pts, 0)
	if res.Snapped() {
		t.Error("excluded point used")
	}
	res = e.Adjust(geom.Pt(4, 3), 1, []Rule{Cement{Include: []geom.Point{geom.Pt(0, 0)}}}, pts, 0)
	if res.Point != geom.Pt(0, 0) {
		t.Errorf("included point not used: %v", res.Point)
	}
}

func TestMemo(t *testing.T) {
	m := NewMemo(NewEngine(10))
	pts := []geom.Point{geom.Pt(50, 50)}
	key := MemoKey{Point: geom.Pt(54, 53), K: 1, RulesRevision: 1, SceneRevision: 1}

	first := m.Adjust(key, []Rule{Cement{}}, pts)
	// Same key: the cached result wins even with different inputs.
	if got := m.Adjust(key, nil, nil); got.Point != first.Point {
		t.Errorf("cache miss: %v", got.Point)
	}
	key.RulesRevision = 2
	if got := m.Adjust(key, nil, nil); got.Point != key.Point {
		t.Errorf("stale result after revision change: %v", got.Point)
	}
}
