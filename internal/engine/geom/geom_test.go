package geom

import (
	"math"
	"testing"
)

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Pt(10, 5), Pt(0, 20))
	if r.Min != Pt(0, 5) || r.Max != Pt(10, 20) {
		t.Errorf("got %+v", r)
	}
	if r.Width() != 10 || r.Height() != 15 {
		t.Errorf("size = %vx%v", r.Width(), r.Height())
	}
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"area", RectFromPoints(Pt(0, 0), Pt(1, 1)), false},
		{"flat", RectFromPoints(Pt(0, 0), Pt(10, 0)), true},
		{"point", RectFromPoints(Pt(3, 3), Pt(3, 3)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapPoint(t *testing.T) {
	from := RectFromPoints(Pt(0, 0), Pt(10, 10))
	to := RectFromPoints(Pt(10, 10), Pt(30, 50))
	if got := MapPoint(Pt(5, 5), from, to); got != Pt(20, 30) {
		t.Errorf("MapPoint = %v", got)
	}

	flat := RectFromPoints(Pt(0, 0), Pt(10, 0))
	if got := MapPoint(Pt(0, 0), flat, RectFromPoints(Pt(0, 5), Pt(20, 5))); got != Pt(0, 5) {
		t.Errorf("flat axis should translate, got %v", got)
	}
}

func TestPointInPolygon(t *testing.T) {
	sq := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	if !PointInPolygon(Pt(5, 5), sq) {
		t.Error("center should be inside")
	}
	if PointInPolygon(Pt(15, 5), sq) {
		t.Error("outside point reported inside")
	}
}

func TestDistToSegment(t *testing.T) {
	if d := DistToSegment(Pt(5, 3), Pt(0, 0), Pt(10, 0)); d != 3 {
		t.Errorf("d = %v, want 3", d)
	}
	if d := DistToSegment(Pt(13, 4), Pt(0, 0), Pt(10, 0)); d != 5 {
		t.Errorf("d = %v, want 5", d)
	}
	if d := DistToSegment(Pt(3, 4), Pt(0, 0), Pt(0, 0)); d != 5 {
		t.Errorf("degenerate d = %v, want 5", d)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{X: 15, Y: -4, K: 2.5}
	p := Pt(7, 9)
	back := v.ToWorld(v.ToScreen(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	v := Identity().Pan(10, 10)
	anchor := Pt(50, 40)
	before := v.ToWorld(anchor)

	z := v.ZoomAt(anchor, 2, 0.1, 8)
	if z.K != 2 {
		t.Fatalf("K = %v, want 2", z.K)
	}
	after := z.ToWorld(anchor)
	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
		t.Errorf("anchor moved: %v -> %v", before, after)
	}

	if got := v.ZoomAt(anchor, 100, 0.1, 8).K; got != 8 {
		t.Errorf("clamped K = %v, want 8", got)
	}
}

func TestZeroViewportIsIdentity(t *testing.T) {
	var v Viewport
	if got := v.ToWorld(Pt(3, 4)); got != Pt(3, 4) {
		t.Errorf("got %v", got)
	}
}
