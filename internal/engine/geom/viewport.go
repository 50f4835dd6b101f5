package geom

// Viewport maps world coordinates to screen coordinates:
// screen = world*K + (X, Y). K is the zoom scale.
type Viewport struct {
	X float64
	Y float64
	K float64
}

// Identity returns the viewport with no pan and unit zoom.
func Identity() Viewport {
	return Viewport{K: 1}
}

// scale guards against an unset zoom.
func (v Viewport) scale() float64 {
	if v.K <= 0 {
		return 1
	}
	return v.K
}

// Scale returns the effective zoom factor.
func (v Viewport) Scale() float64 {
	return v.scale()
}

// ToWorld converts a screen position to world space.
func (v Viewport) ToWorld(p Point) Point {
	k := v.scale()
	return Point{X: (p.X - v.X) / k, Y: (p.Y - v.Y) / k}
}

// ToScreen converts a world position to screen space.
func (v Viewport) ToScreen(p Point) Point {
	k := v.scale()
	return Point{X: p.X*k + v.X, Y: p.Y*k + v.Y}
}

// Pan shifts the viewport by a screen-space delta.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.X += dx
	v.Y += dy
	return v
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// the screen position anchor fixed. The resulting zoom is clamped to
// [minK, maxK] when those bounds are positive.
func (v Viewport) ZoomAt(anchor Point, factor, minK, maxK float64) Viewport {
	k := v.scale()
	nk := k * factor
	if minK > 0 && nk < minK {
		nk = minK
	}
	if maxK > 0 && nk > maxK {
		nk = maxK
	}
	world := v.ToWorld(anchor)
	return Viewport{
		X: anchor.X - world.X*nk,
		Y: anchor.Y - world.Y*nk,
		K: nk,
	}
}
