package backend

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/tessera/internal/editor"
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/selection"
	"github.com/dshills/tessera/internal/tool"
)

// Glyphs used on the canvas.
const (
	GlyphHandle = '■'
	GlyphVertex = '◆'
	GlyphSnap   = '✚'
	GlyphGuide  = '·'
)

// painter draws on the canvas rows of a screen.
type painter struct {
	s     tcell.Screen
	w, h  int
	vp    geom.Viewport
	theme Theme
}

// Draw renders view and flushes it to the terminal.
func (t *Terminal) Draw(view editor.View) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	p := &painter{s: t.screen, w: w, h: max(h-1, 0), vp: view.Viewport, theme: t.theme}

	t.screen.Fill(' ', t.theme.style())
	for _, it := range view.Scene.Items() {
		p.item(it, false)
	}
	if view.Preview != nil {
		p.item(view.Preview, true)
	}
	p.selection(view)
	p.guides(view)
	if h > 0 {
		drawStatus(t.screen, w, h-1, t.theme, view)
	}
	t.screen.Show()
}

func (p *painter) screen(pt geom.Point) geom.Point {
	return p.vp.ToScreen(pt)
}

func (p *painter) screenAll(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, pt := range pts {
		out[i] = p.screen(pt)
	}
	return out
}

func (p *painter) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.w && y < p.h
}

// put sets the rune and foreground of a cell, keeping its background.
func (p *painter) put(x, y int, r rune, fg tcell.Color) {
	if !p.inside(x, y) {
		return
	}
	_, _, st, _ := p.s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	p.s.SetContent(x, y, r, nil, st.Foreground(fg))
}

// shade sets the background of a cell, keeping its rune.
func (p *painter) shade(x, y int, bg tcell.Color) {
	if !p.inside(x, y) {
		return
	}
	r, comb, st, _ := p.s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	p.s.SetContent(x, y, r, comb, st.Background(bg))
}

func (p *painter) item(it item.Item, preview bool) {
	opacity := it.Opacity()
	switch v := it.(type) {
	case item.Polygon:
		p.shape(v.Shape, true, preview, it.Locked(), opacity)
	case item.Polyline:
		p.shape(v.Shape, false, preview, it.Locked(), opacity)
	case item.Image:
		p.image(v, preview)
	}
}

func (p *painter) shape(sh item.Shape, closed, preview, locked bool, opacity float64) {
	pts := p.screenAll(sh.Points)
	if len(pts) == 0 {
		return
	}

	if _, ok := item.ParseColor(sh.Style.Fill); closed && ok {
		fill := faded(sh.Style.Fill, p.theme.Background, opacity)
		if preview {
			fill = faded(sh.Style.Fill, p.theme.Background, opacity/2)
		}
		p.fill(pts, fill)
	}

	stroke := faded(sh.Style.Stroke, p.theme.Background, opacity)
	switch {
	case preview:
		stroke = color(p.theme.Preview)
	case locked:
		stroke = color(p.theme.Locked)
	}
	if preview || (sh.Style.Stroke != "" && sh.Style.Stroke != "none") {
		p.path(pts, closed, stroke)
	}

	if label := sh.Label(); label != "" {
		at := p.screen(sh.LabelPos())
		x := int(math.Round(at.X)) - uniseg.StringWidth(label)/2
		p.text(x, int(math.Round(at.Y)), label, stroke)
	}
}

// fill shades every cell whose center lies inside pts.
func (p *painter) fill(pts []geom.Point, bg tcell.Color) {
	r := geom.BBox(pts)
	x0, y0 := max(int(math.Floor(r.Min.X)), 0), max(int(math.Floor(r.Min.Y)), 0)
	x1, y1 := min(int(math.Ceil(r.Max.X)), p.w-1), min(int(math.Ceil(r.Max.Y)), p.h-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if geom.PointInPolygon(geom.Pt(float64(x)+0.5, float64(y)+0.5), pts) {
				p.shade(x, y, bg)
			}
		}
	}
}

// path rasterizes the segments of pts.
func (p *painter) path(pts []geom.Point, closed bool, fg tcell.Color) {
	if len(pts) == 1 {
		p.put(round(pts[0].X), round(pts[0].Y), GlyphGuide, fg)
		return
	}
	for i := 1; i < len(pts); i++ {
		p.segment(pts[i-1], pts[i], fg)
	}
	if closed && len(pts) > 2 {
		p.segment(pts[len(pts)-1], pts[0], fg)
	}
}

// segment draws a line with Bresenham's algorithm, picking a box-drawing
// glyph from the segment slope.
func (p *painter) segment(a, b geom.Point, fg tcell.Color) {
	r := lineGlyph(b.X-a.X, b.Y-a.Y)
	plot(round(a.X), round(a.Y), round(b.X), round(b.Y), func(x, y int) {
		p.put(x, y, r, fg)
	})
}

func lineGlyph(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case ady <= adx/2:
		return '─'
	case adx <= ady/2:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// plot calls fn for every cell on the line from (x0, y0) to (x1, y1).
func plot(x0, y0, x1, y1 int, fn func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		fn(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (p *painter) image(m item.Image, preview bool) {
	fg := faded(p.theme.StatusText, p.theme.Background, m.Opacity())
	if preview {
		fg = color(p.theme.Preview)
	}
	corners := p.screenAll(m.BBox().Corners())
	p.path(corners, true, fg)
	if name := imageName(m.URL); name != "" {
		c := p.screen(m.BBox().Center())
		p.text(round(c.X)-uniseg.StringWidth(name)/2, round(c.Y), name, fg)
	}
}

func imageName(url string) string {
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		url = url[i+1:]
	}
	if strings.HasPrefix(url, "data:") {
		return "[image]"
	}
	return url
}

// text draws s from column x, one grapheme cluster at a time.
func (p *painter) text(x, y int, s string, fg tcell.Color) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		if p.inside(x, y) {
			_, _, st, _ := p.s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
			p.s.SetContent(x, y, runes[0], runes[1:], st.Foreground(fg))
		}
		x += max(g.Width(), 1)
	}
}

// selection draws resize handles around the selection, or vertex handles
// in vertices mode.
func (p *painter) selection(view editor.View) {
	items := view.Selection.Items(view.Scene)
	if len(items) == 0 {
		return
	}
	fg := color(p.theme.Handle)

	if view.Selection.Mode() == selection.ModeVertices {
		for _, it := range items {
			for _, v := range p.screenAll(it.Vertices()) {
				p.put(round(v.X), round(v.Y), GlyphVertex, fg)
			}
		}
		return
	}

	var corners []geom.Point
	for _, it := range items {
		corners = append(corners, it.BBox().Corners()...)
	}
	box := geom.BBox(p.screenAll(corners))
	p.dashed(box, color(p.theme.Selection))
	for _, h := range tool.Handles {
		hp := tool.HandlePoint(box, h)
		p.put(round(hp.X), round(hp.Y), GlyphHandle, fg)
	}
}

// dashed outlines r with every other cell.
func (p *painter) dashed(r geom.Rect, fg tcell.Color) {
	x0, y0, x1, y1 := round(r.Min.X), round(r.Min.Y), round(r.Max.X), round(r.Max.Y)
	for x := x0; x <= x1; x += 2 {
		p.put(x, y0, '╌', fg)
		p.put(x, y1, '╌', fg)
	}
	for y := y0; y <= y1; y += 2 {
		p.put(x0, y, '╎', fg)
		p.put(x1, y, '╎', fg)
	}
}

// guides draws the snap result: a dotted line from every guide point to
// the adjusted point, which gets a marker.
func (p *painter) guides(view editor.View) {
	if !view.Adjust.Snapped() {
		return
	}
	fg := color(p.theme.Guide)
	at := p.screen(view.Adjust.Point)
	ax, ay := round(at.X), round(at.Y)
	for _, g := range view.Adjust.Info {
		gp := p.screen(g)
		n := 0
		plot(round(gp.X), round(gp.Y), ax, ay, func(x, y int) {
			if n%2 == 0 {
				p.put(x, y, GlyphGuide, fg)
			}
			n++
		})
	}
	p.put(ax, ay, GlyphSnap, fg)
}

// drawStatus fills row y with the mode, selection, zoom and history flags
// on the left and the status message on the right.
func drawStatus(s tcell.Screen, w, y int, th Theme, view editor.View) {
	st := tcell.StyleDefault.Background(color(th.Status)).Foreground(color(th.StatusText))
	for x := range w {
		s.SetContent(x, y, ' ', nil, st)
	}

	left := StatusText(view)
	used := putString(s, 0, y, w, left, st)
	if view.Status == "" {
		return
	}
	msg := view.Status
	room := w - used - 2
	if room <= 0 {
		return
	}
	msg = Truncate(msg, room)
	putString(s, w-uniseg.StringWidth(msg), y, w, msg, st.Bold(true))
}

// StatusText formats the left side of the status line.
func StatusText(view editor.View) string {
	parts := []string{" " + view.Mode}
	if n := view.Selection.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	parts = append(parts, fmt.Sprintf("%d items", view.Scene.Len()))
	parts = append(parts, fmt.Sprintf("%.0f%%", view.Viewport.Scale()*100))
	var hist string
	if view.CanUndo {
		hist += "↶"
	}
	if view.CanRedo {
		hist += "↷"
	}
	if hist != "" {
		parts = append(parts, hist)
	}
	if view.Adjust.Snapped() {
		parts = append(parts, "snap:"+strings.Join(view.Adjust.Applied, "+"))
	}
	return strings.Join(parts, " │ ")
}

// Truncate shortens s to at most width terminal columns, marking the cut
// with an ellipsis.
func Truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if used+g.Width() > width-1 {
			break
		}
		b.WriteString(g.Str())
		used += g.Width()
	}
	b.WriteString("…")
	return b.String()
}

// putString draws s from column x up to column limit and returns the
// column after the last cell written.
func putString(s tcell.Screen, x, y, limit int, str string, st tcell.Style) int {
	g := uniseg.NewGraphemes(str)
	for g.Next() {
		cw := max(g.Width(), 1)
		if x+cw > limit {
			break
		}
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], st)
		x += cw
	}
	return x
}

func round(f float64) int {
	return int(math.Round(f))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
