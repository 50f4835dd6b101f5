package backend

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tessera/internal/editor"
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/scene"
	"github.com/dshills/tessera/internal/engine/selection"
	"github.com/dshills/tessera/internal/engine/snap"
	"github.com/dshills/tessera/internal/input/key"
	"github.com/dshills/tessera/internal/input/pointer"
)

func newSim(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := New(sim, WithClock(func() time.Time { return time.Unix(100, 0) }))
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func cell(t *testing.T, s tcell.Screen, x, y int) (rune, tcell.Color, tcell.Color) {
	t.Helper()
	r, _, st, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	fg, bg, _ := st.Decompose()
	return r, fg, bg
}

func row(s tcell.Screen, y, w int) string {
	var b strings.Builder
	for x := range w {
		r, _, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		b.WriteRune(r)
	}
	return b.String()
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name  string
		ev    *tcell.EventKey
		chord string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), "r"},
		{"upper", tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone), "R"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{"shift arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), "shift+up"},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "backspace"},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), "ctrl+z"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "alt+x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := convertKey(tt.ev)
			if !ok {
				t.Fatal("key not converted")
			}
			if got := ev.Chord(); got != tt.chord {
				t.Errorf("Chord() = %q, want %q", got, tt.chord)
			}
		})
	}

	if _, ok := convertKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)); ok {
		t.Error("unmapped key should be dropped")
	}
}

func TestConvertMouseSequence(t *testing.T) {
	term := New(tcell.NewSimulationScreen("UTF-8"), WithClock(func() time.Time { return time.Unix(5, 0) }))

	steps := []struct {
		buttons tcell.ButtonMask
		x, y    int
		kind    pointer.Kind
		button  pointer.Button
	}{
		{tcell.ButtonNone, 1, 1, pointer.Move, pointer.ButtonNone},
		{tcell.Button1, 3, 4, pointer.Down, pointer.ButtonLeft},
		{tcell.Button1, 6, 5, pointer.Move, pointer.ButtonLeft},
		{tcell.ButtonNone, 6, 5, pointer.Up, pointer.ButtonLeft},
		{tcell.Button2, 2, 2, pointer.Down, pointer.ButtonRight},
		{tcell.ButtonNone, 2, 2, pointer.Up, pointer.ButtonRight},
	}
	for i, s := range steps {
		in, ok := term.convert(tcell.NewEventMouse(s.x, s.y, s.buttons, tcell.ModShift))
		if !ok || in.Pointer == nil {
			t.Fatalf("step %d: no pointer input", i)
		}
		pe := *in.Pointer
		if pe.Kind != s.kind || pe.Button != s.button {
			t.Errorf("step %d: got %s %s, want %s %s", i, pe.Kind, pe.Button, s.kind, s.button)
		}
		if pe.Pos != geom.Pt(float64(s.x), float64(s.y)) {
			t.Errorf("step %d: pos = %v", i, pe.Pos)
		}
		if !pe.Mods.Has(key.ModShift) || !pe.Time.Equal(time.Unix(5, 0)) {
			t.Errorf("step %d: mods %s time %v", i, pe.Mods, pe.Time)
		}
	}
}

func TestConvertWheel(t *testing.T) {
	term := New(tcell.NewSimulationScreen("UTF-8"))
	tests := []struct {
		buttons tcell.ButtonMask
		delta   float64
	}{
		{tcell.WheelUp, 1},
		{tcell.WheelDown, -1},
	}
	for _, tt := range tests {
		in, ok := term.convert(tcell.NewEventMouse(0, 0, tt.buttons, tcell.ModNone))
		if !ok || in.Pointer.Kind != pointer.Wheel || in.Pointer.Delta != tt.delta {
			t.Errorf("wheel %v: got %+v", tt.buttons, in.Pointer)
		}
	}
}

func TestConvertResize(t *testing.T) {
	term := New(tcell.NewSimulationScreen("UTF-8"))
	in, ok := term.convert(tcell.NewEventResize(80, 25))
	if !ok || in.Screen == nil {
		t.Fatal("resize not converted")
	}
	if in.Screen.Max != geom.Pt(80, 24) {
		t.Errorf("canvas = %v, want status row excluded", *in.Screen)
	}
}

func TestPollInput(t *testing.T) {
	term, sim := newSim(t, 20, 10)
	sim.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)

	got := make(chan editor.Input, 1)
	go func() {
		for {
			in, ok := term.PollInput()
			if !ok {
				close(got)
				return
			}
			if in.Key != nil {
				got <- in
				return
			}
		}
	}()

	select {
	case in, ok := <-got:
		if !ok {
			t.Fatal("screen closed before key arrived")
		}
		if in.Key.Chord() != "p" {
			t.Errorf("chord = %q", in.Key.Chord())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for key")
	}
}

func square(id item.ID, stroke, fill string) item.Item {
	pg := item.NewPolygon(item.Rectangle(geom.Pt(2, 2), geom.Pt(10, 6)), item.Style{Stroke: stroke, StrokeWidth: 1, Fill: fill}, item.Meta{})
	return pg.WithID(id)
}

func TestDrawShape(t *testing.T) {
	term, sim := newSim(t, 30, 10)
	term.Draw(editor.View{
		Scene:    scene.New(square(1, "#ff0000", "#00ff00")),
		Viewport: geom.Identity(),
		Mode:     "idle",
	})

	red := tcell.NewRGBColor(255, 0, 0)
	green := tcell.NewRGBColor(0, 255, 0)

	if r, fg, _ := cell(t, sim, 6, 2); r != '─' || fg != red {
		t.Errorf("top edge = %q %v", r, fg)
	}
	if r, fg, _ := cell(t, sim, 2, 4); r != '│' || fg != red {
		t.Errorf("left edge = %q %v", r, fg)
	}
	if _, _, bg := cell(t, sim, 5, 4); bg != green {
		t.Errorf("interior bg = %v, want fill", bg)
	}
	if _, _, bg := cell(t, sim, 20, 4); bg == green {
		t.Error("fill leaked outside the polygon")
	}
}

func TestDrawSelectionHandles(t *testing.T) {
	term, sim := newSim(t, 30, 10)
	term.Draw(editor.View{
		Scene:     scene.New(square(1, "#ff0000", "")),
		Selection: selection.New(1),
		Viewport:  geom.Identity(),
		Mode:      "idle",
	})
	for _, p := range [][2]int{{2, 2}, {6, 2}, {10, 2}, {10, 4}, {10, 6}, {6, 6}, {2, 6}, {2, 4}} {
		if r, _, _ := cell(t, sim, p[0], p[1]); r != GlyphHandle {
			t.Errorf("handle at %v = %q", p, r)
		}
	}

	term.Draw(editor.View{
		Scene:     scene.New(square(1, "#ff0000", "")),
		Selection: selection.New(1).WithMode(selection.ModeVertices),
		Viewport:  geom.Identity(),
	})
	if r, _, _ := cell(t, sim, 10, 6); r != GlyphVertex {
		t.Errorf("vertex handle = %q", r)
	}
	if r, _, _ := cell(t, sim, 6, 2); r == GlyphHandle {
		t.Error("vertices mode should not draw resize handles")
	}
}

func TestDrawViewportAndPreview(t *testing.T) {
	term, sim := newSim(t, 40, 20)
	line := item.NewPolyline([]geom.Point{geom.Pt(0, 0), geom.Pt(5, 0)}, item.Style{Stroke: "#000"}, item.Meta{})
	term.Draw(editor.View{
		Scene:    scene.New(),
		Preview:  line,
		Viewport: geom.Viewport{X: 4, Y: 3, K: 2},
	})
	for x := 4; x <= 14; x++ {
		if r, fg, _ := cell(t, sim, x, 3); r != '─' || fg != color(DefaultTheme().Preview) {
			t.Fatalf("preview at x=%d = %q %v", x, r, fg)
		}
	}
}

func TestDrawGuides(t *testing.T) {
	term, sim := newSim(t, 40, 10)
	term.Draw(editor.View{
		Scene:    scene.New(),
		Viewport: geom.Identity(),
		Adjust: snap.Result{
			Point:   geom.Pt(8, 5),
			Applied: []string{"align"},
			Info:    []geom.Point{geom.Pt(2, 5)},
		},
	})
	if r, _, _ := cell(t, sim, 8, 5); r != GlyphSnap {
		t.Errorf("snap marker = %q", r)
	}
	if r, _, _ := cell(t, sim, 2, 5); r != GlyphGuide {
		t.Errorf("guide start = %q", r)
	}
	if !strings.Contains(row(sim, 9, 40), "snap:align") {
		t.Errorf("status = %q", row(sim, 9, 40))
	}
}

func TestDrawStatusLine(t *testing.T) {
	term, sim := newSim(t, 60, 8)
	term.Draw(editor.View{
		Scene:     scene.New(square(1, "#fff", "")),
		Selection: selection.New(1),
		Viewport:  geom.Identity(),
		Mode:      "rect.ready",
		CanUndo:   true,
		Status:    "saved",
	})
	got := row(sim, 7, 60)
	for _, want := range []string{"rect.ready", "1 selected", "1 items", "100%", "↶", "saved"} {
		if !strings.Contains(got, want) {
			t.Errorf("status %q missing %q", got, want)
		}
	}
	if !strings.HasSuffix(strings.TrimRight(got, " "), "saved") {
		t.Errorf("message should be right aligned: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 5, "hell…"},
		{"日本語", 4, "日…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPlot(t *testing.T) {
	var cells [][2]int
	plot(0, 0, 3, 3, func(x, y int) { cells = append(cells, [2]int{x, y}) })
	if len(cells) != 4 || cells[3] != [2]int{3, 3} {
		t.Errorf("diagonal = %v", cells)
	}

	cells = nil
	plot(5, 1, 0, 1, func(x, y int) { cells = append(cells, [2]int{x, y}) })
	if len(cells) != 6 || cells[0] != [2]int{5, 1} {
		t.Errorf("reversed = %v", cells)
	}
}

func TestFaded(t *testing.T) {
	if c := faded("#ffffff", "#000000", 1); c != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("opaque = %v", c)
	}
	half := faded("#ffffff", "#000000", 0.5)
	r, g, b := half.RGB()
	if r <= 0 || r >= 255 || g <= 0 || b >= 255 {
		t.Errorf("half = %d,%d,%d", r, g, b)
	}
	if c := faded("none", "#000", 1); c != tcell.ColorDefault {
		t.Errorf("none = %v", c)
	}
}
