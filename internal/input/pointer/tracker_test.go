package pointer

import (
	"slices"
	"testing"
	"time"

	"github.com/dshills/tessera/internal/engine/geom"
)

func kinds(evs []Event) []Kind {
	out := make([]Kind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}

func TestTrackerSynthesizesClicks(t *testing.T) {
	tr := NewTracker(300*time.Millisecond, 3)
	t0 := time.Unix(100, 0)
	at := func(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }
	p := geom.Pt(10, 10)

	tests := []struct {
		name string
		ev   Event
		want []Kind
	}{
		{"down", Event{Kind: Down, Pos: p, Button: ButtonLeft, Time: at(0)}, []Kind{Down}},
		{"up", Event{Kind: Up, Pos: p, Button: ButtonLeft, Time: at(50)}, []Kind{Up, Click}},
		{"second down", Event{Kind: Down, Pos: p, Button: ButtonLeft, Time: at(100)}, []Kind{Down}},
		{"second up", Event{Kind: Up, Pos: geom.Pt(11, 10), Button: ButtonLeft, Time: at(150)}, []Kind{Up, Click, DoubleClick}},
		{"third down", Event{Kind: Down, Pos: p, Button: ButtonLeft, Time: at(200)}, []Kind{Down}},
		{"third up is single", Event{Kind: Up, Pos: p, Button: ButtonLeft, Time: at(250)}, []Kind{Up, Click}},
	}
	for _, tt := range tests {
		got := kinds(tr.Feed(tt.ev))
		if !slices.Equal(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTrackerDragIsNotClick(t *testing.T) {
	tr := NewTracker(0, 0)
	tr.Feed(Event{Kind: Down, Pos: geom.Pt(0, 0), Button: ButtonLeft})
	moves := tr.Feed(Event{Kind: Move, Pos: geom.Pt(50, 0)})
	if !moves[0].Dragging() || moves[0].Button != ButtonLeft {
		t.Errorf("move should carry the held button: %+v", moves[0])
	}
	got := kinds(tr.Feed(Event{Kind: Up, Pos: geom.Pt(50, 0)}))
	if !slices.Equal(got, []Kind{Up}) {
		t.Errorf("got %v, want [up]", got)
	}
	if tr.Held() != ButtonNone {
		t.Error("button still held after up")
	}
}

func TestTrackerSlowClicksAreSingle(t *testing.T) {
	tr := NewTracker(100*time.Millisecond, 4)
	t0 := time.Unix(0, 0)
	p := geom.Pt(5, 5)
	tr.Feed(Event{Kind: Down, Pos: p, Button: ButtonLeft, Time: t0})
	tr.Feed(Event{Kind: Up, Pos: p, Button: ButtonLeft, Time: t0})
	tr.Feed(Event{Kind: Down, Pos: p, Button: ButtonLeft, Time: t0.Add(time.Second)})
	got := kinds(tr.Feed(Event{Kind: Up, Pos: p, Button: ButtonLeft, Time: t0.Add(time.Second)}))
	if !slices.Equal(got, []Kind{Up, Click}) {
		t.Errorf("got %v", got)
	}
}
