package pointer

import "time"

// Default click detection thresholds.
const (
	DefaultDoubleClickTime     = 400 * time.Millisecond
	DefaultDoubleClickDistance = 4.0
)

// Tracker tracks held buttons and click patterns.
type Tracker struct {
	// Configuration
	maxTime     time.Duration
	maxDistance float64

	// Press state
	held    Button
	downEv  Event
	hasDown bool
	lastPos Event
	havePos bool

	// Last click state
	lastClick Event
	clicks    int
}

// NewTracker creates a tracker. Non-positive thresholds select the
// defaults.
func NewTracker(maxTime time.Duration, maxDistance float64) *Tracker {
	if maxTime <= 0 {
		maxTime = DefaultDoubleClickTime
	}
	if maxDistance <= 0 {
		maxDistance = DefaultDoubleClickDistance
	}
	return &Tracker{maxTime: maxTime, maxDistance: maxDistance}
}

// SetThresholds changes the double-click thresholds.
func (t *Tracker) SetThresholds(maxTime time.Duration, maxDistance float64) {
	if maxTime > 0 {
		t.maxTime = maxTime
	}
	if maxDistance > 0 {
		t.maxDistance = maxDistance
	}
}

// Feed records ev and returns the events to dispatch: ev itself, with the
// held button filled in for moves, followed by any synthesized Click and
// DoubleClick. A zero timestamp is replaced with the current time.
func (t *Tracker) Feed(ev Event) []Event {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	out := []Event{}

	switch ev.Kind {
	case Down:
		t.held = ev.Button
		t.downEv = ev
		t.hasDown = true
		out = append(out, ev)

	case Move:
		if ev.Button == ButtonNone {
			ev.Button = t.held
		}
		out = append(out, ev)

	case Up:
		if ev.Button == ButtonNone {
			ev.Button = t.held
		}
		out = append(out, ev)
		if t.hasDown && ev.Button == t.downEv.Button && ev.Pos.Dist(t.downEv.Pos) <= t.maxDistance {
			click := ev
			click.Kind = Click
			out = append(out, click)
			if t.continuesClick(click) {
				t.clicks++
			} else {
				t.clicks = 1
			}
			t.lastClick = click
			if t.clicks == 2 {
				dbl := click
				dbl.Kind = DoubleClick
				out = append(out, dbl)
				t.clicks = 0
			}
		} else {
			t.clicks = 0
		}
		t.held = ButtonNone
		t.hasDown = false

	default:
		out = append(out, ev)
	}

	t.lastPos = ev
	t.havePos = true
	return out
}

// continuesClick checks if a click is part of the current click sequence.
func (t *Tracker) continuesClick(c Event) bool {
	if t.clicks == 0 || t.lastClick.Button != c.Button {
		return false
	}
	elapsed := c.Time.Sub(t.lastClick.Time)
	if elapsed < 0 || elapsed > t.maxTime {
		return false
	}
	return c.Pos.Dist(t.lastClick.Pos) <= t.maxDistance
}

// Held returns the button currently held.
func (t *Tracker) Held() Button { return t.held }

// Last returns the most recent event fed to the tracker.
func (t *Tracker) Last() (Event, bool) { return t.lastPos, t.havePos }

// Reset clears the tracking state.
func (t *Tracker) Reset() {
	t.held = ButtonNone
	t.hasDown = false
	t.clicks = 0
	t.lastClick = Event{}
}
