// Package backend provides the tcell terminal front-end for the editor.
//
// The terminal grid is the editor's screen space: one cell is one unit on
// both axes. The bottom row is reserved for the status line.
package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tessera/internal/editor"
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/input/key"
	"github.com/dshills/tessera/internal/input/pointer"
)

// Terminal draws editor views on a tcell screen and turns tcell events
// into editor inputs.
type Terminal struct {
	screen tcell.Screen
	theme  Theme
	now    func() time.Time

	mu   sync.Mutex
	held pointer.Button
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithTheme sets the colors used for chrome.
func WithTheme(th Theme) Option {
	return func(t *Terminal) {
		t.theme = th
	}
}

// WithClock sets the time source stamped on pointer events.
func WithClock(now func() time.Time) Option {
	return func(t *Terminal) {
		t.now = now
	}
}

// NewTerminal creates a backend on the controlling terminal.
func NewTerminal(opts ...Option) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen, opts...), nil
}

// New creates a backend on screen.
func New(screen tcell.Screen, opts ...Option) *Terminal {
	t := &Terminal{
		screen: screen,
		theme:  DefaultTheme(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init initializes the screen and enables mouse reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents | tcell.MouseMotionEvents)
	t.screen.HideCursor()
	t.screen.Clear()
	return nil
}

// Shutdown restores the terminal. PollInput returns false afterwards.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the terminal dimensions.
func (t *Terminal) Size() (width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Canvas returns the drawing area, which excludes the status row.
func (t *Terminal) Canvas() geom.Rect {
	w, h := t.Size()
	return canvas(w, h)
}

func canvas(w, h int) geom.Rect {
	return geom.Rect{Max: geom.Pt(float64(w), float64(max(h-1, 0)))}
}

// PollInput blocks for the next terminal event that maps to an editor
// input. It returns false once the screen has been shut down.
func (t *Terminal) PollInput() (editor.Input, bool) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return editor.Input{}, false
		}
		if in, ok := t.convert(ev); ok {
			return in, true
		}
	}
}

// Pump forwards inputs to out until the screen shuts down or done is
// closed.
func (t *Terminal) Pump(out chan<- editor.Input, done <-chan struct{}) {
	for {
		in, ok := t.PollInput()
		if !ok {
			return
		}
		select {
		case out <- in:
		case <-done:
			return
		}
	}
}

func (t *Terminal) convert(ev tcell.Event) (editor.Input, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := convertKey(e)
		if !ok {
			return editor.Input{}, false
		}
		return editor.KeyInput(k), true

	case *tcell.EventMouse:
		pe, ok := t.convertMouse(e)
		if !ok {
			return editor.Input{}, false
		}
		return editor.PointerInput(pe), true

	case *tcell.EventResize:
		w, h := e.Size()
		r := canvas(w, h)
		return editor.Input{Screen: &r}, true
	}
	return editor.Input{}, false
}

// specialKeys maps tcell keys that carry no rune. It is consulted before
// the control-letter range, since Tab, Enter and Backspace share codes
// with Ctrl+I, Ctrl+M and Ctrl+H.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
}

func convertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())
	k := e.Key()
	if k == tcell.KeyRune {
		return key.NewRuneEvent(e.Rune(), mods), true
	}
	if sk, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(sk, mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := rune('a' + (k - tcell.KeyCtrlA))
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

// convertMouse derives press, release and motion from tcell's button
// state, which only reports what is currently held.
func (t *Terminal) convertMouse(e *tcell.EventMouse) (pointer.Event, bool) {
	x, y := e.Position()
	pe := pointer.Event{
		Pos:  geom.Pt(float64(x), float64(y)),
		Mods: convertMod(e.Modifiers()),
		Time: t.now(),
	}

	buttons := e.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		pe.Kind, pe.Delta = pointer.Wheel, 1
		return pe, true
	case buttons&tcell.WheelDown != 0:
		pe.Kind, pe.Delta = pointer.Wheel, -1
		return pe, true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	pressed := convertButton(buttons)
	switch {
	case t.held == pointer.ButtonNone && pressed != pointer.ButtonNone:
		pe.Kind, pe.Button = pointer.Down, pressed
		t.held = pressed
	case t.held != pointer.ButtonNone && pressed == pointer.ButtonNone:
		pe.Kind, pe.Button = pointer.Up, t.held
		t.held = pointer.ButtonNone
	default:
		pe.Kind, pe.Button = pointer.Move, t.held
	}
	return pe, true
}

func convertButton(b tcell.ButtonMask) pointer.Button {
	switch {
	case b&tcell.Button1 != 0:
		return pointer.ButtonLeft
	case b&tcell.Button3 != 0:
		return pointer.ButtonMiddle
	case b&tcell.Button2 != 0:
		return pointer.ButtonRight
	default:
		return pointer.ButtonNone
	}
}
