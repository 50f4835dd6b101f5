package tool

import (
	"errors"
	"fmt"

	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/scene"
	"github.com/dshills/tessera/internal/engine/selection"
	"github.com/dshills/tessera/internal/engine/snap"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/key"
	"github.com/dshills/tessera/internal/input/mode"
	"github.com/dshills/tessera/internal/input/pointer"
)

// ErrModeConflict is reported by Merge when two outputs request different
// mode transitions for the same event.
var ErrModeConflict = errors.New("conflicting mode transitions")

// Behavior is one interactive tool.
type Behavior interface {
	// Name identifies the behavior in logs.
	Name() string

	// HandlePointer reacts to a pointer event.
	HandlePointer(ctx *Context, p Pointer) Output

	// HandleCommand reacts to a resolved shortcut or intent.
	HandleCommand(ctx *Context, cmd input.Command) Output
}

// Settings tunes the behaviors.
type Settings struct {
	// HitTolerance is the pick distance in screen pixels.
	HitTolerance float64
	// HandleSize is the pick radius of resize handles in screen pixels.
	HandleSize float64
	// Nudge and NudgeLarge are keyboard move steps in world units.
	Nudge      float64
	NudgeLarge float64
	// DuplicateOffset shifts duplicated items in world units.
	DuplicateOffset float64

	ZoomStep float64
	MinZoom  float64
	MaxZoom  float64

	// Style, Opacity and FontSize apply to newly drawn shapes.
	Style    item.Style
	Opacity  float64
	FontSize float64
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		HitTolerance:    4,
		HandleSize:      6,
		Nudge:           1,
		NudgeLarge:      10,
		DuplicateOffset: 10,
		ZoomStep:        1.2,
		MinZoom:         0.05,
		MaxZoom:         64,
		Style:           item.Style{Stroke: "#000000", StrokeWidth: 1},
		Opacity:         1,
		FontSize:        12,
	}
}

// Context is the read-only view of the editor a behavior sees.
type Context struct {
	Mode      string
	Scene     scene.State
	Selection selection.Selection
	Rules     []snap.Rule
	Viewport  geom.Viewport
	// Screen is the visible area in screen coordinates.
	Screen   geom.Rect
	CanUndo  bool
	CanRedo  bool
	Settings Settings
}

// Tol converts the hit tolerance to world units.
func (c *Context) Tol() float64 {
	return c.Settings.HitTolerance / c.Viewport.Scale()
}

// HandleTol converts the handle size to world units.
func (c *Context) HandleTol() float64 {
	return c.Settings.HandleSize / c.Viewport.Scale()
}

// Busy reports whether a gesture is in progress, during which history
// and selection commands are ignored.
func (c *Context) Busy() bool {
	switch c.Mode {
	case mode.Dragging, mode.Resizing, mode.VertexMoving, mode.Panning:
		return true
	}
	return mode.State(c.Mode) == "drawing"
}

// newMeta returns the meta a freshly drawn shape starts with.
func (c *Context) newMeta() item.Meta {
	return item.Meta{FontSize: c.Settings.FontSize}
}

// Pointer is a pointer event with its world and snap-corrected positions.
type Pointer struct {
	Kind   pointer.Kind
	Button pointer.Button
	Mods   key.Modifier
	// Screen is the raw position.
	Screen geom.Point
	// World is Screen mapped through the viewport.
	World geom.Point
	// Adjusted is World corrected by the active snap rules.
	Adjusted snap.Result
	// Delta is the wheel step, positive away from the user.
	Delta float64
}

// At returns the snap-corrected world position.
func (p Pointer) At() geom.Point { return p.Adjusted.Point }

// Output is what a behavior wants to change.
type Output struct {
	// Mode is the next mode; empty keeps the current one.
	Mode string
	// PushMode saves the current mode and enters another one; PopMode
	// restores it.
	PushMode string
	PopMode  bool

	// Push lists actions to push onto the history in order.
	Push []history.Action
	Undo bool
	Redo bool

	// Select replaces the selection when non-nil.
	Select *selection.Selection
	// SelectAdded selects the items added by Push.
	SelectAdded bool

	// Rules replaces the active snap rules when SetRules is set.
	Rules    []snap.Rule
	SetRules bool

	// Preview replaces the preview item when SetPreview is set; nil clears.
	Preview    item.Item
	SetPreview bool

	// Viewport replaces the viewport when non-nil.
	Viewport *geom.Viewport

	// Err reports a rejected command.
	Err error
}

// Empty reports whether the output changes nothing.
func (o Output) Empty() bool {
	return o.Mode == "" && o.PushMode == "" && !o.PopMode &&
		len(o.Push) == 0 && !o.Undo && !o.Redo &&
		o.Select == nil && !o.SelectAdded &&
		!o.SetRules && !o.SetPreview && o.Viewport == nil && o.Err == nil
}

// Merge combines o with other. Actions are concatenated; for every other
// kind of output the value already in o wins. Differing mode requests
// return ErrModeConflict along with the merged output.
func (o Output) Merge(other Output) (Output, error) {
	var err error
	if other.Mode != "" {
		switch {
		case o.Mode == "":
			o.Mode = other.Mode
		case o.Mode != other.Mode:
			err = fmt.Errorf("%w: %q and %q", ErrModeConflict, o.Mode, other.Mode)
		}
	}
	if o.PushMode == "" {
		o.PushMode = other.PushMode
	}
	o.PopMode = o.PopMode || other.PopMode
	o.Push = append(o.Push, other.Push...)
	o.Undo = o.Undo || other.Undo
	o.Redo = o.Redo || other.Redo
	if o.Select == nil {
		o.Select = other.Select
	}
	o.SelectAdded = o.SelectAdded || other.SelectAdded
	if !o.SetRules && other.SetRules {
		o.Rules, o.SetRules = other.Rules, true
	}
	if !o.SetPreview && other.SetPreview {
		o.Preview, o.SetPreview = other.Preview, true
	}
	if o.Viewport == nil {
		o.Viewport = other.Viewport
	}
	o.Err = errors.Join(o.Err, other.Err)
	return o, err
}

// selectOutput returns an output replacing the selection with s.
func selectOutput(s selection.Selection) Output {
	return Output{Select: &s}
}

// idle returns the output ending a gesture: back to idle with no rules
// and no preview.
func idle() Output {
	return Output{Mode: mode.Idle, SetRules: true, SetPreview: true}
}

// Defaults returns the built-in behaviors in guard order.
func Defaults() []Behavior {
	return []Behavior{
		NewViewport(),
		NewHistory(),
		NewCancel(),
		NewResize(),
		NewVertex(),
		NewSelect(),
		NewDrag(),
		NewRect(),
		NewLine(),
		NewPolygon(),
		NewEdit(),
	}
}
