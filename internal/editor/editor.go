package editor

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/scene"
	"github.com/dshills/tessera/internal/engine/selection"
	"github.com/dshills/tessera/internal/engine/snap"
	"github.com/dshills/tessera/internal/event"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/key"
	"github.com/dshills/tessera/internal/input/keymap"
	"github.com/dshills/tessera/internal/input/mode"
	"github.com/dshills/tessera/internal/input/pointer"
	"github.com/dshills/tessera/internal/logging"
	"github.com/dshills/tessera/internal/tool"
)

// ErrUnknownCommand is returned by Execute for commands nobody handles.
var ErrUnknownCommand = errors.New("unknown command")

// CommandFunc runs a registered command.
type CommandFunc func(ctx context.Context, cmd input.Command) error

// Settings are the tunables that may change at runtime.
type Settings struct {
	Tool tool.Settings

	// SenseRange is the snapping distance in screen pixels.
	SenseRange float64
	// MaxHistory caps the number of undo entries; zero is unlimited.
	MaxHistory int

	DoubleClickTime     time.Duration
	DoubleClickDistance float64

	// DisableModifier suspends snapping while held; RestrictModifier arms
	// the axis restriction of the drawing tools.
	DisableModifier  key.Modifier
	RestrictModifier key.Modifier
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Tool:                tool.DefaultSettings(),
		SenseRange:          snap.DefaultSenseRange,
		MaxHistory:          history.DefaultMaxEntries,
		DoubleClickTime:     pointer.DefaultDoubleClickTime,
		DoubleClickDistance: pointer.DefaultDoubleClickDistance,
		DisableModifier:     key.ModAlt,
		RestrictModifier:    key.ModShift,
	}
}

// Option configures an Editor.
type Option func(*Editor)

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option {
	return func(e *Editor) { e.settings = s }
}

// WithKeymap replaces the default keymap.
func WithKeymap(km *keymap.Keymap) Option {
	return func(e *Editor) { e.keymap = km }
}

// WithBehaviors replaces the default tool behaviors.
func WithBehaviors(b ...tool.Behavior) Option {
	return func(e *Editor) { e.behaviors = b }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithBus sets the event bus notifications are published on.
func WithBus(b *event.Bus) Option {
	return func(e *Editor) { e.bus = b }
}

// WithScene sets the initial scene.
func WithScene(s scene.State) Option {
	return func(e *Editor) { e.initial = s }
}

// Editor is the interactive editing engine.
type Editor struct {
	settings  Settings
	initial   scene.State
	history   *history.History
	selection selection.Selection
	modes     *mode.Manager

	rules    []snap.Rule
	rulesRev uint64
	sceneRev uint64
	engine   *snap.Engine
	memo     *snap.Memo
	adjust   snap.Result
	// adjustDirty marks adjust for the next notification.
	adjustDirty bool
	// vertices caches the scene points for sceneRev.
	vertices    []geom.Point
	verticesRev uint64

	preview  item.Item
	viewport geom.Viewport
	screen   geom.Rect

	behaviors []tool.Behavior
	keymap    *keymap.Keymap
	tracker   *pointer.Tracker
	commands  map[string]CommandFunc

	bus    *event.Bus
	log    *logging.Logger
	status string
}

// New creates an editor.
func New(opts ...Option) *Editor {
	e := &Editor{
		settings: DefaultSettings(),
		initial:  scene.New(),
		modes:    mode.NewManager(),
		viewport: geom.Identity(),
		commands: make(map[string]CommandFunc),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.keymap == nil {
		e.keymap = keymap.Default()
	}
	if e.behaviors == nil {
		e.behaviors = tool.Defaults()
	}
	if e.bus == nil {
		e.bus = event.NewBus()
	}
	if e.log == nil {
		e.log = logging.NullLogger
	}
	e.log = e.log.WithComponent("editor")

	e.history = history.New(e.initial, e.settings.MaxHistory)
	e.engine = snap.NewEngine(e.settings.SenseRange)
	e.memo = snap.NewMemo(e.engine)
	e.tracker = pointer.NewTracker(e.settings.DoubleClickTime, e.settings.DoubleClickDistance)
	e.modes.OnChange(func(from, to string) {
		e.log.Debug("mode %s -> %s", from, to)
	})
	return e
}

// Register binds name to fn. Registered commands take precedence over the
// tool behaviors.
func (e *Editor) Register(name string, fn CommandFunc) {
	e.commands[name] = fn
}

// Unregister removes a registered command.
func (e *Editor) Unregister(name string) {
	delete(e.commands, name)
}

// Bus returns the event bus.
func (e *Editor) Bus() *event.Bus { return e.bus }

// Keymap returns the active keymap.
func (e *Editor) Keymap() *keymap.Keymap { return e.keymap }

// History returns the undo history.
func (e *Editor) History() *history.History { return e.history }

// Scene returns the current scene.
func (e *Editor) Scene() scene.State { return e.history.State() }

// Selection returns the current selection.
func (e *Editor) Selection() selection.Selection { return e.selection }

// Mode returns the current mode.
func (e *Editor) Mode() string { return e.modes.Current() }

// Rules returns the active snap rules.
func (e *Editor) Rules() []snap.Rule { return e.rules }

// Adjust returns the latest snap result.
func (e *Editor) Adjust() snap.Result { return e.adjust }

// Preview returns the in-progress drawing, or nil.
func (e *Editor) Preview() item.Item { return e.preview }

// Viewport returns the current viewport.
func (e *Editor) Viewport() geom.Viewport { return e.viewport }

// Settings returns the current settings.
func (e *Editor) Settings() Settings { return e.settings }

// Status returns the last status message.
func (e *Editor) Status() string { return e.status }

// SetStatus sets the status message shown to the user.
func (e *Editor) SetStatus(msg string) { e.status = msg }

// SetScreen sets the visible screen area, used to center zoom commands.
func (e *Editor) SetScreen(r geom.Rect) { e.screen = r }

// ApplySettings replaces the runtime settings. The history keeps its
// entries; only the cap changes.
func (e *Editor) ApplySettings(s Settings) {
	e.settings = s
	e.engine = snap.NewEngine(s.SenseRange)
	e.memo.SetEngine(e.engine)
	e.history.SetMaxEntries(s.MaxHistory)
	e.tracker.SetThresholds(s.DoubleClickTime, s.DoubleClickDistance)
	e.log.Info("settings applied")
}

// SetKeymap replaces the keymap.
func (e *Editor) SetKeymap(km *keymap.Keymap) {
	if km != nil {
		e.keymap = km
	}
}

// View is a snapshot of everything a renderer needs.
type View struct {
	Scene     scene.State
	Selection selection.Selection
	Mode      string
	Adjust    snap.Result
	Preview   item.Item
	Viewport  geom.Viewport
	// HandleSize is the resize handle radius in screen pixels.
	HandleSize float64
	CanUndo    bool
	CanRedo    bool
	Status     string
}

// View returns the current view.
func (e *Editor) View() View {
	return View{
		Scene:      e.Scene(),
		Selection:  e.selection,
		Mode:       e.modes.Current(),
		Adjust:     e.adjust,
		Preview:    e.preview,
		Viewport:   e.viewport,
		HandleSize: e.settings.Tool.HandleSize,
		CanUndo:    e.history.CanUndo(),
		CanRedo:    e.history.CanRedo(),
		Status:     e.status,
	}
}

// context builds the read-only view handed to behaviors.
func (e *Editor) context() *tool.Context {
	return &tool.Context{
		Mode:      e.modes.Current(),
		Scene:     e.history.State(),
		Selection: e.selection,
		Rules:     e.rules,
		Viewport:  e.viewport,
		Screen:    e.screen,
		CanUndo:   e.history.CanUndo(),
		CanRedo:   e.history.CanRedo(),
		Settings:  e.settings.Tool,
	}
}
