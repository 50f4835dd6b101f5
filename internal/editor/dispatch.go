package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/snap"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/intent"
	"github.com/dshills/tessera/internal/input/key"
	"github.com/dshills/tessera/internal/input/pointer"
	"github.com/dshills/tessera/internal/tool"
)

// Input is one queued event for Run. Exactly one field is set.
type Input struct {
	Key      *key.Event
	Pointer  *pointer.Event
	Intent   []byte
	Command  *input.Command
	Screen   *geom.Rect
	Settings *Settings
	// Func runs on the event goroutine, for callers that need to read or
	// change editor state from elsewhere.
	Func func(*Editor) error
}

// KeyInput wraps a key event.
func KeyInput(ev key.Event) Input { return Input{Key: &ev} }

// PointerInput wraps a pointer event.
func PointerInput(ev pointer.Event) Input { return Input{Pointer: &ev} }

// IntentInput wraps a JSON intent.
func IntentInput(data []byte) Input { return Input{Intent: data} }

// CommandInput wraps a command.
func CommandInput(cmd input.Command) Input { return Input{Command: &cmd} }

// Dispatch processes one input to completion.
func (e *Editor) Dispatch(ctx context.Context, in Input) error {
	switch {
	case in.Key != nil:
		return e.HandleKey(ctx, *in.Key)
	case in.Pointer != nil:
		return e.HandlePointer(ctx, *in.Pointer)
	case in.Intent != nil:
		return e.HandleIntent(ctx, in.Intent)
	case in.Command != nil:
		return e.Execute(ctx, *in.Command)
	case in.Screen != nil:
		e.SetScreen(*in.Screen)
	case in.Settings != nil:
		e.ApplySettings(*in.Settings)
	case in.Func != nil:
		return in.Func(e)
	}
	return nil
}

// Run processes inputs one at a time until ctx is done or in is closed.
// Errors from individual inputs are logged and shown as status; they do
// not stop the loop.
func (e *Editor) Run(ctx context.Context, in <-chan Input) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-in:
			if !ok {
				return nil
			}
			if err := e.Dispatch(ctx, ev); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				e.log.Warn("input: %v", err)
				e.status = err.Error()
			}
		}
	}
}

// HandleKey resolves ev through the keymap and executes the bound command.
// Unbound keys are ignored.
func (e *Editor) HandleKey(ctx context.Context, ev key.Event) error {
	cmd, ok := e.keymap.Lookup(ev, e.modes.Current())
	if !ok {
		e.log.Debug("unbound key %s in %s", ev.Chord(), e.modes.Current())
		return nil
	}
	return e.Execute(ctx, cmd)
}

// HandleIntent decodes one intent or an array of intents and executes
// them in order, stopping at the first error.
func (e *Editor) HandleIntent(ctx context.Context, data []byte) error {
	cmds, err := intent.DecodeAll(data)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		if err := e.Execute(ctx, cmd.WithSource(input.SourceIntent)); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs cmd: a registered command if one matches, otherwise the
// tool behaviors.
func (e *Editor) Execute(ctx context.Context, cmd input.Command) error {
	if fn, ok := e.commands[cmd.Name]; ok {
		return fn(ctx, cmd)
	}
	if !builtin[cmd.Name] {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}

	tc := e.context()
	out := e.collect(func(b tool.Behavior) tool.Output {
		return b.HandleCommand(tc, cmd)
	})
	return e.apply(ctx, out)
}

// builtin lists the commands the default behaviors understand.
var builtin = map[string]bool{
	input.CmdRect: true, input.CmdLine: true, input.CmdPolygon: true,
	input.CmdDelete: true, input.CmdUndo: true, input.CmdRedo: true,
	input.CmdEdit: true, input.CmdChangeZ: true, input.CmdLock: true,
	input.CmdUnlock: true, input.CmdDuplicate: true, input.CmdSelectAll: true,
	input.CmdCancel: true, input.CmdVertexMode: true, input.CmdZoomIn: true,
	input.CmdZoomOut: true, input.CmdZoomReset: true, input.CmdNudge: true,
	input.CmdFinish: true,
}

// HandlePointer processes a raw pointer event, along with the clicks and
// double-clicks it completes.
func (e *Editor) HandlePointer(ctx context.Context, ev pointer.Event) error {
	var errs []error
	for _, pe := range e.tracker.Feed(ev) {
		errs = append(errs, e.pointer(ctx, pe))
	}
	return errors.Join(errs...)
}

func (e *Editor) pointer(ctx context.Context, ev pointer.Event) error {
	world := e.viewport.ToWorld(ev.Pos)
	e.setAdjust(e.adjustAt(world, ev.Mods))

	p := tool.Pointer{
		Kind:     ev.Kind,
		Button:   ev.Button,
		Mods:     ev.Mods,
		Screen:   ev.Pos,
		World:    world,
		Adjusted: e.adjust,
		Delta:    ev.Delta,
	}
	tc := e.context()
	out := e.collect(func(b tool.Behavior) tool.Output {
		return b.HandlePointer(tc, p)
	})
	return e.apply(ctx, out)
}

// adjustAt runs the snap engine through the memo.
func (e *Editor) adjustAt(world geom.Point, mods key.Modifier) snap.Result {
	if e.verticesRev != e.sceneRev || e.vertices == nil {
		e.vertices = e.history.State().Vertices()
		e.verticesRev = e.sceneRev
	}
	return e.memo.Adjust(snap.MemoKey{
		Point:         world,
		K:             e.viewport.Scale(),
		RulesRevision: e.rulesRev,
		SceneRevision: e.sceneRev,
		Mods:          e.snapMods(mods),
	}, e.rules, e.vertices)
}

// snapMods maps held keys onto snapping modifiers.
func (e *Editor) snapMods(m key.Modifier) snap.Modifiers {
	var out snap.Modifiers
	if e.settings.DisableModifier != key.ModNone && m.Has(e.settings.DisableModifier) {
		out |= snap.ModDisable
	}
	if e.settings.RestrictModifier != key.ModNone && m.Has(e.settings.RestrictModifier) {
		out |= snap.ModRestrict
	}
	return out
}

// collect runs every behavior and merges their outputs in order.
func (e *Editor) collect(run func(tool.Behavior) tool.Output) tool.Output {
	var merged tool.Output
	for _, b := range e.behaviors {
		out := run(b)
		if out.Empty() {
			continue
		}
		var err error
		merged, err = merged.Merge(out)
		if err != nil {
			e.log.Warn("behavior %s: %v", b.Name(), err)
		}
	}
	return merged
}
