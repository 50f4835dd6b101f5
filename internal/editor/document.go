package editor

import (
	"context"
	"fmt"

	"github.com/dshills/tessera/internal/engine/action"
	"github.com/dshills/tessera/internal/engine/scene"
	"github.com/dshills/tessera/internal/engine/selection"
	"github.com/dshills/tessera/internal/input/mode"
)

// Open replaces the scene with the decoded document and starts a fresh
// history, as when a file is opened.
func (e *Editor) Open(ctx context.Context, data []byte) error {
	s, err := scene.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	e.Reset(ctx, s)
	return nil
}

// Reset discards the history and all transient state and starts over
// from s.
func (e *Editor) Reset(ctx context.Context, s scene.State) {
	e.history.Reset(s)
	e.modes.Reset()
	e.sceneRev++
	e.rules, e.preview = nil, nil
	e.rulesRev++
	e.selection = selection.New()
	e.memo.Invalidate()
	_ = e.publish(ctx, changes{mode: true, scene: true, history: true, selection: true, preview: true})
}

// Load replaces the scene with the decoded document as one undoable step.
func (e *Editor) Load(ctx context.Context, data []byte) error {
	s, err := scene.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if !e.modes.Is(mode.Idle) {
		return fmt.Errorf("load: busy in %s", e.modes.Current())
	}
	out := replaceOutput(action.NewReplace(s, "Load scene"))
	return e.apply(ctx, out)
}

// Save encodes the current scene. Images are not persisted.
func (e *Editor) Save() ([]byte, error) {
	return scene.Marshal(e.history.State())
}
