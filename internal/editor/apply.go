package editor

import (
	"context"
	"errors"
	"slices"

	"github.com/dshills/tessera/internal/engine/action"
	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/selection"
	"github.com/dshills/tessera/internal/engine/snap"
	"github.com/dshills/tessera/internal/event"
	"github.com/dshills/tessera/internal/event/topic"
	"github.com/dshills/tessera/internal/tool"
)

// changes records what an applied output touched.
type changes struct {
	mode, scene, history, selection, preview, viewport bool
}

// apply commits out in the fixed order: mode, history, selection, rules,
// preview, viewport. Notifications follow once everything is settled.
func (e *Editor) apply(ctx context.Context, out tool.Output) error {
	var c changes

	prevMode := e.modes.Current()
	if out.PopMode {
		if err := e.modes.Pop(); err != nil {
			e.log.Warn("pop mode: %v", err)
		}
	}
	if out.PushMode != "" {
		_ = e.modes.Push(out.PushMode)
	}
	if out.Mode != "" {
		_, _ = e.modes.Switch(out.Mode)
	}
	c.mode = e.modes.Current() != prevMode

	before := e.history.State()
	var added []item.ID
	if out.Undo && e.history.Undo() {
		c.history = true
	}
	if out.Redo && e.history.Redo() {
		c.history = true
	}
	for _, a := range out.Push {
		e.history.Push(a)
		added = append(added, action.AddedIDs(e.history.LastAction())...)
		c.history = true
	}
	if c.history && !e.history.State().Equal(before) {
		c.scene = true
		e.sceneRev++
	}

	sel := e.selection
	if out.Select != nil {
		sel = *out.Select
	}
	if out.SelectAdded && len(added) > 0 {
		sel = selection.New(added...)
	}
	sel = sel.Prune(e.history.State())
	if !sel.Equal(e.selection) {
		e.selection = sel
		c.selection = true
	}

	if out.SetRules {
		e.rules = slices.Clone(out.Rules)
		e.rulesRev++
		if len(e.rules) == 0 {
			e.setAdjust(snap.Identity(e.adjust.Point))
		}
	}

	if out.SetPreview && (out.Preview != nil || e.preview != nil) {
		e.preview = out.Preview
		c.preview = true
	}

	if out.Viewport != nil && *out.Viewport != e.viewport {
		e.viewport = *out.Viewport
		c.viewport = true
	}

	if out.Err != nil {
		e.status = out.Err.Error()
	}
	return errors.Join(out.Err, e.publish(ctx, c))
}

// setAdjust stores r, marking it for notification when it differs from
// the previous result.
func (e *Editor) setAdjust(r snap.Result) {
	if r.Point != e.adjust.Point || !slices.Equal(r.Applied, e.adjust.Applied) {
		e.adjustDirty = true
	}
	e.adjust = r
}

const source = "editor"

// publish sends one notification per changed output kind.
func (e *Editor) publish(ctx context.Context, c changes) error {
	type note struct {
		changed bool
		topic   topic.Topic
		payload func() any
	}
	notes := []note{
		{c.mode, event.TopicMode, func() any { return e.modes.Current() }},
		{c.scene, event.TopicScene, func() any { return e.history.State() }},
		{c.history, event.TopicHistory, func() any { return e.history.Entries() }},
		{c.selection, event.TopicSelection, func() any { return e.selection }},
		{e.adjustDirty, event.TopicAdjust, func() any { return e.adjust }},
		{c.preview, event.TopicPreview, func() any { return e.preview }},
		{c.viewport, event.TopicViewport, func() any { return e.viewport }},
	}
	e.adjustDirty = false

	var errs []error
	for _, n := range notes {
		if !n.changed {
			continue
		}
		if err := e.bus.PublishPayload(ctx, n.topic, n.payload(), source); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func replaceOutput(a *action.Replace) tool.Output {
	return tool.Output{Push: []history.Action{a}}
}
