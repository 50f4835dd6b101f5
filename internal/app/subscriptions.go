package app

import (
	"context"

	"github.com/dshills/tessera/internal/engine/history"
	"github.com/dshills/tessera/internal/event"
)

// subscribe connects the application to editor notifications: any of them
// marks the view for redraw, and history changes are logged.
func (app *Application) subscribe() error {
	bus := app.editor.Bus()

	redraw, err := bus.Subscribe("**", func(context.Context, event.Event) error {
		app.redraw.Store(true)
		return nil
	}, event.WithPriority(100))
	if err != nil {
		return err
	}
	app.subs = append(app.subs, redraw)

	hist, err := bus.Subscribe(event.TopicHistory, app.onHistory)
	if err != nil {
		return err
	}
	app.subs = append(app.subs, hist)
	return nil
}

func (app *Application) onHistory(_ context.Context, ev event.Event) error {
	entries, ok := ev.Payload.([]history.EntryInfo)
	if !ok {
		return nil
	}
	applied := 0
	var last string
	for _, e := range entries {
		if e.Applied {
			applied++
			last = e.Description
		}
	}
	app.log.Debug("history %d/%d %s", applied, len(entries), last)
	return nil
}
