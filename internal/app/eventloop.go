package app

import (
	"context"
	"errors"

	"github.com/dshills/tessera/internal/editor"
	"github.com/dshills/tessera/internal/input"
)

// Run starts the backend and processes inputs until quit, Shutdown or
// ctx is done. Quitting returns nil.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()

	if b != nil {
		if err := b.Init(); err != nil {
			return NewComponentError("backend", "init", err)
		}
		defer b.Shutdown()
		app.editor.SetScreen(b.Canvas())
		go app.pump(ctx, b)
		app.redraw.Store(true)
		app.draw(b)
	}

	app.log.Info("running %s", app.doc.Name())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-app.done:
			return nil
		case in := <-app.inputs:
			if err := app.dispatch(ctx, in); err != nil {
				if errors.Is(err, ErrQuit) {
					app.log.Info("quit")
					return nil
				}
				if errors.Is(err, context.Canceled) {
					return err
				}
				app.log.Warn("input: %v", err)
				app.editor.SetStatus(err.Error())
				app.redraw.Store(true)
			}
			if in.Screen != nil {
				app.redraw.Store(true)
			}
			if b != nil {
				app.draw(b)
			}
		}
	}
}

func (app *Application) dispatch(ctx context.Context, in editor.Input) (err error) {
	status := app.editor.Status()
	defer func() {
		if app.editor.Status() != status {
			app.redraw.Store(true)
		}
	}()
	return app.editor.Dispatch(ctx, in)
}

// pump forwards backend input to the loop.
func (app *Application) pump(ctx context.Context, b Backend) {
	for {
		in, ok := b.PollInput()
		if !ok {
			return
		}
		select {
		case app.inputs <- in:
		case <-ctx.Done():
			return
		case <-app.done:
			return
		}
	}
}

// draw renders when something changed since the last frame.
func (app *Application) draw(b Backend) {
	if !app.redraw.Swap(false) {
		return
	}
	b.Draw(app.editor.View())
}

// saveCommand writes the scene. A "path" argument saves under a new name.
func (app *Application) saveCommand(_ context.Context, cmd input.Command) error {
	if p := cmd.Args.GetString("path"); p != "" {
		app.doc.Path = p
	}
	if err := app.doc.Save(app.editor); err != nil {
		return err
	}
	app.quitArmed = false
	app.log.Info("saved %s", app.doc.Path)
	app.editor.SetStatus("saved " + app.doc.Name())
	return nil
}

// quitCommand asks to quit. With unsaved changes the first request only
// warns; a second one, or "force", quits.
func (app *Application) quitCommand(_ context.Context, cmd input.Command) error {
	if app.doc.Modified(app.editor) && !app.quitArmed && !cmd.Args.GetBool("force") {
		app.quitArmed = true
		app.editor.SetStatus(ErrUnsavedChanges.Error() + ": quit again to discard")
		return nil
	}
	return ErrQuit
}
