// Package app wires tessera together: configuration, logging, the editor,
// Lua macros, config live reload and the terminal backend.
package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/tessera/internal/config"
	"github.com/dshills/tessera/internal/editor"
	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/event"
	"github.com/dshills/tessera/internal/logging"
	"github.com/dshills/tessera/internal/script"
)

// Backend is the display the application drives.
type Backend interface {
	Init() error
	Shutdown()
	// PollInput blocks for the next input; false means the display is
	// gone.
	PollInput() (editor.Input, bool)
	Draw(view editor.View)
	Canvas() geom.Rect
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means the default path.
	ConfigPath string

	// File is the scene file to open and save.
	File string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// Script is a Lua macro run once after startup.
	Script string

	// LogOutput receives the log when no log file is configured. The
	// terminal belongs to the backend, so the default discards.
	LogOutput io.Writer
}

// Application is the central coordinator for all tessera components.
type Application struct {
	mu sync.Mutex

	opts     Options
	cfgPath  string
	config   config.Config
	log      *logging.Logger
	logFile  io.Closer
	editor   *editor.Editor
	scripts  *script.Runner
	reloader *config.Reloader
	backend  Backend
	subs     []event.Subscription
	doc      *Document

	inputs    chan editor.Input
	done      chan struct{}
	closeOnce sync.Once
	running   atomic.Bool
	redraw    atomic.Bool
	quitArmed bool
}

// New creates an application and bootstraps every component except the
// backend, which is started by Run.
func New(ctx context.Context, opts Options) (*Application, error) {
	app := &Application{
		opts:   opts,
		inputs: make(chan editor.Input, 64),
		done:   make(chan struct{}),
	}
	if err := app.bootstrap(ctx); err != nil {
		app.shutdown()
		return nil, err
	}
	return app, nil
}

// SetBackend sets the display. Must be called before Run.
func (app *Application) SetBackend(b Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Send queues an input for the event loop. It reports false once the
// application has shut down.
func (app *Application) Send(in editor.Input) bool {
	select {
	case <-app.done:
		return false
	default:
	}
	select {
	case app.inputs <- in:
		return true
	case <-app.done:
		return false
	}
}

// Shutdown stops the event loop and releases every component. It is safe
// to call more than once.
func (app *Application) Shutdown() {
	app.shutdown()
}

// shutdown tears down in reverse bootstrap order.
func (app *Application) shutdown() {
	app.closeOnce.Do(func() {
		close(app.done)
		if app.reloader != nil {
			app.reloader.Close()
		}
		if app.editor != nil {
			for _, sub := range app.subs {
				_ = app.editor.Bus().Unsubscribe(sub)
			}
		}
		if app.log != nil {
			app.log.Info("shutdown")
		}
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
	})
}

// IsRunning reports whether Run is in progress.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Editor returns the editor.
func (app *Application) Editor() *editor.Editor { return app.editor }

// Config returns the configuration the application started with, or the
// last one reloaded.
func (app *Application) Config() config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.config
}

// Scripts returns the macro runner.
func (app *Application) Scripts() *script.Runner { return app.scripts }

// Document returns the scene file state.
func (app *Application) Document() *Document { return app.doc }

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger { return app.log }
