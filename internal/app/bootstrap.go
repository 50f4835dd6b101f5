package app

import (
	"context"
	"errors"
	"io"

	"github.com/dshills/tessera/internal/config"
	"github.com/dshills/tessera/internal/editor"
	"github.com/dshills/tessera/internal/event"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/logging"
	"github.com/dshills/tessera/internal/script"
)

// bootstrap initializes components in dependency order: config, logger,
// editor, scripts, then the config watcher.
func (app *Application) bootstrap(ctx context.Context) error {
	// 1. Config
	app.cfgPath = app.opts.ConfigPath
	if app.cfgPath == "" {
		app.cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(app.cfgPath)
	if err != nil {
		return NewComponentError("config", "load", err)
	}
	app.config = cfg

	// 2. Logger
	if err := app.initLogger(cfg); err != nil {
		return NewComponentError("logger", "open", err)
	}
	app.log.Info("starting (config %s)", app.cfgPath)

	// 3. Editor
	km, err := cfg.KeymapFor()
	if err != nil {
		return NewComponentError("keymap", "build", err)
	}
	app.editor = editor.New(
		editor.WithSettings(cfg.EditorSettings()),
		editor.WithKeymap(km),
		editor.WithLogger(app.log),
	)
	app.editor.Register(input.CmdSave, app.saveCommand)
	app.editor.Register(input.CmdQuit, app.quitCommand)
	if err := app.subscribe(); err != nil {
		return NewComponentError("events", "subscribe", err)
	}

	app.doc = NewDocument(app.opts.File)
	if err := app.doc.Open(ctx, app.editor); err != nil {
		return NewComponentError("document", "open", err)
	}

	// 4. Scripts
	app.scripts = script.NewRunner(app.editor, app.log)
	app.scripts.Bind(cfg.Scripts)
	if app.opts.Script != "" {
		if err := app.scripts.RunFile(ctx, "startup", app.opts.Script); err != nil {
			return NewComponentError("script", "run "+app.opts.Script, err)
		}
	}

	// 5. Config watcher. A missing config directory only disables reload.
	if app.cfgPath != "" {
		r, err := config.NewReloader(app.cfgPath, cfg, config.WithReloadLogger(app.log))
		if err != nil {
			app.log.Warn("config reload disabled: %v", err)
		} else {
			r.OnReload(app.queueReload)
			app.reloader = r
		}
	}
	return nil
}

// initLogger builds the process logger from the config and options.
func (app *Application) initLogger(cfg config.Config) error {
	level := cfg.LogLevel()
	if app.opts.LogLevel != "" {
		l, ok := logging.ParseLevel(app.opts.LogLevel)
		if !ok {
			return errors.New("unknown log level " + app.opts.LogLevel)
		}
		level = l
	}

	var out io.Writer = io.Discard
	if app.opts.LogOutput != nil {
		out = app.opts.LogOutput
	}
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}

	app.log = logging.New(logging.Config{Level: level, Output: out, Prefix: "tessera"}).WithComponent("app")
	logging.Set(app.log)
	return nil
}

// queueReload hands a reloaded config to the event loop. It runs on the
// watcher goroutine.
func (app *Application) queueReload(cfg config.Config) {
	app.Send(editor.Input{Func: func(e *editor.Editor) error {
		return app.applyConfig(cfg)
	}})
}

// applyConfig makes cfg current. It must run on the event loop.
func (app *Application) applyConfig(cfg config.Config) error {
	km, err := cfg.KeymapFor()
	if err != nil {
		return NewComponentError("keymap", "build", err)
	}
	app.editor.ApplySettings(cfg.EditorSettings())
	app.editor.SetKeymap(km)
	app.scripts.Bind(cfg.Scripts)
	if app.opts.LogLevel == "" {
		app.log.SetLevel(cfg.LogLevel())
	}

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	app.editor.SetStatus("config reloaded")
	app.redraw.Store(true)
	return app.editor.Bus().PublishPayload(context.Background(), event.TopicConfig, cfg, "app")
}
