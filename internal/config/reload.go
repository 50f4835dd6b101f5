package config

import (
	"sync"
	"time"

	"github.com/dshills/tessera/internal/config/watcher"
	"github.com/dshills/tessera/internal/logging"
)

// ReloadFunc receives each newly loaded configuration.
type ReloadFunc func(Config)

// Reloader reloads the configuration when the user file changes. Files
// that fail to parse or validate are logged and skipped; the previous
// configuration stays in effect.
type Reloader struct {
	path string
	load func(string) (Config, error)
	w    *watcher.Watcher
	log  *logging.Logger

	mu       sync.Mutex
	current  Config
	onReload []ReloadFunc
}

// ReloaderOption configures a Reloader.
type ReloaderOption func(*Reloader)

// WithReloadLogger sets the logger for reload messages.
func WithReloadLogger(l *logging.Logger) ReloaderOption {
	return func(r *Reloader) { r.log = l }
}

// WithLoadFunc replaces Load, mainly for tests.
func WithLoadFunc(fn func(string) (Config, error)) ReloaderOption {
	return func(r *Reloader) { r.load = fn }
}

// NewReloader starts watching path. current is the configuration in
// effect now.
func NewReloader(path string, current Config, opts ...ReloaderOption) (*Reloader, error) {
	r := &Reloader{
		path:    path,
		load:    Load,
		log:     logging.NullLogger,
		current: current,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithComponent("config")

	w, err := watcher.New(
		watcher.WithDebounce(150*time.Millisecond),
		watcher.WithErrorHandler(func(err error) {
			r.log.Warn("watch %s: %v", r.path, err)
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Close()
		return nil, err
	}
	w.OnChange(r.changed)
	r.w = w
	return r, nil
}

// OnReload registers fn to receive reloaded configurations. fn runs on
// the watcher goroutine.
func (r *Reloader) OnReload(fn ReloadFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReload = append(r.onReload, fn)
}

// Current returns the configuration in effect.
func (r *Reloader) Current() Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Clone()
}

// Close stops watching.
func (r *Reloader) Close() error {
	return r.w.Close()
}

func (r *Reloader) changed(ev watcher.Event) {
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		r.log.Debug("%s %s; keeping current settings", r.path, ev.Op)
		return
	}
	cfg, err := r.load(r.path)
	if err != nil {
		r.log.Warn("reload %s: %v", r.path, err)
		return
	}

	r.mu.Lock()
	r.current = cfg
	fns := append([]ReloadFunc(nil), r.onReload...)
	r.mu.Unlock()

	r.log.Info("reloaded %s", r.path)
	for _, fn := range fns {
		fn(cfg.Clone())
	}
}
