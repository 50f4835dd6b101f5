package script

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/tessera/internal/editor"
	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/logging"
)

// ErrReentrant is returned when a script starts another script.
var ErrReentrant = errors.New("script already running")

// Runner runs macros against one editor. Every run is a single undo step;
// a run that fails is rolled back.
type Runner struct {
	e       *editor.Editor
	log     *logging.Logger
	opts    []StateOption
	scripts map[string]string
	running string
}

// NewRunner creates a runner for e. opts apply to every run's state.
func NewRunner(e *editor.Editor, log *logging.Logger, opts ...StateOption) *Runner {
	if log == nil {
		log = logging.NullLogger
	}
	log = log.WithComponent("script")
	return &Runner{
		e:       e,
		log:     log,
		opts:    append([]StateOption{WithLogger(log)}, opts...),
		scripts: make(map[string]string),
	}
}

// Bind registers each name → path as the editor command script.<name>,
// replacing earlier bindings.
func (r *Runner) Bind(scripts map[string]string) {
	for name := range r.scripts {
		if _, ok := scripts[name]; !ok {
			r.e.Unregister(input.ScriptPrefix + name)
		}
	}
	r.scripts = maps.Clone(scripts)
	for name, path := range r.scripts {
		r.e.Register(input.ScriptPrefix+name, func(ctx context.Context, _ input.Command) error {
			return r.RunFile(ctx, name, path)
		})
	}
}

// Names returns the bound script names in sorted order.
func (r *Runner) Names() []string {
	return slices.Sorted(maps.Keys(r.scripts))
}

// RunFile runs the Lua file at path as macro name.
func (r *Runner) RunFile(ctx context.Context, name, path string) error {
	return r.run(ctx, name, func(s *State) error {
		return s.DoFile(ctx, path)
	})
}

// RunString runs code as macro name.
func (r *Runner) RunString(ctx context.Context, name, code string) error {
	return r.run(ctx, name, func(s *State) error {
		return s.DoString(ctx, name, code)
	})
}

func (r *Runner) run(ctx context.Context, name string, fn func(*State) error) error {
	if r.running != "" {
		return fmt.Errorf("%w: %s (from %s)", ErrReentrant, name, r.running)
	}
	r.running = name
	defer func() { r.running = "" }()

	s := NewState(r.opts...)
	defer s.Close()
	Install(ctx, s, r.e)

	r.log.Debug("run %s", name)
	err := r.e.Transaction(ctx, input.ScriptPrefix+name, func() error {
		return fn(s)
	})
	if err != nil {
		r.log.Warn("%s: %v", name, err)
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}
