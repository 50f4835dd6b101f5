// Package script runs Lua macros against the editor.
//
// Each run gets a fresh sandboxed gopher-lua state with only the base,
// table, string and math libraries. File loading and module lookup are
// removed. A run is bounded by a wall-clock timeout and by the number of
// editor API calls it may make.
//
// Scripts see a global "editor" table:
//
//	editor.polygon(points [, fields]) -> id
//	editor.polyline(points [, fields]) -> id
//	editor.select(id, ...) / editor.select({ids})
//	editor.move(dx, dy [, {ids}])
//	editor.delete([{ids}])
//	editor.edit(field, value [, {ids}])
//	editor.undo() -> bool
//	editor.redo() -> bool
//	editor.command("nudge dx=5" [, {args}])
//	editor.intent('{"type":"delete"}') / editor.intent({type = "delete"})
//	editor.items() -> {{id=, kind=, label=, locked=, vertices={{x, y}, ...}}, ...}
//	editor.mode() -> string
//	editor.selection() -> {ids}
//
// Points are {{x, y}, ...} or {{x = x, y = y}, ...}.
package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tessera/internal/logging"
)

// Default limits for a run.
const (
	DefaultTimeout   = 2 * time.Second
	DefaultCallLimit = 100_000
)

var (
	// ErrStateClosed is returned when running on a closed state.
	ErrStateClosed = errors.New("lua state closed")

	// ErrCallLimit is raised when a script exceeds its API call budget.
	ErrCallLimit = errors.New("script call limit exceeded")
)

// State wraps a sandboxed gopher-lua state.
//
// gopher-lua's LState is not goroutine-safe; a State must only be used
// from the goroutine that runs the editor.
type State struct {
	L *lua.LState

	timeout   time.Duration
	callLimit int
	calls     int
	log       *logging.Logger
	closed    bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout bounds the wall-clock time of one run.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithCallLimit bounds the number of editor API calls of one run.
func WithCallLimit(n int) StateOption {
	return func(s *State) {
		s.callLimit = n
	}
}

// WithLogger receives the output of print.
func WithLogger(l *logging.Logger) StateOption {
	return func(s *State) {
		s.log = l
	}
}

// NewState creates a sandboxed state.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout:   DefaultTimeout,
		callLimit: DefaultCallLimit,
		log:       logging.NullLogger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.install()
	return s
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// install removes the loaders and routes print to the log.
func (s *State) install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		s.log.Info("%s", strings.Join(parts, "\t"))
		return 0
	}))
}

// charge counts one API call, raising a Lua error past the limit.
func (s *State) charge(L *lua.LState) {
	s.calls++
	if s.callLimit > 0 && s.calls > s.callLimit {
		L.RaiseError("%v (%d)", ErrCallLimit, s.callLimit)
	}
}

// DoString runs code. name identifies the chunk in error messages.
func (s *State) DoString(ctx context.Context, name, code string) error {
	return s.run(ctx, func() error {
		fn, err := s.L.Load(strings.NewReader(code), name)
		if err != nil {
			return err
		}
		s.L.Push(fn)
		return s.L.PCall(0, 0, nil)
	})
}

// DoFile runs the file at path.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.run(ctx, func() error {
		return s.L.DoFile(path)
	})
}

func (s *State) run(ctx context.Context, fn func() error) (err error) {
	if s.closed {
		return ErrStateClosed
	}
	s.calls = 0

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	if err := fn(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", ctxErr, err)
		}
		return err
	}
	return nil
}

// Close releases the state.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}
