package keymap

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dshills/tessera/internal/input"
	"github.com/dshills/tessera/internal/input/key"
)

// Unbind is the command name that removes a chord in overrides.
const Unbind = "none"

// ErrInvalidBinding is returned for bindings with an unparsable chord or
// an empty command.
var ErrInvalidBinding = errors.New("invalid binding")

// Keymap holds chord bindings. It is safe for concurrent use.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[string][]Binding
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[string][]Binding)}
}

// Add adds a binding.
func (k *Keymap) Add(b Binding) error {
	chord, err := key.NormalizeChord(b.Keys)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBinding, err)
	}
	if b.Command == "" {
		return fmt.Errorf("%w: %q has no command", ErrInvalidBinding, b.Keys)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	// Replace a binding with the same chord and mode.
	list := slices.DeleteFunc(k.bindings[chord], func(x Binding) bool { return x.Mode == b.Mode })
	k.bindings[chord] = append(list, b)
	return nil
}

// MustAdd adds a binding and panics on error.
// Use only for built-in bindings.
func (k *Keymap) MustAdd(b Binding) {
	if err := k.Add(b); err != nil {
		panic(fmt.Sprintf("keymap: %v", err))
	}
}

// Remove deletes every binding for a chord.
func (k *Keymap) Remove(chord string) error {
	c, err := key.NormalizeChord(chord)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBinding, err)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.bindings, c)
	return nil
}

// Override applies a chord to command-spec table on top of the current
// bindings. Each overridden chord loses its previous bindings; the spec
// "none" only unbinds. All entries are validated before any is applied.
func (k *Keymap) Override(table map[string]string) error {
	type entry struct {
		chord string
		b     Binding
		drop  bool
	}
	var entries []entry
	var errs []error
	for chord, spec := range table {
		c, err := key.NormalizeChord(chord)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidBinding, err))
			continue
		}
		if strings.TrimSpace(spec) == Unbind {
			entries = append(entries, entry{chord: c, drop: true})
			continue
		}
		name, args, err := ParseCommandSpec(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidBinding, chord, err))
			continue
		}
		entries = append(entries, entry{chord: c, b: Binding{Keys: chord, Command: name, Args: args, Category: "User"}})
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	for _, e := range entries {
		delete(k.bindings, e.chord)
		if !e.drop {
			k.bindings[e.chord] = []Binding{e.b}
		}
	}
	return nil
}

// Lookup resolves ev in mode.
func (k *Keymap) Lookup(ev key.Event, mode string) (input.Command, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var best *Binding
	for i, b := range k.bindings[ev.Chord()] {
		if !b.Matches(mode) {
			continue
		}
		if best == nil || better(b, *best) {
			best = &k.bindings[ev.Chord()][i]
		}
	}
	if best == nil {
		return input.Command{}, false
	}
	return best.ToCommand(), true
}

// better reports whether a takes precedence over b.
func better(a, b Binding) bool {
	if (a.Mode != "") != (b.Mode != "") {
		return a.Mode != ""
	}
	if len(a.Mode) != len(b.Mode) {
		return len(a.Mode) > len(b.Mode)
	}
	return a.Priority > b.Priority
}

// Bindings returns all bindings ordered by chord.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	chords := make([]string, 0, len(k.bindings))
	for c := range k.bindings {
		chords = append(chords, c)
	}
	slices.Sort(chords)

	var out []Binding
	for _, c := range chords {
		out = append(out, k.bindings[c]...)
	}
	return out
}

// Clone returns an independent copy.
func (k *Keymap) Clone() *Keymap {
	k.mu.RLock()
	defer k.mu.RUnlock()

	c := New()
	for chord, list := range k.bindings {
		c.bindings[chord] = slices.Clone(list)
	}
	return c
}
