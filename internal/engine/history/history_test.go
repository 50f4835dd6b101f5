package history

import (
	"errors"
	"testing"

	"github.com/dshills/tessera/internal/engine/geom"
	"github.com/dshills/tessera/internal/engine/item"
	"github.com/dshills/tessera/internal/engine/scene"
)

// addAction inserts a unit square on top of the stack.
type addAction struct {
	id item.ID
}

func (a *addAction) Prepare(base scene.State) Action {
	return &addAction{id: base.NextID()}
}

func (a *addAction) Next(s scene.State) scene.State {
	sq := item.NewPolygon(item.Rectangle(geom.Pt(0, 0), geom.Pt(1, 1)), item.Style{}, item.Meta{})
	return s.Insert(sq.WithID(a.id))
}

func (a *addAction) Prev(s scene.State) scene.State { return s.Remove(a.id) }
func (a *addAction) Description() string            { return "add" }

// shiftAction moves one item by a total offset from the gesture start.
type shiftAction struct {
	id     item.ID
	origin geom.Point
	dx     float64
	before item.Item
}

func (a *shiftAction) Prepare(base scene.State) Action {
	b, _ := base.Get(a.id)
	return &shiftAction{id: a.id, origin: a.origin, dx: a.dx, before: b}
}

func (a *shiftAction) Merge(last Action) (Action, bool) {
	l, ok := last.(*shiftAction)
	if !ok || l.id != a.id || l.origin != a.origin {
		return nil, false
	}
	return a, true
}

func (a *shiftAction) Next(s scene.State) scene.State {
	it, ok := s.Get(a.id)
	if !ok {
		return s
	}
	return s.Put(it.Move(a.dx, 0))
}

func (a *shiftAction) Prev(s scene.State) scene.State {
	if a.before == nil {
		return s
	}
	return s.Put(a.before)
}

func (a *shiftAction) Description() string { return "shift" }

func TestPushUndoRedo(t *testing.T) {
	h := New(scene.State{}, 0)
	if h.CanUndo() || h.CanRedo() || h.Index() != -1 {
		t.Fatal("new history should be empty")
	}

	h.Push(&addAction{})
	if !h.State().Has(1) || h.Index() != 0 {
		t.Fatalf("push: index = %d", h.Index())
	}
	if !h.Undo() || h.State().Has(1) {
		t.Fatal("undo should remove item")
	}
	if h.Undo() {
		t.Error("undo at boundary should return false")
	}
	if !h.Redo() || !h.State().Has(1) {
		t.Fatal("redo should restore item")
	}
	if h.Redo() {
		t.Error("redo at boundary should return false")
	}
}

func TestReplayDeterminism(t *testing.T) {
	const n = 5
	h := New(scene.State{}, 0)
	var after []scene.State
	for i := 0; i < n; i++ {
		h.Push(&addAction{})
		h.Push(&shiftAction{id: item.ID(i + 1), origin: geom.Pt(float64(i), 0), dx: 3})
		after = append(after, h.State())
	}
	if !h.Replay().Equal(h.State()) {
		t.Fatal("replay differs from state")
	}

	for h.Undo() {
	}
	if !h.State().Equal(scene.State{}) {
		t.Fatal("undo all should reach the initial state")
	}

	for i := 0; i < n; i++ {
		h.Redo()
		h.Redo()
		if !h.State().Equal(after[i]) {
			t.Errorf("state after redo %d differs", i)
		}
		if !h.Replay().Equal(h.State()) {
			t.Errorf("replay differs at %d", i)
		}
	}
}

func TestPushDiscardsRedoTail(t *testing.T) {
	h := New(scene.State{}, 0)
	h.Push(&addAction{})
	h.Push(&addAction{})
	h.Undo()
	h.Push(&shiftAction{id: 1, dx: 1})

	if h.Len() != 2 || h.CanRedo() {
		t.Errorf("len = %d, canRedo = %v", h.Len(), h.CanRedo())
	}
}

func TestCoalescing(t *testing.T) {
	h := New(scene.State{}, 0)
	h.Push(&addAction{})
	before := h.State()

	origin := geom.Pt(5, 5)
	h.Push(&shiftAction{id: 1, origin: origin, dx: 2})
	id := h.Entries()[1].ID
	h.Push(&shiftAction{id: 1, origin: origin, dx: 7})

	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
	if got := h.Entries()[1].ID; got != id {
		t.Errorf("merged entry id = %s, want %s", got, id)
	}
	it, _ := h.State().Get(1)
	if it.BBox().Min.X != 7 {
		t.Errorf("x = %v, want 7", it.BBox().Min.X)
	}

	h.Undo()
	if !h.State().Equal(before) {
		t.Error("undo should restore the pre-gesture state")
	}
}

func TestNoCoalescingAcrossGestures(t *testing.T) {
	h := New(scene.State{}, 0)
	h.Push(&addAction{})
	h.Push(&shiftAction{id: 1, origin: geom.Pt(0, 0), dx: 2})
	h.Push(&shiftAction{id: 1, origin: geom.Pt(9, 9), dx: 2})
	if h.Len() != 3 {
		t.Errorf("len = %d, want 3", h.Len())
	}
}

func TestLastAndNextAction(t *testing.T) {
	h := New(scene.State{}, 0)
	if h.LastAction() != Empty || h.NextAction() != Empty {
		t.Fatal("expected Empty at both ends")
	}
	h.Push(&addAction{})
	if h.LastAction().Description() != "add" {
		t.Error("LastAction should be the pushed action")
	}
	h.Undo()
	if h.LastAction() != Empty || h.NextAction().Description() != "add" {
		t.Error("NextAction should be the undone action")
	}
}

func TestMaxEntriesFoldsIntoInitial(t *testing.T) {
	h := New(scene.State{}, 2)
	for i := 0; i < 4; i++ {
		h.Push(&addAction{})
	}
	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
	if h.Initial().Len() != 2 {
		t.Errorf("initial has %d items, want 2", h.Initial().Len())
	}
	if !h.Replay().Equal(h.State()) {
		t.Error("replay differs after trimming")
	}
	for h.Undo() {
	}
	if h.State().Len() != 2 {
		t.Errorf("state after undo all has %d items, want 2", h.State().Len())
	}
}

func TestGroup(t *testing.T) {
	h := New(scene.State{}, 0)
	h.Push(&addAction{})

	h.BeginGroup("macro")
	h.Push(&addAction{})
	h.Push(&addAction{})
	h.Push(&shiftAction{id: 3, dx: 4})
	h.EndGroup()

	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
	if h.LastAction().Description() != "macro" {
		t.Errorf("description = %q", h.LastAction().Description())
	}
	h.Undo()
	if h.State().Len() != 1 {
		t.Errorf("undo group: %d items, want 1", h.State().Len())
	}
	h.Redo()
	if h.State().Len() != 3 || !h.Replay().Equal(h.State()) {
		t.Error("redo group did not restore state")
	}
}

func TestGroupDoesNotMergeAcrossBoundary(t *testing.T) {
	h := New(scene.State{}, 0)
	h.Push(&addAction{})
	h.Push(&shiftAction{id: 1, dx: 1})

	h.BeginGroup("g")
	h.Push(&shiftAction{id: 1, dx: 5})
	h.EndGroup()

	if h.Len() != 3 {
		t.Errorf("len = %d, want 3", h.Len())
	}
}

func TestTransactionRollback(t *testing.T) {
	h := New(scene.State{}, 0)
	h.Push(&addAction{})
	want := h.State()

	errBoom := errors.New("boom")
	err := h.Transaction("tx", func() error {
		h.Push(&addAction{})
		h.Push(&addAction{})
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v", err)
	}
	if h.Len() != 1 || !h.State().Equal(want) {
		t.Errorf("rollback failed: len = %d", h.Len())
	}
	if h.IsGrouping() {
		t.Error("group left open")
	}
}

func TestCappedHistoryTransaction(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		name      string
		err       error
		wantLen   int
		wantItems int
	}{
		{"rollback", errBoom, 1, 1},
		{"commit", nil, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(scene.State{}, 2)
			h.Push(&addAction{})

			err := h.Transaction("tx", func() error {
				for i := 0; i < 3; i++ {
					h.Push(&addAction{})
				}
				return tt.err
			})
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if h.Len() != tt.wantLen {
				t.Errorf("len = %d, want %d", h.Len(), tt.wantLen)
			}
			if got := h.State().Len(); got != tt.wantItems {
				t.Errorf("items = %d, want %d", got, tt.wantItems)
			}
			if !h.Replay().Equal(h.State()) {
				t.Error("replay differs from state")
			}
		})
	}
}

func TestCapAppliesAfterGroupEnds(t *testing.T) {
	h := New(scene.State{}, 2)
	h.Push(&addAction{})
	h.Push(&addAction{})

	h.BeginGroup("g")
	h.Push(&addAction{})
	h.Push(&addAction{})
	if h.Len() != 4 {
		t.Fatalf("open group trimmed: len = %d, want 4", h.Len())
	}
	h.EndGroup()

	if h.Len() != 2 {
		t.Errorf("len = %d, want 2", h.Len())
	}
	if h.Initial().Len() != 1 {
		t.Errorf("initial has %d items, want 1", h.Initial().Len())
	}
	h.Undo()
	if h.State().Len() != 2 {
		t.Errorf("undo group: %d items, want 2", h.State().Len())
	}
}

func TestCompoundPrepare(t *testing.T) {
	h := New(scene.State{}, 0)
	h.Push(&Compound{Name: "two", Actions: []Action{&addAction{}, &addAction{}}})
	if h.State().Len() != 2 || !h.State().Has(2) {
		t.Fatalf("compound add: %v", h.State().ZList())
	}
	h.Undo()
	if h.State().Len() != 0 {
		t.Error("compound undo incomplete")
	}
}

func TestReset(t *testing.T) {
	h := New(scene.State{}, 0)
	h.Push(&addAction{})
	s := scene.New()
	h.Reset(s)
	if h.Len() != 0 || h.Index() != -1 || h.CanUndo() {
		t.Error("reset should clear entries")
	}
}
