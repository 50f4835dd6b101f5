package key

import (
	"errors"
	"testing"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"d", "d"},
		{"D", "D"},
		{"shift+d", "D"},
		{"esc", "esc"},
		{"Escape", "esc"},
		{"<Esc>", "esc"},
		{"mod+z", "ctrl+z"},
		{"Ctrl+Z", "ctrl+shift+z"},
		{"ctrl+shift+z", "ctrl+shift+z"},
		{"mod+shift+z", "ctrl+shift+z"},
		{"<C-z>", "ctrl+z"},
		{"shift+up", "shift+up"},
		{"<S-Up>", "shift+up"},
		{"Delete", "delete"},
		{"backspace", "backspace"},
		{"+", "+"},
		{"mod++", "ctrl++"},
		{"-", "-"},
		{"space", "space"},
		{"alt+enter", "alt+enter"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			ev, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.spec, err)
			}
			if got := ev.Chord(); got != tt.want {
				t.Errorf("Chord() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"  ", ErrEmptySpec},
		{"hyper+z", ErrInvalidSpec},
		{"ctrl+", ErrInvalidSpec},
		{"bogus", ErrInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) err = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestEventChordMatchesParsedSpec(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		spec string
	}{
		{"ctrl z", NewRuneEvent('z', ModCtrl), "mod+z"},
		{"terminal ctrl shift z", NewRuneEvent('Z', ModCtrl), "ctrl+shift+z"},
		{"shifted letter", NewRuneEvent('D', ModShift), "D"},
		{"escape", NewSpecialEvent(KeyEscape, ModNone), "esc"},
		{"question mark with shift", NewRuneEvent('?', ModShift), "?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.ev.Equals(MustParse(tt.spec)) {
				t.Errorf("%q != %q", tt.ev.Chord(), MustParse(tt.spec).Chord())
			}
		})
	}
}

func TestModifierString(t *testing.T) {
	m := ModShift.With(ModCtrl).With(ModMeta)
	if got := m.String(); got != "ctrl+shift+meta" {
		t.Errorf("String() = %q", got)
	}
	if !m.Has(ModCtrl) || m.Without(ModCtrl).Has(ModCtrl) {
		t.Error("Has/Without broken")
	}
	if ModifierFromName("MOD") != ModPrimary {
		t.Error("mod alias should resolve to the primary modifier")
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParse("nope+x")
}
