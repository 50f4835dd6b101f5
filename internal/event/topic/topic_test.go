package topic

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"scene.changed", "scene.changed", true},
		{"scene.changed", "scene.*", true},
		{"scene.changed", "*.changed", true},
		{"scene.changed", "**", true},
		{"scene.changed", "scene.**", true},
		{"scene", "scene.**", true},
		{"scene.item.added", "scene.*", false},
		{"scene.item.added", "scene.**", true},
		{"scene.item.added", "**.added", true},
		{"mode.changed", "scene.*", false},
		{"scene.changed", "scene.changed.now", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.topic)+"~"+string(tt.pattern), func(t *testing.T) {
			if got := tt.topic.Matches(tt.pattern); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"scene.changed", true},
		{"", false},
		{".scene", false},
		{"scene.", false},
		{"scene..changed", false},
	}
	for _, tt := range tests {
		if got := tt.topic.IsValid(); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestIsWildcardAndJoin(t *testing.T) {
	if !Topic("*.changed").IsWildcard() || Topic("scene.changed").IsWildcard() {
		t.Error("IsWildcard mismatch")
	}
	if got := Join("history", "changed"); got != "history.changed" {
		t.Errorf("Join = %q", got)
	}
}
