package session

import (
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	id := NewID("debug_assistant")
	if !strings.HasPrefix(id, "debug_assistant-") {
		t.Errorf("NewID = %q, want type prefix", id)
	}
	suffix := strings.TrimPrefix(id, "debug_assistant-")
	if len(suffix) != 8 {
		t.Errorf("suffix %q, want 8 hex chars", suffix)
	}
	for _, c := range suffix {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Errorf("suffix %q contains non-hex %q", suffix, c)
		}
	}

	t.Run("unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := NewID("x")
			if seen[id] {
				t.Fatalf("duplicate ID %q", id)
			}
			seen[id] = true
		}
	})

	t.Run("slugs messy types", func(t *testing.T) {
		id := NewID("My Agent!")
		if !strings.HasPrefix(id, "my_agent-") {
			t.Errorf("NewID(messy) = %q, want slugged prefix", id)
		}
	})
}

func TestNewTeamID(t *testing.T) {
	if id := NewTeamID(); !strings.HasPrefix(id, "team-") {
		t.Errorf("NewTeamID = %q", id)
	}
}
