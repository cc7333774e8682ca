package session

import (
	"os"
	"testing"
	"time"
)

func TestProcessAlive(t *testing.T) {
	t.Run("own process", func(t *testing.T) {
		if !ProcessAlive(os.Getpid()) {
			t.Error("ProcessAlive(self) = false")
		}
	})

	t.Run("invalid pids", func(t *testing.T) {
		if ProcessAlive(0) || ProcessAlive(-1) {
			t.Error("ProcessAlive accepted a non-positive PID")
		}
	})

	t.Run("nonexistent pid", func(t *testing.T) {
		// Max PID on Linux defaults to 4194304; this one can't exist.
		if ProcessAlive(1 << 30) {
			t.Error("ProcessAlive(huge) = true")
		}
	})
}

func TestSessionOwns(t *testing.T) {
	self := os.Getpid()
	created, err := ProcessCreateMS(self)
	if err != nil {
		t.Fatalf("ProcessCreateMS(self): %v", err)
	}

	t.Run("matching creation time", func(t *testing.T) {
		s := &Session{PID: self, ProcessCreateMS: created}
		if !s.Owns(self) {
			t.Error("Owns(self) = false with matching creation time")
		}
	})

	t.Run("within slack", func(t *testing.T) {
		s := &Session{PID: self, ProcessCreateMS: created + 900}
		if !s.Owns(self) {
			t.Error("Owns rejected a creation time within the 1s slack")
		}
	})

	t.Run("recycled pid", func(t *testing.T) {
		// Creation time recorded hours before the live process started:
		// the PID was reused, so the session's process is gone.
		s := &Session{PID: self, ProcessCreateMS: created - 4*time.Hour.Milliseconds()}
		if s.Owns(self) {
			t.Error("Owns accepted a PID with a mismatched creation time")
		}
	})

	t.Run("no recorded creation time", func(t *testing.T) {
		s := &Session{PID: self}
		if !s.Owns(self) {
			t.Error("Owns must fall back to existence when no creation time was recorded")
		}
	})

	t.Run("dead pid", func(t *testing.T) {
		s := &Session{PID: 1 << 30, ProcessCreateMS: created}
		if s.Alive() {
			t.Error("Alive() = true for a nonexistent PID")
		}
	})
}
