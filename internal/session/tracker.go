package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cognitive-os/orchestra/internal/util"
)

// Tracker is the session registry: a mutex-guarded in-memory map backed
// by one JSON record file per session. Every mutation is persisted
// before it is visible, so a concurrently running monitor (or a later
// CLI invocation) never sees a session that isn't on disk.
type Tracker struct {
	mu       sync.Mutex
	dir      string
	sessions map[string]*Session
}

// NewTracker opens the tracker over the given records directory,
// loading any existing session records.
func NewTracker(dir string) (*Tracker, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating records directory: %w", err)
	}
	t := &Tracker{dir: dir, sessions: make(map[string]*Session)}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tracker) recordPath(id string) string {
	return filepath.Join(t.dir, id+".json")
}

// Reload re-reads all records from disk, replacing the in-memory map.
// Corrupt record files are skipped and removed.
func (t *Tracker) Reload() error {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		return fmt.Errorf("reading records directory: %w", err)
	}

	sessions := make(map[string]*Session)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		path := filepath.Join(t.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var s Session
		if err := json.Unmarshal(data, &s); err != nil || s.ID == "" {
			// Corrupt record, drop it
			_ = os.Remove(path)
			continue
		}
		sessions[s.ID] = &s
	}

	t.mu.Lock()
	t.sessions = sessions
	t.mu.Unlock()
	return nil
}

// Register persists and tracks a new session. The record hits disk
// before Register returns, closing the spawn/poll race: the monitor only
// ever acts on sessions it can read back.
func (t *Tracker) Register(s *Session) error {
	if s.ID == "" {
		return fmt.Errorf("registering session: empty ID")
	}
	if s.Status == "" {
		s.Status = StatusRunning
	}
	if s.StatusChangedAt.IsZero() {
		s.StatusChangedAt = s.StartTime
	}
	if err := util.AtomicWriteJSON(t.recordPath(s.ID), s); err != nil {
		return fmt.Errorf("persisting session %s: %w", s.ID, err)
	}

	t.mu.Lock()
	cp := *s
	t.sessions[s.ID] = &cp
	t.mu.Unlock()
	return nil
}

// Get returns a copy of the session, or false if untracked.
func (t *Tracker) Get(id string) (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// List returns copies of all tracked sessions, ordered by start time.
func (t *Tracker) List() []Session {
	t.mu.Lock()
	out := make([]Session, 0, len(t.sessions))
	for _, s := range t.sessions {
		out = append(out, *s)
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// Len returns the number of tracked sessions.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// SetStatus records a status transition and persists it.
func (t *Tracker) SetStatus(id string, status Status) error {
	t.mu.Lock()
	s, ok := t.sessions[id]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("session %s: not tracked", id)
	}
	s.Status = status
	s.StatusChangedAt = time.Now()
	cp := *s
	t.mu.Unlock()

	if err := util.AtomicWriteJSON(t.recordPath(id), &cp); err != nil {
		return fmt.Errorf("persisting session %s: %w", id, err)
	}
	return nil
}

// Remove untracks a session and deletes its record file.
func (t *Tracker) Remove(id string) error {
	t.mu.Lock()
	delete(t.sessions, id)
	t.mu.Unlock()

	if err := os.Remove(t.recordPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing record for %s: %w", id, err)
	}
	return nil
}
