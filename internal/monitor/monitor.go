// Package monitor runs the liveness poll loop over tracked sessions.
// One monitor owns a state root at a time, enforced with a file lock.
package monitor

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cognitive-os/orchestra/internal/config"
	"github.com/cognitive-os/orchestra/internal/history"
	"github.com/cognitive-os/orchestra/internal/session"
	"github.com/cognitive-os/orchestra/internal/util"
)

// Monitor polls tracked sessions and reclassifies them:
// running → completed when the process is gone (or its PID was recycled),
// running → hung when nothing has changed for the hang threshold.
// Completed sessions get exactly one completion log, an archive row, and
// are removed from the tracker.
type Monitor struct {
	cfg     *config.Config
	tracker *session.Tracker
	logger  *log.Logger
	archive *history.Store // may be nil; archiving is best-effort

	// alive is swapped in tests to avoid real processes.
	alive func(*session.Session) bool
}

// New creates a monitor. archive may be nil to skip SQLite archiving.
func New(cfg *config.Config, tracker *session.Tracker, logger *log.Logger, archive *history.Store) *Monitor {
	return &Monitor{
		cfg:     cfg,
		tracker: tracker,
		logger:  logger,
		archive: archive,
		alive:   (*session.Session).Alive,
	}
}

// NewLogger opens the shared file-backed logger under the state root.
func NewLogger(cfg *config.Config) (*log.Logger, error) {
	if err := os.MkdirAll(cfg.RuntimeDir(), 0755); err != nil {
		return nil, fmt.Errorf("creating runtime directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return log.New(f, "", log.LstdFlags), nil
}

// Run polls every PollInterval until ctx is canceled. It holds the
// monitor lock for the whole run; a second monitor on the same root
// fails fast instead of double-logging completions.
func (m *Monitor) Run(ctx context.Context) error {
	lock := util.NewFileLock(m.cfg.MonitorLock())
	locked, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !locked {
		return fmt.Errorf("monitor already running (lock held by another process)")
	}
	defer func() { _ = lock.Unlock() }()

	m.logger.Printf("Monitor starting (PID %d), poll interval %v", os.Getpid(), m.cfg.PollInterval)

	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Printf("Monitor stopping")
			return nil
		case <-ticker.C:
			m.Poll()
		}
	}
}

// Poll performs one monitoring pass. Errors are logged, never fatal:
// the next tick gets another chance.
func (m *Monitor) Poll() {
	// Pick up sessions spawned by other processes since the last pass.
	if err := m.tracker.Reload(); err != nil {
		m.logger.Printf("Poll: reload failed: %v", err)
		return
	}

	for _, s := range m.tracker.List() {
		s := s
		if !m.alive(&s) {
			m.complete(&s)
			continue
		}
		if s.Status == session.StatusRunning && time.Since(s.StatusChangedAt) > m.cfg.HangThreshold {
			m.logger.Printf("Session %s may be hung (no change for %v)", s.ID, time.Since(s.StatusChangedAt).Round(time.Second))
			if err := m.tracker.SetStatus(s.ID, session.StatusHung); err != nil {
				m.logger.Printf("Session %s: marking hung: %v", s.ID, err)
			}
		}
	}
}

// complete moves an exited session out of the tracker: one completion
// log, one archive row, PID file gone, record gone, in that order, so a
// crash mid-way errs toward duplicate logs rather than lost ones.
func (m *Monitor) complete(s *session.Session) {
	status := session.CompletedSuccessfully
	if s.Status == session.StatusHung {
		status = session.CompletedHung
	}

	entry, err := session.WriteCompletionLog(m.cfg.SessionsDir(), s, status)
	if err != nil {
		m.logger.Printf("Session %s: completion log: %v", s.ID, err)
		return // keep tracked; retry next pass
	}

	if m.archive != nil {
		if err := m.archive.Record(context.Background(), entry); err != nil {
			m.logger.Printf("Session %s: archive: %v", s.ID, err)
		}
	}

	session.UntrackPID(m.cfg.PidsDir(), s.ID)
	if err := m.tracker.Remove(s.ID); err != nil {
		m.logger.Printf("Session %s: untrack: %v", s.ID, err)
		return
	}
	m.logger.Printf("%s completed (%ds)", s.AgentName, entry.DurationSeconds)
}
