package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cognitive-os/orchestra/internal/util"
)

// Completion statuses recorded in the JSON log.
const (
	CompletedSuccessfully = "completed_successfully"
	CompletedTerminated   = "terminated"
	CompletedHung         = "hung"
)

// CompletionLog is the record written to
// terminal_sessions/session_<id>.json when a session leaves the tracker.
type CompletionLog struct {
	SessionID       string `json:"session_id"`
	AgentType       string `json:"agent_type"`
	AgentName       string `json:"agent_name"`
	StartTime       string `json:"start_time"`
	DurationSeconds int    `json:"duration_seconds"`
	CompletionTime  string `json:"completion_time"`
	Status          string `json:"status"`
}

// CompletionLogPath returns where a session's completion log lands.
func CompletionLogPath(sessionsDir, sessionID string) string {
	return filepath.Join(sessionsDir, fmt.Sprintf("session_%s.json", sessionID))
}

// WriteCompletionLog writes exactly one completion log for the session
// and returns the record. The write is atomic; re-completing the same
// session overwrites rather than duplicating.
func WriteCompletionLog(sessionsDir string, s *Session, status string) (*CompletionLog, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating sessions directory: %w", err)
	}

	// Timestamps are UTC so the history archive's lexicographic
	// RFC3339 comparisons order correctly across offset changes.
	now := time.Now().UTC()
	entry := &CompletionLog{
		SessionID:       s.ID,
		AgentType:       s.Type,
		AgentName:       s.AgentName,
		StartTime:       s.StartTime.UTC().Format(time.RFC3339),
		DurationSeconds: int(now.Sub(s.StartTime).Seconds()),
		CompletionTime:  now.Format(time.RFC3339),
		Status:          status,
	}

	path := CompletionLogPath(sessionsDir, s.ID)
	if err := util.AtomicWriteJSON(path, entry); err != nil {
		return nil, fmt.Errorf("writing completion log: %w", err)
	}
	return entry, nil
}
