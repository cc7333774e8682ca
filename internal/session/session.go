// Package session provides the session model and the disk-backed tracker
// for spawned terminal-agent processes. Records live as JSON files under
// the state root so separate CLI invocations (spawn, ls, stop, monitor)
// share one view of the world.
package session

import (
	"time"
)

// Status is a session's lifecycle state.
type Status string

const (
	StatusRunning    Status = "running"
	StatusCompleted  Status = "completed"
	StatusHung       Status = "hung"
	StatusTerminated Status = "terminated"
)

// Session tracks one spawned terminal-agent process.
type Session struct {
	ID        string    `json:"session_id"`
	Type      string    `json:"agent_type"`
	AgentName string    `json:"agent_name"`
	PID       int       `json:"pid"`
	StartTime time.Time `json:"start_time"`

	// ProcessCreateMS is the OS-reported creation time of PID at spawn,
	// in milliseconds since the epoch. A liveness probe that sees a
	// different creation time for the same PID is looking at a recycled
	// PID, not this session's process.
	ProcessCreateMS int64 `json:"process_create_ms"`

	Emulator string `json:"emulator"`
	WorkDir  string `json:"workdir,omitempty"`

	// Duration is the requested number of work steps (seconds).
	Duration int `json:"duration"`
	Priority int `json:"priority"`

	Status          Status    `json:"status"`
	StatusChangedAt time.Time `json:"status_changed_at"`
}

// Uptime is how long the session has been tracked.
func (s *Session) Uptime() time.Duration {
	return time.Since(s.StartTime)
}
