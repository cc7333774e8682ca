// Package history archives completed sessions in SQLite so they can be
// queried after their completion logs scroll by. The live tracker never
// reads from here; this is bookkeeping only.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognitive-os/orchestra/internal/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id       TEXT PRIMARY KEY,
	agent_type       TEXT NOT NULL,
	agent_name       TEXT NOT NULL,
	start_time       TEXT NOT NULL,
	duration_seconds INTEGER NOT NULL,
	completion_time  TEXT NOT NULL,
	status           TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_type ON sessions(agent_type);
CREATE INDEX IF NOT EXISTS idx_sessions_completed ON sessions(completion_time);
`

// Store is the session archive.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the archive at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	// A single writer (the monitor) plus occasional readers; one
	// connection sidesteps SQLITE_BUSY entirely.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the archive.
func (s *Store) Close() error {
	return s.db.Close()
}

// toUTC re-renders an RFC3339 timestamp in UTC. Stored timestamps are
// compared lexicographically, which only orders correctly when every row
// uses the same offset. Unparseable input is stored as-is.
func toUTC(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.UTC().Format(time.RFC3339)
}

// Record archives a completion log. Re-recording a session ID replaces
// the previous row, matching the overwrite semantics of the JSON logs.
func (s *Store) Record(ctx context.Context, entry *session.CompletionLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sessions
			(session_id, agent_type, agent_name, start_time, duration_seconds, completion_time, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID, entry.AgentType, entry.AgentName,
		toUTC(entry.StartTime), entry.DurationSeconds, toUTC(entry.CompletionTime), entry.Status,
	)
	if err != nil {
		return fmt.Errorf("recording session %s: %w", entry.SessionID, err)
	}
	return nil
}

// Filter narrows a Query. Zero fields match everything.
type Filter struct {
	Type   string
	Status string
	Since  time.Time
	Limit  int
}

// Query returns archived sessions, newest first.
func (s *Store) Query(ctx context.Context, f Filter) ([]session.CompletionLog, error) {
	q := `SELECT session_id, agent_type, agent_name, start_time, duration_seconds, completion_time, status
	      FROM sessions WHERE 1=1`
	var args []interface{}
	if f.Type != "" {
		q += " AND agent_type = ?"
		args = append(args, f.Type)
	}
	if f.Status != "" {
		q += " AND status = ?"
		args = append(args, f.Status)
	}
	if !f.Since.IsZero() {
		q += " AND completion_time >= ?"
		args = append(args, f.Since.UTC().Format(time.RFC3339))
	}
	q += " ORDER BY completion_time DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []session.CompletionLog
	for rows.Next() {
		var e session.CompletionLog
		if err := rows.Scan(&e.SessionID, &e.AgentType, &e.AgentName,
			&e.StartTime, &e.DurationSeconds, &e.CompletionTime, &e.Status); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of archived sessions matching the filter.
func (s *Store) Count(ctx context.Context, f Filter) (int, error) {
	q := `SELECT COUNT(*) FROM sessions WHERE 1=1`
	var args []interface{}
	if f.Type != "" {
		q += " AND agent_type = ?"
		args = append(args, f.Type)
	}
	if f.Status != "" {
		q += " AND status = ?"
		args = append(args, f.Status)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history: %w", err)
	}
	return n, nil
}
