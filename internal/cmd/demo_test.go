package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"testing"
	"time"

	"github.com/cognitive-os/orchestra/internal/config"
	"github.com/cognitive-os/orchestra/internal/dashboard"
	"github.com/cognitive-os/orchestra/internal/monitor"
	"github.com/cognitive-os/orchestra/internal/session"
)

func TestObserveReapsFinishedAgents(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.PollInterval = 10 * time.Millisecond
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	tracker, err := session.NewTracker(cfg.RecordsDir())
	if err != nil {
		t.Fatal(err)
	}

	// A session whose process is already gone: a demo agent that
	// finished its script while the observe loop was running.
	done := &session.Session{
		ID:        "docs_writer-deadbeef",
		Type:      "docs_writer",
		AgentName: "Documentation Writer",
		PID:       1 << 30,
		StartTime: time.Now().Add(-12 * time.Second),
	}
	if err := tracker.Register(done); err != nil {
		t.Fatal(err)
	}

	m := monitor.New(cfg, tracker, log.New(os.Stderr, "", 0), nil)
	agg := dashboard.New(tracker, nil)

	observe(context.Background(), m, agg, cfg.PollInterval, 100*time.Millisecond)

	if tracker.Len() != 0 {
		t.Errorf("still tracking %d sessions after observe", tracker.Len())
	}

	data, err := os.ReadFile(session.CompletionLogPath(cfg.SessionsDir(), done.ID))
	if err != nil {
		t.Fatalf("completion log: %v", err)
	}
	var entry session.CompletionLog
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Status != session.CompletedSuccessfully {
		t.Errorf("Status = %q, want completed_successfully (not left for shutdown to terminate)", entry.Status)
	}
}

func TestObserveStopsOnCancel(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.PollInterval = 10 * time.Millisecond
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	tracker, err := session.NewTracker(cfg.RecordsDir())
	if err != nil {
		t.Fatal(err)
	}
	m := monitor.New(cfg, tracker, log.New(os.Stderr, "", 0), nil)
	agg := dashboard.New(tracker, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	observe(ctx, m, agg, cfg.PollInterval, time.Minute)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("observe ran %v after cancel", elapsed)
	}
}
