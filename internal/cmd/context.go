package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/cognitive-os/orchestra/internal/config"
	"github.com/cognitive-os/orchestra/internal/history"
	"github.com/cognitive-os/orchestra/internal/monitor"
	"github.com/cognitive-os/orchestra/internal/orchestrator"
	"github.com/cognitive-os/orchestra/internal/session"
)

// appContext carries the wired components a command needs. Built per
// invocation; there is no global orchestrator.
type appContext struct {
	cfg      *config.Config
	registry *config.Registry
	tracker  *session.Tracker
	logger   *log.Logger
	archive  *history.Store // may be nil
	orch     *orchestrator.Orchestrator
}

// newAppContext wires everything up from the state root. withLog routes
// orchestrator logging to the shared log file; commands that only read
// state pass false and log nowhere.
func newAppContext(withLog bool) (*appContext, error) {
	cfg := config.FromEnv()
	if rootFlagRoot != "" {
		cfg.Root = rootFlagRoot
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("preparing state root %s: %w", cfg.Root, err)
	}

	registry, err := config.LoadRegistry(cfg.AgentsFile())
	if err != nil {
		return nil, err
	}

	tracker, err := session.NewTracker(cfg.RecordsDir())
	if err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, "", 0)
	if withLog {
		if l, err := monitor.NewLogger(cfg); err == nil {
			logger = l
		}
	}

	// Archive is best-effort: a locked or unreadable database shouldn't
	// stop spawn/stop from working.
	archive, err := history.Open(cfg.HistoryDB())
	if err != nil {
		logger.Printf("History archive unavailable: %v", err)
		archive = nil
	}

	orch, err := orchestrator.New(cfg, registry, tracker, logger, archive)
	if err != nil {
		if archive != nil {
			archive.Close()
		}
		return nil, err
	}

	return &appContext{
		cfg:      cfg,
		registry: registry,
		tracker:  tracker,
		logger:   logger,
		archive:  archive,
		orch:     orch,
	}, nil
}

// close releases the context's resources.
func (a *appContext) close() {
	if a.archive != nil {
		_ = a.archive.Close()
	}
}
