// Package orchestrator wires the agent registry, terminal launcher, and
// session tracker into the spawn/terminate surface the CLI exposes.
// There are no package-level singletons; everything hangs off an
// Orchestrator built from an explicit Config.
package orchestrator

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cognitive-os/orchestra/internal/agent"
	"github.com/cognitive-os/orchestra/internal/config"
	"github.com/cognitive-os/orchestra/internal/history"
	"github.com/cognitive-os/orchestra/internal/session"
	"github.com/cognitive-os/orchestra/internal/terminal"
)

// Orchestrator manages spawned terminal-agent sessions.
type Orchestrator struct {
	cfg       *config.Config
	registry  *config.Registry
	tracker   *session.Tracker
	logger    *log.Logger
	archive   *history.Store // optional
	emulators []terminal.Emulator
	exe       string

	// Test seams. Production values are set by New.
	launch   func(terminal.Emulator, terminal.Window, string, []string) (*terminal.Handle, error)
	createMS func(int) (int64, error)
}

// New builds an orchestrator. Emulators are detected once here; archive
// may be nil to skip SQLite bookkeeping on terminate.
func New(cfg *config.Config, registry *config.Registry, tracker *session.Tracker, logger *log.Logger, archive *history.Store) (*Orchestrator, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("preparing state root: %w", err)
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locating own binary: %w", err)
	}
	return &Orchestrator{
		cfg:       cfg,
		registry:  registry,
		tracker:   tracker,
		logger:    logger,
		archive:   archive,
		emulators: terminal.Detect(),
		exe:       exe,
		launch:    terminal.Launch,
		createMS:  session.ProcessCreateMS,
	}, nil
}

// Emulators returns the terminal emulators detected at construction.
func (o *Orchestrator) Emulators() []terminal.Emulator {
	return o.emulators
}

// Tracker exposes the session tracker for read-side consumers.
func (o *Orchestrator) Tracker() *session.Tracker {
	return o.tracker
}

// SpawnOverrides adjust a single spawn away from the registry defaults.
type SpawnOverrides struct {
	Duration int
	Geometry string
	WorkDir  string
	Emulator terminal.Emulator
}

// SpawnResult reports a successful spawn.
type SpawnResult struct {
	SessionID string    `json:"session_id"`
	PID       int       `json:"pid"`
	AgentType string    `json:"agent_type"`
	Emulator  string    `json:"terminal_type"`
	StartTime time.Time `json:"start_time"`
}

// Spawn launches one agent in a new terminal window. The session record
// and PID file are on disk before Spawn returns, so a concurrent monitor
// pass can never miss the session.
func (o *Orchestrator) Spawn(agentType string, ov SpawnOverrides) (*SpawnResult, error) {
	cfg, err := o.registry.Get(agentType)
	if err != nil {
		return nil, err
	}

	duration := cfg.Duration
	if ov.Duration > 0 {
		duration = ov.Duration
	}
	geometry := cfg.Geometry
	if ov.Geometry != "" {
		geometry = ov.Geometry
	}

	emu, err := terminal.Pick(o.emulators, ov.Emulator)
	if err != nil {
		return nil, err
	}

	id := session.NewID(agentType)
	window := terminal.Window{
		Title:    fmt.Sprintf("%s [%s]", cfg.Name, id),
		Geometry: geometry,
		X:        cfg.X,
		Y:        cfg.Y,
	}

	handle, err := o.launch(emu, window, ov.WorkDir, agent.Argv(o.exe, o.cfg.Root, agentType, id, duration))
	if err != nil {
		o.logger.Printf("Failed to spawn %s: %v", agentType, err)
		return nil, err
	}

	now := time.Now()
	s := &session.Session{
		ID:        id,
		Type:      agentType,
		AgentName: cfg.Name,
		PID:       handle.PID,
		StartTime: now,
		Emulator:  string(emu),
		WorkDir:   ov.WorkDir,
		Duration:  duration,
		Priority:  cfg.Priority,
		Status:    session.StatusRunning,
	}
	// Creation time is best-effort; a launcher that exited already just
	// means the next monitor pass completes the session.
	if ms, err := o.createMS(handle.PID); err == nil {
		s.ProcessCreateMS = ms
	}

	if err := o.tracker.Register(s); err != nil {
		return nil, err
	}
	if err := session.TrackPID(o.cfg.PidsDir(), id, handle.PID); err != nil {
		o.logger.Printf("Session %s: PID tracking: %v", id, err)
	}

	o.logger.Printf("Spawned %s (ID: %s, PID: %d, %s)", cfg.Name, id, handle.PID, emu)
	return &SpawnResult{
		SessionID: id,
		PID:       handle.PID,
		AgentType: agentType,
		Emulator:  string(emu),
		StartTime: now,
	}, nil
}

// TeamResult reports a team spawn.
type TeamResult struct {
	TeamID  string         `json:"team_id"`
	Agents  []*SpawnResult `json:"agents"`
	Failed  string         `json:"failed_type,omitempty"`
	Err     error          `json:"-"`
	Spawned time.Time      `json:"spawn_time"`
}

// SpawnTeam launches a coordinated set of agents with a delay between
// spawns. Stops at the first failure; already-spawned members keep
// running.
func (o *Orchestrator) SpawnTeam(types []string, delay time.Duration) *TeamResult {
	result := &TeamResult{
		TeamID:  session.NewTeamID(),
		Spawned: time.Now(),
	}
	o.logger.Printf("Spawning agent team %s: %v", result.TeamID, types)

	for i, t := range types {
		r, err := o.Spawn(t, SpawnOverrides{})
		if err != nil {
			result.Failed = t
			result.Err = err
			o.logger.Printf("Team %s: spawn failed at %s: %v", result.TeamID, t, err)
			return result
		}
		result.Agents = append(result.Agents, r)
		if i < len(types)-1 {
			time.Sleep(delay)
		}
	}

	o.logger.Printf("Team spawn complete: %s", result.TeamID)
	return result
}

// Shutdown gracefully terminates every tracked session, then sweeps the
// PID files for orphans that survived (e.g. reparented after the
// emulator window closed).
func (o *Orchestrator) Shutdown() {
	o.logger.Printf("Shutting down all active agents")
	for _, s := range o.tracker.List() {
		if err := o.Terminate(s.ID, true); err != nil {
			o.logger.Printf("Session %s: shutdown terminate: %v", s.ID, err)
		}
	}
	if killed, errs := session.KillTrackedPIDs(o.cfg.PidsDir()); killed > 0 || len(errs) > 0 {
		o.logger.Printf("Orphan sweep: %d killed, %d errors", killed, len(errs))
	}
}
