// Package config provides orchestrator configuration and the agent registry.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Default timing parameters. Each can be overridden via environment
// variables (see FromEnv) without touching the agent registry.
const (
	DefaultPollInterval   = 5 * time.Second
	DefaultHangThreshold  = 300 * time.Second
	DefaultTerminateGrace = 5 * time.Second
	DefaultTeamDelay      = 2 * time.Second
)

// Config holds the orchestrator's runtime settings and state-directory layout.
// All state lives under Root; commands sharing a Root see the same sessions.
type Config struct {
	// Root is the orchestrator state directory.
	Root string

	// PollInterval is how often the liveness monitor checks tracked PIDs.
	PollInterval time.Duration

	// HangThreshold flags a running session as hung when its status
	// hasn't changed for this long.
	HangThreshold time.Duration

	// TerminateGrace is how long a graceful terminate waits between
	// SIGTERM and SIGKILL.
	TerminateGrace time.Duration

	// TeamDelay is the coordination delay between spawns in a team.
	TeamDelay time.Duration
}

// Default returns a Config rooted at dir with standard timing.
func Default(dir string) *Config {
	return &Config{
		Root:           dir,
		PollInterval:   DefaultPollInterval,
		HangThreshold:  DefaultHangThreshold,
		TerminateGrace: DefaultTerminateGrace,
		TeamDelay:      DefaultTeamDelay,
	}
}

// FromEnv returns a Config honoring ORC_* environment overrides.
// ORC_ROOT sets the state directory (default: current directory, matching
// the tool's original habit of keeping terminal_sessions/ in the cwd).
// ORC_POLL_INTERVAL, ORC_HANG_THRESHOLD, and ORC_TERMINATE_GRACE take
// whole seconds.
func FromEnv() *Config {
	root := os.Getenv("ORC_ROOT")
	if root == "" {
		if cwd, err := os.Getwd(); err == nil {
			root = cwd
		} else {
			root = "."
		}
	}
	cfg := Default(root)
	if d, ok := envSeconds("ORC_POLL_INTERVAL"); ok {
		cfg.PollInterval = d
	}
	if d, ok := envSeconds("ORC_HANG_THRESHOLD"); ok {
		cfg.HangThreshold = d
	}
	if d, ok := envSeconds("ORC_TERMINATE_GRACE"); ok {
		cfg.TerminateGrace = d
	}
	return cfg
}

func envSeconds(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// SessionsDir is where completion logs land (terminal_sessions/session_<id>.json).
func (c *Config) SessionsDir() string {
	return filepath.Join(c.Root, "terminal_sessions")
}

// RuntimeDir holds live bookkeeping that should not outlast the machine.
func (c *Config) RuntimeDir() string {
	return filepath.Join(c.Root, ".runtime")
}

// RecordsDir holds the active-session JSON records.
func (c *Config) RecordsDir() string {
	return filepath.Join(c.RuntimeDir(), "sessions")
}

// PidsDir holds PID tracking files for spawned terminal processes.
func (c *Config) PidsDir() string {
	return filepath.Join(c.RuntimeDir(), "pids")
}

// MonitorLock is the flock path guarding the single monitor instance.
func (c *Config) MonitorLock() string {
	return filepath.Join(c.RuntimeDir(), "monitor.lock")
}

// LogFile is the shared orchestrator/monitor log.
func (c *Config) LogFile() string {
	return filepath.Join(c.RuntimeDir(), "orchestra.log")
}

// HistoryDB is the SQLite archive of completed sessions.
func (c *Config) HistoryDB() string {
	return filepath.Join(c.Root, "terminal_sessions.db")
}

// AgentsFile is the optional TOML overlay for the agent registry.
func (c *Config) AgentsFile() string {
	return filepath.Join(c.Root, "agents.toml")
}

// EnsureDirs creates the state directory tree.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.SessionsDir(), c.RecordsDir(), c.PidsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
