package config

import (
	"os"
	"testing"
	"time"
)

func TestDefaultTiming(t *testing.T) {
	cfg := Default("/tmp/orc")
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v, want 5s", cfg.PollInterval)
	}
	if cfg.HangThreshold != 300*time.Second {
		t.Errorf("HangThreshold = %v, want 300s", cfg.HangThreshold)
	}
	if cfg.TerminateGrace != 5*time.Second {
		t.Errorf("TerminateGrace = %v, want 5s", cfg.TerminateGrace)
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("root override", func(t *testing.T) {
		t.Setenv("ORC_ROOT", "/srv/agents")
		cfg := FromEnv()
		if cfg.Root != "/srv/agents" {
			t.Errorf("Root = %q, want /srv/agents", cfg.Root)
		}
	})

	t.Run("timing overrides in seconds", func(t *testing.T) {
		t.Setenv("ORC_POLL_INTERVAL", "1")
		t.Setenv("ORC_HANG_THRESHOLD", "60")
		t.Setenv("ORC_TERMINATE_GRACE", "2")
		cfg := FromEnv()
		if cfg.PollInterval != time.Second {
			t.Errorf("PollInterval = %v, want 1s", cfg.PollInterval)
		}
		if cfg.HangThreshold != time.Minute {
			t.Errorf("HangThreshold = %v, want 1m", cfg.HangThreshold)
		}
		if cfg.TerminateGrace != 2*time.Second {
			t.Errorf("TerminateGrace = %v, want 2s", cfg.TerminateGrace)
		}
	})

	t.Run("garbage values keep defaults", func(t *testing.T) {
		t.Setenv("ORC_POLL_INTERVAL", "soon")
		t.Setenv("ORC_HANG_THRESHOLD", "-5")
		cfg := FromEnv()
		if cfg.PollInterval != DefaultPollInterval {
			t.Errorf("PollInterval = %v, want default", cfg.PollInterval)
		}
		if cfg.HangThreshold != DefaultHangThreshold {
			t.Errorf("HangThreshold = %v, want default", cfg.HangThreshold)
		}
	})
}

func TestLayout(t *testing.T) {
	cfg := Default("/data/orc")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"sessions", cfg.SessionsDir(), "/data/orc/terminal_sessions"},
		{"records", cfg.RecordsDir(), "/data/orc/.runtime/sessions"},
		{"pids", cfg.PidsDir(), "/data/orc/.runtime/pids"},
		{"lock", cfg.MonitorLock(), "/data/orc/.runtime/monitor.lock"},
		{"log", cfg.LogFile(), "/data/orc/.runtime/orchestra.log"},
		{"history", cfg.HistoryDB(), "/data/orc/terminal_sessions.db"},
		{"agents", cfg.AgentsFile(), "/data/orc/agents.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestEnsureDirs(t *testing.T) {
	cfg := Default(t.TempDir())
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	for _, dir := range []string{cfg.SessionsDir(), cfg.RecordsDir(), cfg.PidsDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("Stat(%s): %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
	// Idempotent.
	if err := cfg.EnsureDirs(); err != nil {
		t.Errorf("second EnsureDirs: %v", err)
	}
}
