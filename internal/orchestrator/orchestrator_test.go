package orchestrator

import (
	"bytes"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/cognitive-os/orchestra/internal/config"
	"github.com/cognitive-os/orchestra/internal/session"
	"github.com/cognitive-os/orchestra/internal/terminal"
)

type launchCall struct {
	emulator terminal.Emulator
	window   terminal.Window
	workDir  string
	argv     []string
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *[]launchCall) {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.TeamDelay = 0
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	tracker, err := session.NewTracker(cfg.RecordsDir())
	if err != nil {
		t.Fatal(err)
	}
	o, err := New(cfg, config.BuiltinRegistry(), tracker, log.New(&bytes.Buffer{}, "", 0), nil)
	if err != nil {
		t.Fatal(err)
	}

	// No X server in CI; fake the emulator set and the launcher.
	o.emulators = []terminal.Emulator{terminal.GnomeTerminal, terminal.Xterm}
	calls := &[]launchCall{}
	pid := 40000
	o.launch = func(e terminal.Emulator, w terminal.Window, dir string, argv []string) (*terminal.Handle, error) {
		*calls = append(*calls, launchCall{e, w, dir, argv})
		pid++
		return &terminal.Handle{PID: pid}, nil
	}
	o.createMS = func(int) (int64, error) { return time.Now().UnixMilli(), nil }
	return o, calls
}

func TestSpawn(t *testing.T) {
	o, calls := newTestOrchestrator(t)

	res, err := o.Spawn("debug_assistant", SpawnOverrides{})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	t.Run("result", func(t *testing.T) {
		if res.AgentType != "debug_assistant" || res.PID == 0 {
			t.Errorf("result = %+v", res)
		}
		if res.Emulator != string(terminal.GnomeTerminal) {
			t.Errorf("Emulator = %q, want first detected", res.Emulator)
		}
	})

	t.Run("tracked before return", func(t *testing.T) {
		s, ok := o.tracker.Get(res.SessionID)
		if !ok {
			t.Fatal("session not tracked")
		}
		if s.Status != session.StatusRunning {
			t.Errorf("Status = %q", s.Status)
		}
		if s.ProcessCreateMS == 0 {
			t.Error("creation time not recorded")
		}

		// And on disk: a fresh tracker over the same dir must see it.
		tr2, err := session.NewTracker(o.cfg.RecordsDir())
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := tr2.Get(res.SessionID); !ok {
			t.Error("record not persisted at spawn time")
		}
	})

	t.Run("pid file written", func(t *testing.T) {
		pid, err := session.TrackedPID(o.cfg.PidsDir(), res.SessionID)
		if err != nil || pid != res.PID {
			t.Errorf("TrackedPID = %d, %v; want %d", pid, err, res.PID)
		}
	})

	t.Run("window carries registry settings", func(t *testing.T) {
		if len(*calls) != 1 {
			t.Fatalf("%d launch calls", len(*calls))
		}
		call := (*calls)[0]
		if call.window.Geometry != "90x30" {
			t.Errorf("Geometry = %q, want registry default", call.window.Geometry)
		}
		if call.window.Title == "" {
			t.Error("window has no title")
		}
		// argv is the self-exec agent command.
		if len(call.argv) == 0 || call.argv[1] != "agent-run" {
			t.Errorf("argv = %v", call.argv)
		}
	})
}

func TestSpawnArgvCarriesRoot(t *testing.T) {
	// An agent type that exists only in the spawner's registry overlay
	// must stay resolvable inside the window, which runs in its own
	// working directory. The argv has to name the state root explicitly.
	o, calls := newTestOrchestrator(t)
	overlay := config.AgentConfig{
		Type: "chaos_monkey", Name: "Chaos Monkey", Duration: 3, Geometry: "80x24",
	}
	registry := registryWith(t, o.cfg, overlay)
	o.registry = registry

	if _, err := o.Spawn("chaos_monkey", SpawnOverrides{WorkDir: t.TempDir()}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	argv := (*calls)[0].argv
	rootArg := ""
	for i, a := range argv {
		if a == "--root" && i+1 < len(argv) {
			rootArg = argv[i+1]
		}
	}
	if rootArg != o.cfg.Root {
		t.Errorf("argv root = %q, want spawner's root %q (argv: %v)", rootArg, o.cfg.Root, argv)
	}
}

// registryWith writes an agents.toml defining extra and loads it the way
// the CLI does.
func registryWith(t *testing.T, cfg *config.Config, extra config.AgentConfig) *config.Registry {
	t.Helper()
	overlay := "[agents." + extra.Type + "]\n" +
		"name = \"" + extra.Name + "\"\n" +
		"duration = 3\ngeometry = \"" + extra.Geometry + "\"\n"
	if err := os.WriteFile(cfg.AgentsFile(), []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := config.LoadRegistry(cfg.AgentsFile())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestSpawnOverrides(t *testing.T) {
	o, calls := newTestOrchestrator(t)

	res, err := o.Spawn("docs_writer", SpawnOverrides{
		Duration: 5,
		Geometry: "100x40",
		Emulator: terminal.Xterm,
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Emulator != string(terminal.Xterm) {
		t.Errorf("Emulator = %q, want xterm", res.Emulator)
	}
	call := (*calls)[0]
	if call.window.Geometry != "100x40" {
		t.Errorf("Geometry = %q", call.window.Geometry)
	}
	s, _ := o.tracker.Get(res.SessionID)
	if s.Duration != 5 {
		t.Errorf("Duration = %d, want override", s.Duration)
	}
}

func TestSpawnUnknownType(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	if _, err := o.Spawn("philosopher", SpawnOverrides{}); !errors.Is(err, config.ErrUnknownAgentType) {
		t.Errorf("err = %v, want ErrUnknownAgentType", err)
	}
	if o.tracker.Len() != 0 {
		t.Error("failed spawn left a tracked session")
	}
}

func TestSpawnNoEmulator(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.emulators = nil
	if _, err := o.Spawn("debug_assistant", SpawnOverrides{}); !errors.Is(err, terminal.ErrNoEmulator) {
		t.Errorf("err = %v, want ErrNoEmulator", err)
	}
}

func TestSpawnLaunchFailure(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.launch = func(terminal.Emulator, terminal.Window, string, []string) (*terminal.Handle, error) {
		return nil, errors.New("spawn failed: exec: not found")
	}
	if _, err := o.Spawn("debug_assistant", SpawnOverrides{}); err == nil {
		t.Fatal("expected launch error")
	}
	if o.tracker.Len() != 0 {
		t.Error("failed spawn left a tracked session")
	}
}

func TestSpawnTeam(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	res := o.SpawnTeam([]string{"debug_assistant", "docs_writer"}, 0)
	if res.Err != nil {
		t.Fatalf("SpawnTeam: %v", res.Err)
	}
	if len(res.Agents) != 2 {
		t.Fatalf("Agents = %d, want 2", len(res.Agents))
	}
	if res.TeamID == "" {
		t.Error("no team ID")
	}
	if o.tracker.Len() != 2 {
		t.Errorf("tracked = %d, want 2", o.tracker.Len())
	}
}

func TestSpawnTeamStopsAtFailure(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	res := o.SpawnTeam([]string{"debug_assistant", "philosopher", "docs_writer"}, 0)
	if res.Err == nil {
		t.Fatal("expected failure on unknown type")
	}
	if res.Failed != "philosopher" {
		t.Errorf("Failed = %q", res.Failed)
	}
	// The spawn before the failure keeps running.
	if len(res.Agents) != 1 || o.tracker.Len() != 1 {
		t.Errorf("agents=%d tracked=%d, want 1/1", len(res.Agents), o.tracker.Len())
	}
}

func TestTerminateUntracked(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	if err := o.Terminate("ghost-00000000", true); err == nil {
		t.Error("expected error for untracked session")
	}
}

func TestTerminateDeadProcess(t *testing.T) {
	// A session whose process already exited: Terminate should still
	// write the completion log and untrack it.
	o, _ := newTestOrchestrator(t)
	res, err := o.Spawn("debug_assistant", SpawnOverrides{})
	if err != nil {
		t.Fatal(err)
	}

	if err := o.Terminate(res.SessionID, true); err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	if _, ok := o.tracker.Get(res.SessionID); ok {
		t.Error("session still tracked")
	}
	path := session.CompletionLogPath(o.cfg.SessionsDir(), res.SessionID)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("completion log: %v", err)
	}
}
