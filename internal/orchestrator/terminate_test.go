package orchestrator

import (
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/cognitive-os/orchestra/internal/session"
	"github.com/cognitive-os/orchestra/internal/terminal"
	"github.com/cognitive-os/orchestra/internal/testutil"
)

// startSleeper launches a real detached sleep process the way the
// terminal launcher does, so Terminate has something to kill.
func startSleeper(t *testing.T) int {
	t.Helper()
	cmd := exec.Command("sleep", "60")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sleep: %v", err)
	}
	pid := cmd.Process.Pid
	go func() { _ = cmd.Wait() }()
	t.Cleanup(func() { _ = syscall.Kill(-pid, syscall.SIGKILL) })
	return pid
}

func spawnReal(t *testing.T, o *Orchestrator) *SpawnResult {
	t.Helper()
	o.launch = func(e terminal.Emulator, w terminal.Window, dir string, argv []string) (*terminal.Handle, error) {
		return &terminal.Handle{PID: startSleeper(t)}, nil
	}
	o.createMS = session.ProcessCreateMS
	res, err := o.Spawn("debug_assistant", SpawnOverrides{})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	return res
}

func TestTerminateGraceful(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.cfg.TerminateGrace = 2 * time.Second
	res := spawnReal(t, o)

	if err := o.Terminate(res.SessionID, true); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	testutil.MustWaitFor(t, 2*time.Second, "process exit", func() bool {
		return !session.ProcessAlive(res.PID)
	})
	if _, ok := o.tracker.Get(res.SessionID); ok {
		t.Error("session still tracked after terminate")
	}
}

func TestTerminateForce(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	res := spawnReal(t, o)

	if err := o.Terminate(res.SessionID, false); err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	testutil.MustWaitFor(t, 2*time.Second, "process exit", func() bool {
		return !session.ProcessAlive(res.PID)
	})
}

func TestShutdown(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.cfg.TerminateGrace = 2 * time.Second
	a := spawnReal(t, o)

	// Second session re-uses the real launcher installed by spawnReal.
	b, err := o.Spawn("docs_writer", SpawnOverrides{})
	if err != nil {
		t.Fatal(err)
	}

	o.Shutdown()

	if o.tracker.Len() != 0 {
		t.Errorf("tracked = %d after shutdown", o.tracker.Len())
	}
	for _, pid := range []int{a.PID, b.PID} {
		testutil.MustWaitFor(t, 2*time.Second, "process exit", func() bool {
			return !session.ProcessAlive(pid)
		})
	}
}
