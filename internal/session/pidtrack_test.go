package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTrackPID(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pids")

	if err := TrackPID(dir, "docs_writer-9999aaaa", 1234); err != nil {
		t.Fatalf("TrackPID: %v", err)
	}

	pid, err := TrackedPID(dir, "docs_writer-9999aaaa")
	if err != nil {
		t.Fatalf("TrackedPID: %v", err)
	}
	if pid != 1234 {
		t.Errorf("TrackedPID = %d, want 1234", pid)
	}

	t.Run("untrack removes file", func(t *testing.T) {
		UntrackPID(dir, "docs_writer-9999aaaa")
		if _, err := TrackedPID(dir, "docs_writer-9999aaaa"); err == nil {
			t.Error("PID file survived UntrackPID")
		}
	})

	t.Run("untrack is idempotent", func(t *testing.T) {
		UntrackPID(dir, "docs_writer-9999aaaa")
	})
}

func TestTrackedPIDCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.pid"), []byte("not-a-pid\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := TrackedPID(dir, "bad"); err == nil {
		t.Error("expected parse error for corrupt PID file")
	}
}

func TestKillTrackedPIDs(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		killed, errs := KillTrackedPIDs(filepath.Join(t.TempDir(), "absent"))
		if killed != 0 || errs != nil {
			t.Errorf("got killed=%d errs=%v, want zero values", killed, errs)
		}
	})

	t.Run("cleans dead and corrupt files", func(t *testing.T) {
		dir := t.TempDir()
		// Dead PID and a corrupt file; neither should count as killed,
		// both should be removed.
		if err := TrackPID(dir, "dead-1111", 1<<30); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "junk-2222.pid"), []byte("zzz"), 0644); err != nil {
			t.Fatal(err)
		}

		killed, errs := KillTrackedPIDs(dir)
		if killed != 0 {
			t.Errorf("killed = %d, want 0", killed)
		}
		if len(errs) != 0 {
			t.Errorf("errs = %v, want none", errs)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("%d stale files left behind", len(entries))
		}
	})
}
