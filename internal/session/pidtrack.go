package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// pidFile returns the path to a PID file for a given session.
func pidFile(pidsDir, sessionID string) string {
	return filepath.Join(pidsDir, sessionID+".pid")
}

// TrackPID writes a PID to a tracking file for later cleanup. This is
// defense-in-depth: if the tracker's record is lost, the PID is still on
// disk for the shutdown orphan sweep.
//
// Best-effort; callers should treat errors as non-fatal since the
// primary kill path reads the PID from the session record.
func TrackPID(pidsDir, sessionID string, pid int) error {
	if err := os.MkdirAll(pidsDir, 0755); err != nil {
		return fmt.Errorf("creating pids directory: %w", err)
	}
	return os.WriteFile(pidFile(pidsDir, sessionID), []byte(strconv.Itoa(pid)+"\n"), 0644)
}

// UntrackPID removes the PID tracking file for a session.
func UntrackPID(pidsDir, sessionID string) {
	_ = os.Remove(pidFile(pidsDir, sessionID))
}

// TrackedPID reads a session's PID file.
func TrackedPID(pidsDir, sessionID string) (int, error) {
	data, err := os.ReadFile(pidFile(pidsDir, sessionID))
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parsing PID file for %s: %w", sessionID, err)
	}
	return pid, nil
}

// KillTrackedPIDs reads all PID files and sends SIGTERM to any processes
// still running. Returns the number of processes signaled and any
// session IDs that had errors.
//
// This is the shutdown orphan-cleanup phase: after all sessions have been
// terminated through normal means, this catches processes that survived
// (e.g. reparented to init after the emulator window closed).
func KillTrackedPIDs(pidsDir string) (killed int, errSessions []string) {
	entries, err := os.ReadDir(pidsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, []string{fmt.Sprintf("read pids dir: %v", err)}
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pid") {
			continue
		}

		sessionID := strings.TrimSuffix(entry.Name(), ".pid")
		path := filepath.Join(pidsDir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			errSessions = append(errSessions, fmt.Sprintf("%s: read error: %v", sessionID, err))
			continue
		}

		pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			// Corrupt PID file, remove it
			_ = os.Remove(path)
			continue
		}

		if !ProcessAlive(pid) {
			_ = os.Remove(path)
			continue
		}

		if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
			errSessions = append(errSessions, fmt.Sprintf("%s (PID %d): SIGTERM failed: %v", sessionID, pid, err))
		} else {
			killed++
		}

		// Clean up PID file regardless
		_ = os.Remove(path)
	}

	return killed, errSessions
}
