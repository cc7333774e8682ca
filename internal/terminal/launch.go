package terminal

import (
	"fmt"
	"os/exec"
)

// Handle is a launched terminal window's process handle.
//
// Note: some emulators (gnome-terminal in particular) hand the window to
// a background server and exit the launcher almost immediately, so the
// PID here may be shorter-lived than the window. Liveness of the agent
// workload is what the session layer tracks.
type Handle struct {
	PID int
	Cmd *exec.Cmd
}

// Launch starts argv in a new window of the given emulator, detached
// from the orchestrator: its own session and process group, no inherited
// stdio. Returns the handle or a wrapped spawn error.
func Launch(e Emulator, w Window, workDir string, argv []string) (*Handle, error) {
	full := Command(e, w, argv)
	cmd := exec.Command(full[0], full[1:]...)
	cmd.Dir = workDir
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachAttr()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn failed: %w", err)
	}

	// Reap the launcher when it exits so it doesn't linger as a zombie
	// while the orchestrator process is still alive.
	go func() { _ = cmd.Wait() }()

	return &Handle{PID: cmd.Process.Pid, Cmd: cmd}, nil
}
