package terminal

import "syscall"

// detachAttr puts the launched emulator in its own session (and thus its
// own process group) so a group kill reaches the workload without
// touching the orchestrator.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
