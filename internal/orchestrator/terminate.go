package orchestrator

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/cognitive-os/orchestra/internal/session"
)

// terminatePollInterval is how often Terminate re-probes the process
// while waiting out the grace period.
const terminatePollInterval = 100 * time.Millisecond

// Terminate stops a tracked session. Graceful sends SIGTERM to the
// session's process group, waits up to the configured grace period, then
// SIGKILLs whatever is left; force goes straight to SIGKILL. Either way
// the session leaves the tracker with a "terminated" completion log.
func (o *Orchestrator) Terminate(id string, graceful bool) error {
	s, ok := o.tracker.Get(id)
	if !ok {
		return fmt.Errorf("session %s: not tracked", id)
	}

	if s.Alive() {
		if graceful {
			o.killGroup(s.PID, syscall.SIGTERM)
			deadline := time.Now().Add(o.cfg.TerminateGrace)
			for s.Alive() && time.Now().Before(deadline) {
				time.Sleep(terminatePollInterval)
			}
			if s.Alive() {
				o.logger.Printf("Session %s: grace expired, sending SIGKILL", id)
				o.killGroup(s.PID, syscall.SIGKILL)
			}
		} else {
			o.killGroup(s.PID, syscall.SIGKILL)
		}
	}

	entry, err := session.WriteCompletionLog(o.cfg.SessionsDir(), &s, session.CompletedTerminated)
	if err != nil {
		return err
	}
	if o.archive != nil {
		if err := o.archive.Record(context.Background(), entry); err != nil {
			o.logger.Printf("Session %s: archive: %v", id, err)
		}
	}

	session.UntrackPID(o.cfg.PidsDir(), id)
	if err := o.tracker.Remove(id); err != nil {
		return err
	}
	o.logger.Printf("Terminated session %s", id)
	return nil
}

// killGroup signals the whole process group. The emulator was launched
// with Setsid, so its PGID equals its PID and the signal reaches the
// agent workload inside the window too.
func (o *Orchestrator) killGroup(pid int, sig syscall.Signal) {
	if err := syscall.Kill(-pid, sig); err != nil {
		// Group gone or never formed; try the bare PID.
		_ = syscall.Kill(pid, sig)
	}
}
