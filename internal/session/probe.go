package session

import (
	"errors"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/unix"
)

// ProcessAlive reports whether a process with the given PID exists.
// Signal 0 checks existence without killing; EPERM still means the
// process exists, just owned by someone else.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, unix.EPERM)
}

// ProcessCreateMS returns the OS-reported creation time for pid in
// milliseconds since the epoch.
func ProcessCreateMS(pid int) (int64, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return 0, err
	}
	return p.CreateTime()
}

// Owns reports whether the session still owns its recorded PID: the
// process exists and its creation time matches what was captured at
// spawn. A creation-time mismatch means the OS recycled the PID for an
// unrelated process, which must read as "exited" for this session.
//
// Creation times are compared with one second of slack since some
// platforms report them at coarser granularity than they record them.
func (s *Session) Owns(pid int) bool {
	if !ProcessAlive(pid) {
		return false
	}
	if s.ProcessCreateMS == 0 {
		// No recorded creation time (record from an older version);
		// fall back to bare existence.
		return true
	}
	created, err := ProcessCreateMS(pid)
	if err != nil {
		return false
	}
	diff := created - s.ProcessCreateMS
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1000
}

// Alive reports whether the session's own process is still running,
// guarding against PID reuse.
func (s *Session) Alive() bool {
	return s.Owns(s.PID)
}
