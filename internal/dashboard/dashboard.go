// Package dashboard derives on-demand snapshots of tracked sessions and
// their OS resource usage. Reports are ephemeral; nothing here mutates
// session state.
package dashboard

import (
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/cognitive-os/orchestra/internal/session"
	"github.com/cognitive-os/orchestra/internal/terminal"
)

// SessionStats is one session's row in a report.
type SessionStats struct {
	SessionID  string  `json:"session_id"`
	AgentType  string  `json:"agent_type"`
	AgentName  string  `json:"agent_name"`
	PID        int     `json:"pid"`
	Status     string  `json:"status"`
	CPUPercent float64 `json:"cpu_percent"`
	MemoryMB   float64 `json:"memory_mb"`
	UptimeSecs int     `json:"uptime_seconds"`

	// Valid is false when the PID vanished during this report pass.
	// The session may still be tracked; reclassification is the
	// monitor's job, not the dashboard's.
	Valid bool `json:"valid"`
}

// Report is a point-in-time aggregate over all tracked sessions.
type Report struct {
	Timestamp    time.Time        `json:"timestamp"`
	TotalActive  int              `json:"total_active_sessions"`
	ByType       map[string]int   `json:"agent_distribution"`
	ByStatus     map[string]int   `json:"status_distribution"`
	Sessions     []SessionStats   `json:"active_sessions"`
	TotalCPU     float64          `json:"total_cpu_percent"`
	TotalMemMB   float64          `json:"total_memory_mb"`
	AvgCPU       float64          `json:"average_cpu_per_agent"`
	AvgMemMB     float64          `json:"average_memory_per_agent"`
	Emulators    []string         `json:"available_terminals"`
}

// Aggregator builds reports from a tracker and the detected emulators.
type Aggregator struct {
	tracker   *session.Tracker
	emulators []terminal.Emulator

	// procStats is swapped in tests.
	procStats func(pid int) (cpu, memMB float64, err error)
}

// New creates an aggregator over the given tracker.
func New(tracker *session.Tracker, emulators []terminal.Emulator) *Aggregator {
	return &Aggregator{
		tracker:   tracker,
		emulators: emulators,
		procStats: gopsutilStats,
	}
}

func gopsutilStats(pid int) (float64, float64, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return 0, 0, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return cpu, 0, err
	}
	return cpu, float64(mem.RSS) / 1024 / 1024, nil
}

// Report walks the tracker once and returns the aggregate snapshot.
// The session count always equals the tracker's count at call time; rows
// whose PID disappeared mid-pass are included but marked invalid.
func (a *Aggregator) Report() *Report {
	sessions := a.tracker.List()

	r := &Report{
		Timestamp:   time.Now(),
		TotalActive: len(sessions),
		ByType:      make(map[string]int),
		ByStatus:    make(map[string]int),
		Sessions:    make([]SessionStats, 0, len(sessions)),
	}
	for _, e := range a.emulators {
		r.Emulators = append(r.Emulators, string(e))
	}

	for i := range sessions {
		s := &sessions[i]
		row := SessionStats{
			SessionID:  s.ID,
			AgentType:  s.Type,
			AgentName:  s.AgentName,
			PID:        s.PID,
			Status:     string(s.Status),
			UptimeSecs: int(s.Uptime().Seconds()),
		}
		if cpu, mem, err := a.procStats(s.PID); err == nil {
			row.Valid = true
			row.CPUPercent = cpu
			row.MemoryMB = mem
			r.TotalCPU += cpu
			r.TotalMemMB += mem
		}
		r.ByType[s.Type]++
		r.ByStatus[string(s.Status)]++
		r.Sessions = append(r.Sessions, row)
	}

	if n := len(sessions); n > 0 {
		r.AvgCPU = r.TotalCPU / float64(n)
		r.AvgMemMB = r.TotalMemMB / float64(n)
	}
	return r
}
