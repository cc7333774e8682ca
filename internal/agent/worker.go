// Package agent runs the scripted agent workload inside a spawned
// terminal window. The orchestrator re-executes its own binary in
// agent-run mode rather than templating shell scripts, so no user input
// ever reaches a shell.
package agent

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cognitive-os/orchestra/internal/config"
)

// Argv builds the command line the terminal window runs: this binary in
// agent-run mode. exe should come from os.Executable(). The state root
// rides along explicitly: the worker runs in its own working directory
// and must resolve overlay-defined agent types from the same agents.toml
// the spawner validated against.
func Argv(exe, root, agentType, sessionID string, duration int) []string {
	return []string{
		exe, "agent-run",
		"--root", root,
		"--type", agentType,
		"--session", sessionID,
		"--duration", strconv.Itoa(duration),
	}
}

// Worker prints an agent's scripted progress output.
type Worker struct {
	Config    config.AgentConfig
	SessionID string
	Duration  int // work steps; 0 means the config default

	// Sleep is swapped in tests to run scripts instantly.
	Sleep func(time.Duration)

	rng *rand.Rand
}

// NewWorker builds a worker for the given agent configuration.
func NewWorker(cfg config.AgentConfig, sessionID string, duration int) *Worker {
	if duration <= 0 {
		duration = cfg.Duration
	}
	return &Worker{
		Config:    cfg,
		SessionID: sessionID,
		Duration:  duration,
		Sleep:     time.Sleep,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run plays the script to w: banner, init lines, one work line per step
// (1s apart), then the wrap-up. Returns when the script finishes; the
// terminal window closes with it.
func (wk *Worker) Run(w io.Writer) {
	cfg := wk.Config

	fmt.Fprintf(w, "%s - COGNITIVE AGENT\n", strings.ToUpper(cfg.Name))
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Agent ID: %s\n", wk.SessionID)
	fmt.Fprintf(w, "PID: %d\n", os.Getpid())
	fmt.Fprintf(w, "Started: %s\n", time.Now().Format(time.RFC1123))
	fmt.Fprintln(w)

	for _, line := range cfg.Script.InitLines {
		fmt.Fprintln(w, line)
		wk.Sleep(time.Second)
	}
	fmt.Fprintln(w)

	for i := 1; i <= wk.Duration; i++ {
		fmt.Fprintf(w, "  • [%d/%d] %s\n", i, wk.Duration, wk.workLine())
		wk.Sleep(time.Second)
	}
	fmt.Fprintln(w)

	for _, line := range cfg.Script.DoneLines {
		fmt.Fprintln(w, line)
	}
}

// workLine renders one step from the script's line template, filling
// {a}, {b}, and {n} with random picks.
func (wk *Worker) workLine() string {
	script := wk.Config.Script
	line := script.Line
	if line == "" {
		return "working..."
	}
	r := strings.NewReplacer(
		"{a}", pick(wk.rng, script.ChoicesA),
		"{b}", pick(wk.rng, script.ChoicesB),
		"{n}", strconv.Itoa(wk.rng.Intn(1000)),
	)
	return r.Replace(line)
}

func pick(rng *rand.Rand, choices []string) string {
	if len(choices) == 0 {
		return ""
	}
	return choices[rng.Intn(len(choices))]
}
