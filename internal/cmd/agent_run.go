package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognitive-os/orchestra/internal/agent"
	"github.com/cognitive-os/orchestra/internal/config"
)

var (
	agentRunType     string
	agentRunSession  string
	agentRunDuration int
)

// agentRunCmd is the workload that runs inside a spawned terminal
// window. Hidden: users spawn agents with `orc spawn`, never this.
var agentRunCmd = &cobra.Command{
	Use:    "agent-run",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runAgentRun,
}

func init() {
	agentRunCmd.Flags().StringVar(&agentRunType, "type", "", "agent type to run")
	agentRunCmd.Flags().StringVar(&agentRunSession, "session", "", "session ID assigned by the orchestrator")
	agentRunCmd.Flags().IntVar(&agentRunDuration, "duration", 0, "work steps (0 = agent default)")
	agentRunCmd.MarkFlagRequired("type")
	agentRunCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(agentRunCmd)
}

func runAgentRun(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if rootFlagRoot != "" {
		cfg.Root = rootFlagRoot
	}

	registry, err := config.LoadRegistry(cfg.AgentsFile())
	if err != nil {
		// Spawn validated the type against the merged registry; if the
		// overlay got mangled since, the built-ins still cover it.
		registry = config.BuiltinRegistry()
	}
	ac, err := registry.Get(agentRunType)
	if err != nil {
		return fmt.Errorf("agent-run: %w", err)
	}

	agent.NewWorker(ac, agentRunSession, agentRunDuration).Run(os.Stdout)
	return nil
}
