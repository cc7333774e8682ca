package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Team presets from the original orchestration flows.
var teamPresets = map[string][]string{
	"dev":   {"debug_assistant", "test_generator", "docs_writer", "code_reviewer"},
	"audit": {"code_reviewer", "security_auditor", "test_generator"},
}

var teamDelay int

var teamCmd = &cobra.Command{
	Use:     "team <preset|agent-type...>",
	GroupID: GroupAgents,
	Short:   "Spawn a coordinated team of agents",
	Long: `Team spawns several agents with a coordination delay between each.

Presets:
  dev     debug_assistant, test_generator, docs_writer, code_reviewer
  audit   code_reviewer, security_auditor, test_generator

Examples:
  orc team dev
  orc team audit --delay 5
  orc team debug_assistant security_auditor`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTeam,
}

func init() {
	teamCmd.Flags().IntVar(&teamDelay, "delay", 2, "seconds between spawns")
	rootCmd.AddCommand(teamCmd)
}

func runTeam(cmd *cobra.Command, args []string) error {
	types := args
	if len(args) == 1 {
		if preset, ok := teamPresets[args[0]]; ok {
			types = preset
		}
	}

	app, err := newAppContext(true)
	if err != nil {
		return err
	}
	defer app.close()

	result := app.orch.SpawnTeam(types, time.Duration(teamDelay)*time.Second)

	fmt.Printf("Team %s\n", result.TeamID)
	for _, a := range result.Agents {
		fmt.Printf("  %-20s %s (PID %d)\n", a.AgentType, a.SessionID, a.PID)
	}
	if result.Err != nil {
		return fmt.Errorf("team spawn failed at %s: %w", result.Failed, result.Err)
	}
	return nil
}
