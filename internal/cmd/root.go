// Package cmd provides CLI commands for the orc tool.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootFlagRoot string

var rootCmd = &cobra.Command{
	Use:     "orc",
	Short:   "Orchestra - terminal session orchestrator",
	Version: Version,
	Long: `Orchestra (orc) spawns cognitive agents in OS terminal-emulator
windows, tracks their processes, and reports aggregate resource usage.

Sessions are recorded under a state root (current directory unless
ORC_ROOT or --root says otherwise), so spawn, ls, stop, and the
background monitor all share one view of the running agents.`,
}

// Execute runs the root command and returns an exit code.
// The caller (main) should call os.Exit with this code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		// Errors already printed by cobra
		return 1
	}
	return 0
}

// Command group IDs - used by subcommands to organize help output
const (
	GroupAgents   = "agents"
	GroupSessions = "sessions"
	GroupDiag     = "diag"
)

func init() {
	cobra.EnablePrefixMatching = true

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupAgents, Title: "Agent Management:"},
		&cobra.Group{ID: GroupSessions, Title: "Session Management:"},
		&cobra.Group{ID: GroupDiag, Title: "Diagnostics:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupDiag)
	rootCmd.SetCompletionCommandGroupID(GroupDiag)

	rootCmd.PersistentFlags().StringVar(&rootFlagRoot, "root", "", "state root directory (default: $ORC_ROOT or the current directory)")
}
