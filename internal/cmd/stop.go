package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	stopForce bool
	stopAll   bool
)

var stopCmd = &cobra.Command{
	Use:     "stop [session-id]",
	GroupID: GroupSessions,
	Short:   "Terminate a session (or all sessions)",
	Long: `Stop terminates a tracked session. Graceful by default: SIGTERM to the
session's process group, a short grace period, then SIGKILL for anything
that didn't exit. --force skips straight to SIGKILL.

Examples:
  orc stop debug_assistant-3fa1b2c4
  orc stop --all
  orc stop debug_assistant-3fa1b2c4 --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStop,
}

func init() {
	stopCmd.Flags().BoolVarP(&stopForce, "force", "f", false, "SIGKILL immediately, no grace period")
	stopCmd.Flags().BoolVar(&stopAll, "all", false, "terminate every tracked session")
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	if !stopAll && len(args) == 0 {
		return fmt.Errorf("session ID required (or --all)")
	}

	app, err := newAppContext(true)
	if err != nil {
		return err
	}
	defer app.close()

	if stopAll {
		sessions := app.tracker.List()
		if len(sessions) == 0 {
			fmt.Println("No tracked sessions.")
			return nil
		}
		var failed int
		for _, s := range sessions {
			if err := app.orch.Terminate(s.ID, !stopForce); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "stop %s: %v\n", s.ID, err)
				failed++
				continue
			}
			fmt.Printf("Stopped %s\n", s.ID)
		}
		if failed > 0 {
			return fmt.Errorf("%d session(s) failed to stop", failed)
		}
		return nil
	}

	if err := app.orch.Terminate(args[0], !stopForce); err != nil {
		return err
	}
	fmt.Printf("Stopped %s\n", args[0])
	return nil
}
