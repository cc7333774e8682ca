package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognitive-os/orchestra/internal/dashboard"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:     "status <session-id>",
	GroupID: GroupSessions,
	Short:   "Show detailed status for one session",
	Args:    cobra.ExactArgs(1),
	RunE:    runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print status as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(false)
	if err != nil {
		return err
	}
	defer app.close()

	s, ok := app.tracker.Get(args[0])
	if !ok {
		return fmt.Errorf("session %s: not tracked", args[0])
	}

	agg := dashboard.New(app.tracker, app.orch.Emulators())
	report := agg.Report()

	var row *dashboard.SessionStats
	for i := range report.Sessions {
		if report.Sessions[i].SessionID == s.ID {
			row = &report.Sessions[i]
			break
		}
	}
	if row == nil {
		return fmt.Errorf("session %s: disappeared during report", s.ID)
	}

	if statusJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(row)
	}

	fmt.Printf("Session %s\n", s.ID)
	fmt.Printf("  Agent:    %s (%s)\n", s.AgentName, s.Type)
	fmt.Printf("  PID:      %d (%s)\n", s.PID, s.Emulator)
	fmt.Printf("  Status:   %s\n", s.Status)
	fmt.Printf("  Started:  %s\n", s.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Uptime:   %ds\n", row.UptimeSecs)
	if row.Valid {
		fmt.Printf("  CPU:      %.1f%%\n", row.CPUPercent)
		fmt.Printf("  Memory:   %.1f MB\n", row.MemoryMB)
	} else {
		fmt.Printf("  Process:  gone (pending monitor reap)\n")
	}
	return nil
}
