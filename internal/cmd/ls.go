package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognitive-os/orchestra/internal/style"
)

var lsJSON bool

var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"sessions", "list"},
	GroupID: GroupSessions,
	Short:   "List tracked sessions",
	Args:    cobra.NoArgs,
	RunE:    runLs,
}

func init() {
	lsCmd.Flags().BoolVar(&lsJSON, "json", false, "print sessions as JSON")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(false)
	if err != nil {
		return err
	}
	defer app.close()

	sessions := app.tracker.List()

	if lsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}

	if len(sessions) == 0 {
		fmt.Println("No tracked sessions.")
		return nil
	}

	tbl := style.NewTable(
		style.Column{Name: "SESSION", Width: 28},
		style.Column{Name: "AGENT", Width: 22},
		style.Column{Name: "PID", Width: 7, Align: style.AlignRight},
		style.Column{Name: "STATUS", Width: 10},
		style.Column{Name: "UPTIME", Width: 8, Align: style.AlignRight},
	)
	for _, s := range sessions {
		status := string(s.Status)
		if s.Status == "running" && !s.Alive() {
			// Exited but not yet reaped by the monitor.
			status = "exited"
		}
		tbl.AddRow(
			s.ID,
			s.AgentName,
			fmt.Sprintf("%d", s.PID),
			style.Status(status),
			s.Uptime().Round(time.Second).String(),
		)
	}
	fmt.Print(tbl.Render())
	return nil
}
