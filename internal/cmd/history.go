package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognitive-os/orchestra/internal/history"
	"github.com/cognitive-os/orchestra/internal/style"
)

var (
	historyType   string
	historyStatus string
	historySince  string
	historyLimit  int
	historyJSON   bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	GroupID: GroupSessions,
	Short:   "Query completed sessions from the archive",
	Long: `History queries the SQLite archive of completed sessions. Every session
the monitor reaps gets one row; JSON completion logs under
terminal_sessions/ carry the same data per session.

Examples:
  orc history --limit 20
  orc history --type debug_assistant --status hung
  orc history --since 24h`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyType, "type", "", "filter by agent type")
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "filter by completion status")
	historyCmd.Flags().StringVar(&historySince, "since", "", "only sessions completed within this duration (e.g. 24h)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "maximum rows to return")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(false)
	if err != nil {
		return err
	}
	defer app.close()

	if app.archive == nil {
		return fmt.Errorf("history archive unavailable at %s", app.cfg.HistoryDB())
	}

	f := history.Filter{
		Type:   historyType,
		Status: historyStatus,
		Limit:  historyLimit,
	}
	if historySince != "" {
		d, err := time.ParseDuration(historySince)
		if err != nil {
			return fmt.Errorf("invalid --since duration %q: %w", historySince, err)
		}
		f.Since = time.Now().Add(-d)
	}

	entries, err := app.archive.Query(cmd.Context(), f)
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No archived sessions match.")
		return nil
	}

	tbl := style.NewTable(
		style.Column{Name: "SESSION", Width: 30},
		style.Column{Name: "AGENT", Width: 24},
		style.Column{Name: "COMPLETED", Width: 20},
		style.Column{Name: "RAN", Width: 7, Align: style.AlignRight},
		style.Column{Name: "STATUS", Width: 24},
	)
	for _, e := range entries {
		completed := e.CompletionTime
		if t, err := time.Parse(time.RFC3339, e.CompletionTime); err == nil {
			completed = t.Local().Format("2006-01-02 15:04:05")
		}
		tbl.AddRow(
			e.SessionID,
			e.AgentName,
			completed,
			fmt.Sprintf("%ds", e.DurationSeconds),
			style.Status(e.Status),
		)
	}
	fmt.Println()
	fmt.Println(tbl.Render())
	fmt.Printf("  %d session(s)\n", len(entries))
	return nil
}
