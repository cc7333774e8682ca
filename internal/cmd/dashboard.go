package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognitive-os/orchestra/internal/dashboard"
	"github.com/cognitive-os/orchestra/internal/style"
	"github.com/cognitive-os/orchestra/internal/tui"
)

var (
	dashboardJSON  bool
	dashboardWatch bool
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	GroupID: GroupSessions,
	Short:   "Show resource usage across active sessions",
	Long: `Dashboard samples CPU and memory for every tracked session and prints a
summary: per-session stats, totals, averages, and counts by type and
status. --watch keeps it on screen and refreshes on the poll interval.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "output as JSON")
	dashboardCmd.Flags().BoolVarP(&dashboardWatch, "watch", "w", false, "refresh continuously")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(false)
	if err != nil {
		return err
	}
	defer app.close()

	agg := dashboard.New(app.tracker, app.orch.Emulators())

	if dashboardWatch {
		refresh := func() *dashboard.Report {
			app.tracker.Reload()
			return agg.Report()
		}
		return tui.Run(refresh, app.cfg.PollInterval)
	}

	report := agg.Report()

	if dashboardJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(report)
	return nil
}

func printReport(r *dashboard.Report) {
	fmt.Println()
	fmt.Printf("  Active sessions: %d\n", r.TotalActive)
	if r.TotalActive == 0 {
		return
	}
	fmt.Printf("  Total CPU: %.1f%%   Total memory: %.1f MB\n", r.TotalCPU, r.TotalMemMB)
	fmt.Printf("  Avg CPU:   %.1f%%   Avg memory:   %.1f MB\n", r.AvgCPU, r.AvgMemMB)
	fmt.Println()

	tbl := style.NewTable(
		style.Column{Name: "SESSION", Width: 30},
		style.Column{Name: "STATUS", Width: 10},
		style.Column{Name: "CPU%", Width: 6, Align: style.AlignRight},
		style.Column{Name: "MEM MB", Width: 8, Align: style.AlignRight},
		style.Column{Name: "UPTIME", Width: 10, Align: style.AlignRight},
	)
	for _, s := range r.Sessions {
		cpu, mem := "-", "-"
		if s.Valid {
			cpu = fmt.Sprintf("%.1f", s.CPUPercent)
			mem = fmt.Sprintf("%.1f", s.MemoryMB)
		}
		tbl.AddRow(
			s.SessionID,
			style.Status(s.Status),
			cpu,
			mem,
			(time.Duration(s.UptimeSecs) * time.Second).String(),
		)
	}
	fmt.Println(tbl.Render())

	if len(r.ByType) > 0 {
		fmt.Println()
		fmt.Print("  By type:")
		for typ, n := range r.ByType {
			fmt.Printf(" %s=%d", typ, n)
		}
		fmt.Println()
	}
}
