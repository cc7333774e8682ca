package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognitive-os/orchestra/internal/dashboard"
	"github.com/cognitive-os/orchestra/internal/monitor"
)

var demoDuration time.Duration

var demoCmd = &cobra.Command{
	Use:     "demo",
	GroupID: GroupDiag,
	Short:   "Spawn a dev team, watch it work, then shut it down",
	Long: `Demo exercises the full lifecycle: spawns the dev team preset, then
monitors and prints a dashboard snapshot on every poll interval for the
demo duration. Agents that finish get their completion logs as they
exit; whatever is still running at the end is shut down gracefully.
Ctrl-C shuts down early.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().DurationVar(&demoDuration, "duration", 30*time.Second, "how long to observe before shutdown")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(true)
	if err != nil {
		return err
	}
	defer app.close()

	fmt.Println("Spawning dev team...")
	result := app.orch.SpawnTeam(teamPresets["dev"], app.cfg.TeamDelay)
	for _, a := range result.Agents {
		fmt.Printf("  %s (PID %d, %s)\n", a.SessionID, a.PID, a.Emulator)
	}
	if result.Err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "  spawn failed at %s: %v\n", result.Failed, result.Err)
	}
	if len(result.Agents) == 0 {
		return fmt.Errorf("no agents spawned: %w", result.Err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := monitor.New(app.cfg, app.tracker, app.logger, app.archive)
	agg := dashboard.New(app.tracker, app.orch.Emulators())
	observe(ctx, m, agg, app.cfg.PollInterval, demoDuration)

	fmt.Println("\nShutting down demo team...")
	app.orch.Shutdown()
	fmt.Println("Demo complete.")
	return nil
}

// observe runs monitor passes on the poll interval for the given span,
// printing a dashboard snapshot after each. Agents that exit mid-demo
// are reaped with their natural completion status instead of waiting to
// be labeled terminated at shutdown.
func observe(ctx context.Context, m *monitor.Monitor, agg *dashboard.Aggregator, interval, total time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.After(total)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nInterrupted.")
			return
		case <-deadline:
			return
		case <-ticker.C:
			m.Poll()
			printReport(agg.Report())
		}
	}
}
