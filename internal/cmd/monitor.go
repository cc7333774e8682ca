package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cognitive-os/orchestra/internal/monitor"
	"github.com/cognitive-os/orchestra/internal/util"
)

var monitorOnce bool

var monitorCmd = &cobra.Command{
	Use:     "monitor",
	GroupID: GroupSessions,
	Short:   "Run the session liveness monitor",
	Long: `Monitor polls tracked sessions on the poll interval. Exited sessions
get a completion log under terminal_sessions/ and an archive row; running
sessions with no status change past the hang threshold are marked hung.

Only one monitor runs per state root; a second invocation fails fast.
Runs in the foreground until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().BoolVar(&monitorOnce, "once", false, "run a single poll pass and exit")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(true)
	if err != nil {
		return err
	}
	defer app.close()

	m := monitor.New(app.cfg, app.tracker, app.logger, app.archive)

	if monitorOnce {
		// Take the monitor lock for the pass so a one-shot poll can't
		// race a running daemon into double-completing sessions.
		lock := util.NewFileLock(app.cfg.MonitorLock())
		locked, err := lock.TryLock()
		if err != nil {
			return err
		}
		if !locked {
			return fmt.Errorf("monitor already running; one-shot poll skipped")
		}
		defer func() { _ = lock.Unlock() }()
		m.Poll()
		fmt.Printf("Polled %d session(s).\n", app.tracker.Len())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Monitoring sessions under %s (every %v). Ctrl-C to stop.\n",
		app.cfg.Root, app.cfg.PollInterval)
	return m.Run(ctx)
}
