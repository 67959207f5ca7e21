package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DonnaRichards/UdaSecurity/internal/service/monitor"
)

// monitorCmd runs the long-lived status watcher.
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch the security status and react when the alarm sounds.",
	Long: `Polls the shared database and logs every arming and alarm status change.
When the alarm starts sounding, the configured alarm command is executed.

Only one monitor may watch a database at a time; a marker file next to the
database enforces that. The monitor runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		options := &monitor.Options{
			ConfigPath: configPath,
		}

		return monitor.Run(ctx, options)
	},
}
