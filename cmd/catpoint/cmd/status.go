package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/DonnaRichards/UdaSecurity/internal/service/panel"
)

// statusCmd reports the current arming status, alarm status and sensor roster.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current system and sensor status.",
	Long: `Prints the arming status, the alarm status and every registered sensor
with its activation state.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runWithPanel(func(ctx context.Context, p *panel.Panel) error {
			_, err := p.Status(ctx)
			return err
		})
	},
}
