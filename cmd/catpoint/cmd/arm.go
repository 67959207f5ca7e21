package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
	"github.com/DonnaRichards/UdaSecurity/internal/service/panel"
)

// errUnknownProfile is returned when the arm command argument is not
// a recognized armed profile.
var errUnknownProfile = errors.New("unknown armed profile, use home or away")

// armCmd switches the system into one of the armed profiles.
var armCmd = &cobra.Command{
	Use:   "arm home|away",
	Short: "Arm the system in the home or away profile.",
	Long: `Arms the system and resets every sensor to inactive so the countdown
starts from a clean slate.

In the away profile any sensor activation starts the pending alarm countdown.
The home profile additionally sounds the alarm when a camera scan detects
a cat.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		status, ok := domain.ParseArmingStatus(args[0])
		if !ok || !status.Armed() {
			return fmt.Errorf("%q: %w", args[0], errUnknownProfile)
		}

		return runWithPanel(func(ctx context.Context, p *panel.Panel) error {
			return p.Arm(ctx, status)
		})
	},
}

// disarmCmd switches the system off.
var disarmCmd = &cobra.Command{
	Use:   "disarm",
	Short: "Disarm the system and stand the alarm down.",
	Long: `Disarms the system. The alarm status is reset to no alarm, so a sounding
siren goes quiet and a pending countdown is abandoned.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runWithPanel(func(ctx context.Context, p *panel.Panel) error {
			return p.Disarm(ctx)
		})
	},
}
