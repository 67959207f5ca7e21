package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/DonnaRichards/UdaSecurity/internal/service/panel"
)

// imageCmd groups the camera image commands.
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Run camera images through the cat detector.",
}

// imageScanCmd classifies a single camera frame.
var imageScanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Scan a camera frame for a cat.",
	Long: `Decodes the given JPEG or PNG file and runs it through the cat detector.

With the system armed in the home profile, a detected cat sounds the alarm.
Without a cat the system stands down once no sensor is active.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runWithPanel(func(ctx context.Context, p *panel.Panel) error {
			_, err := p.ScanImage(ctx, args[0])
			return err
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	imageCmd.AddCommand(imageScanCmd)
}
