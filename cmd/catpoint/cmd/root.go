package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DonnaRichards/UdaSecurity/internal/config"
	"github.com/DonnaRichards/UdaSecurity/internal/logger"
	"github.com/DonnaRichards/UdaSecurity/internal/service/panel"
	"github.com/DonnaRichards/UdaSecurity/internal/version"
)

// errUnknownLogLevel is returned when the log level flag or setting
// names a level the logger does not know.
var errUnknownLogLevel = errors.New("unknown log level")

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the configured logging level when set.
	logLevel string

	// rootCmd represents the base command of the catpoint control panel.
	rootCmd = &cobra.Command{
		Use:   "catpoint",
		Short: "Control the catpoint home security system.",
		Long: `Catpoint is a home security control panel built around door, window and
motion sensors plus a camera-based cat detector.

Arm the system in the home or away profile and any sensor activation starts
a pending alarm countdown; a second activation sounds the alarm. In the home
profile a cat caught on camera sounds the alarm as well. All state lives in
a local SQLite database shared by every command, so a separate monitor
process can watch for alarms and react to them.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return applyLogLevel()
		},
	}
)

// Execute runs the catpoint CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+")")
	rootCmd.PersistentFlags().
		StringVarP(&logLevel, "log-level", "l", "", "minimum log level, overrides the configured one (debug, info, warn, error)")

	rootCmd.AddCommand(statusCmd, armCmd, disarmCmd, sensorCmd, imageCmd, monitorCmd)
}

// applyLogLevel resolves the effective logging level before any command runs.
// The command line flag wins, otherwise the configured value applies.
func applyLogLevel() error {
	level := logLevel
	if level == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		level = cfg.LogLevel
	}

	parsed, ok := logger.ParseLogLevel(level)
	if !ok {
		return fmt.Errorf("%q: %w", level, errUnknownLogLevel)
	}

	logger.SetLevel(parsed)

	return nil
}

// runWithPanel owns the shared command lifecycle: graceful shutdown wiring,
// opening the panel against the configured database and closing it afterwards.
func runWithPanel(fn func(ctx context.Context, p *panel.Panel) error) error {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	p, err := panel.Open(ctx, configPath)
	if err != nil {
		return err
	}

	defer func() {
		_ = p.Close()
	}()

	return fn(ctx, p)
}
