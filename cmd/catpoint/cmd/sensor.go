package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
	"github.com/DonnaRichards/UdaSecurity/internal/service/panel"
)

var (
	// errUnknownSensorType is returned when the type flag names
	// a sensor type the system does not know.
	errUnknownSensorType = errors.New("unknown sensor type, use door, window or motion")
	// errSensorTypeRequired is returned when a command needs the type flag
	// to be set explicitly.
	errSensorTypeRequired = errors.New("sensor type must be set with --type")
)

// sensorTypeFlag narrows sensor commands to one sensor type.
var sensorTypeFlag string

// sensorCmd groups the sensor management commands.
var sensorCmd = &cobra.Command{
	Use:   "sensor",
	Short: "Manage the sensor roster.",
	Long: `Adds, removes, lists and toggles the door, window and motion sensors
the alarm decisions are based on.`,
}

// sensorAddCmd registers a new sensor.
var sensorAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new sensor.",
	Long: `Registers a new inactive sensor under the given name. The sensor type is
required so that later commands can tell same-named sensors apart.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		sensorType, err := parseSensorTypeFlag(true)
		if err != nil {
			return err
		}

		return runWithPanel(func(ctx context.Context, p *panel.Panel) error {
			_, err := p.AddSensor(ctx, args[0], sensorType)
			return err
		})
	},
}

// sensorRemoveCmd unregisters a sensor.
var sensorRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Unregister a sensor.",
	Long: `Removes the sensor with the given name. If several sensors share the name,
narrow the match with --type.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		sensorType, err := parseSensorTypeFlag(false)
		if err != nil {
			return err
		}

		return runWithPanel(func(ctx context.Context, p *panel.Panel) error {
			_, err := p.RemoveSensor(ctx, args[0], sensorType)
			return err
		})
	},
}

// sensorListCmd prints the sensor roster.
var sensorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered sensors.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runWithPanel(func(ctx context.Context, p *panel.Panel) error {
			_, err := p.ListSensors(ctx)
			return err
		})
	},
}

// sensorActivateCmd marks a sensor as triggered.
var sensorActivateCmd = &cobra.Command{
	Use:   "activate <name>",
	Short: "Mark a sensor as triggered.",
	Long: `Activates the sensor with the given name, running the alarm decision rules:
while the system is armed the first activation starts the pending alarm
countdown and a second one sounds the alarm.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runSensorToggle(args[0], true)
	},
}

// sensorDeactivateCmd marks a sensor as idle.
var sensorDeactivateCmd = &cobra.Command{
	Use:   "deactivate <name>",
	Short: "Mark a sensor as idle.",
	Long: `Deactivates the sensor with the given name. When the last active sensor
goes idle during the pending alarm countdown, the system stands down.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runSensorToggle(args[0], false)
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	for _, command := range []*cobra.Command{sensorAddCmd, sensorRemoveCmd, sensorActivateCmd, sensorDeactivateCmd} {
		command.Flags().
			StringVarP(&sensorTypeFlag, "type", "t", "", "sensor type (door, window, motion)")
	}

	sensorCmd.AddCommand(sensorAddCmd, sensorRemoveCmd, sensorListCmd, sensorActivateCmd, sensorDeactivateCmd)
}

// parseSensorTypeFlag validates the type flag.
// An empty flag is allowed unless required is set; it means "any type".
func parseSensorTypeFlag(required bool) (domain.SensorType, error) {
	if sensorTypeFlag == "" {
		if required {
			return "", errSensorTypeRequired
		}

		return "", nil
	}

	sensorType, ok := domain.ParseSensorType(sensorTypeFlag)
	if !ok {
		return "", fmt.Errorf("%q: %w", sensorTypeFlag, errUnknownSensorType)
	}

	return sensorType, nil
}

// runSensorToggle flips the activation flag of the named sensor.
func runSensorToggle(name string, active bool) error {
	sensorType, err := parseSensorTypeFlag(false)
	if err != nil {
		return err
	}

	return runWithPanel(func(ctx context.Context, p *panel.Panel) error {
		_, err := p.SetSensorActive(ctx, name, sensorType, active)
		return err
	})
}
