package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DonnaRichards/UdaSecurity/internal/config"
	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
	"github.com/DonnaRichards/UdaSecurity/internal/service/monitor"
	"github.com/DonnaRichards/UdaSecurity/internal/service/panel"
	"github.com/DonnaRichards/UdaSecurity/internal/service/vision"
)

// TestPanelMonitor_SharedDatabase runs the control panel and the monitor
// against one database file and verifies the monitor reacts to an alarm
// raised through the panel by starting the configured alarm command.
func TestPanelMonitor_SharedDatabase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sirenPath := filepath.Join(dir, "siren")
	settingsPath := filepath.Join(dir, "catpoint-settings.yaml")

	// Both processes share one settings file pointing at one database.
	cfg := config.Default()
	cfg.DatabaseFile = filepath.Join(dir, "catpoint.db")
	cfg.AlarmCommand = "touch " + sirenPath
	require.NoError(t, config.Save(settingsPath, cfg))

	ctx := context.Background()

	p, err := panel.Open(ctx, settingsPath, panel.WithClassifier(vision.NewFakeClassifier(false)))
	require.NoError(t, err)

	defer func() {
		_ = p.Close()
	}()

	_, err = p.AddSensor(ctx, "front door", domain.Door)
	require.NoError(t, err)

	require.NoError(t, p.Arm(ctx, domain.ArmedAway))

	// Start the monitor beside the panel.
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() {
		options := &monitor.Options{
			ConfigPath:   settingsPath,
			PollInterval: 20 * time.Millisecond,
		}

		done <- monitor.Run(runCtx, options)
	}()

	// Wait until the monitor has claimed the database.
	markerPath := filepath.Join(dir, monitor.MarkerFilename)
	require.Eventually(t, func() bool {
		_, statErr := os.Stat(markerPath)
		return statErr == nil
	}, 2*time.Second, 10*time.Millisecond)

	// The first activation starts the countdown, repeating it sounds the alarm.
	_, err = p.SetSensorActive(ctx, "front door", "", true)
	require.NoError(t, err)

	_, err = p.SetSensorActive(ctx, "front door", "", true)
	require.NoError(t, err)

	snapshot, err := p.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Alarm, snapshot.AlarmStatus)

	// The monitor notices the alarm and runs the configured command.
	require.Eventually(t, func() bool {
		_, statErr := os.Stat(sirenPath)
		return statErr == nil
	}, 2*time.Second, 10*time.Millisecond)

	// Verify the monitor exits cleanly on cancellation and cleans up after itself.
	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop after cancellation")
	}

	_, err = os.Stat(markerPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}
