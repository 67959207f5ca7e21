package panel

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonnaRichards/UdaSecurity/internal/config"
	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
	repo "github.com/DonnaRichards/UdaSecurity/internal/repository/security"
	"github.com/DonnaRichards/UdaSecurity/internal/service/vision"
)

// openTestPanel builds a panel over a temp database, optionally with a
// scripted classifier.
func openTestPanel(t *testing.T, classifier vision.Classifier) *Panel {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, config.DefaultConfigFilename)

	cfg := config.Default()
	cfg.DatabaseFile = filepath.Join(dir, config.DefaultDatabaseFilename)
	require.NoError(t, config.Save(configPath, cfg))

	var opts []Option
	if classifier != nil {
		opts = append(opts, WithClassifier(classifier))
	}

	p, err := Open(context.Background(), configPath, opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, p.Close())
	})

	return p
}

// writeTestImage encodes a small PNG frame for scan tests.
func writeTestImage(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "frame.png")

	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.NoError(t, file.Close())

	return path
}

// TestOpenRejectsMissingExplicitConfig verifies an explicit but absent
// settings path fails instead of silently using defaults.
func TestOpenRejectsMissingExplicitConfig(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// TestPanelStartsDisarmedAndQuiet verifies the initial status snapshot.
func TestPanelStartsDisarmedAndQuiet(t *testing.T) {
	t.Parallel()

	p := openTestPanel(t, nil)

	snapshot, err := p.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Disarmed, snapshot.ArmingStatus)
	require.Equal(t, domain.NoAlarm, snapshot.AlarmStatus)
	require.Empty(t, snapshot.Sensors)
}

// TestPanelSensorManagement covers adding, listing, resolving and removing
// sensors by name, including the duplicate, ambiguous and missing cases.
func TestPanelSensorManagement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := openTestPanel(t, nil)

	door, err := p.AddSensor(ctx, "hall", domain.Door)
	require.NoError(t, err)
	require.Equal(t, domain.Door, door.Type)
	require.False(t, door.Active)

	_, err = p.AddSensor(ctx, "hall", domain.Motion)
	require.NoError(t, err)

	// The same (name, type) pair cannot be registered twice.
	_, err = p.AddSensor(ctx, "hall", domain.Door)
	require.ErrorIs(t, err, errSensorExists)

	_, err = p.AddSensor(ctx, "   ", domain.Door)
	require.ErrorIs(t, err, errSensorNameRequired)

	sensors, err := p.Sensors(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 2)

	// A bare name matching two sensors needs a type to disambiguate.
	_, err = p.SetSensorActive(ctx, "hall", "", true)
	require.ErrorIs(t, err, errSensorAmbiguous)

	activated, err := p.SetSensorActive(ctx, "hall", domain.Motion, true)
	require.NoError(t, err)
	require.True(t, activated.Active)

	_, err = p.RemoveSensor(ctx, "attic", "")
	require.ErrorIs(t, err, repo.ErrSensorNotFound)

	removed, err := p.RemoveSensor(ctx, "hall", domain.Door)
	require.NoError(t, err)
	require.Equal(t, domain.Door, removed.Type)

	sensors, err = p.Sensors(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 1)
	require.Equal(t, domain.Motion, sensors[0].Type)
}

// TestPanelArmingFlow walks arming, escalation through sensor activity and
// disarming end to end against the real engine and store.
func TestPanelArmingFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := openTestPanel(t, nil)

	require.ErrorIs(t, p.Arm(ctx, domain.Disarmed), errNotAnArmedProfile)

	_, err := p.AddSensor(ctx, "front door", domain.Door)
	require.NoError(t, err)
	_, err = p.AddSensor(ctx, "kitchen window", domain.Window)
	require.NoError(t, err)

	require.NoError(t, p.Arm(ctx, domain.ArmedAway))

	_, err = p.SetSensorActive(ctx, "front door", "", true)
	require.NoError(t, err)

	snapshot, err := p.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.PendingAlarm, snapshot.AlarmStatus)

	_, err = p.SetSensorActive(ctx, "kitchen window", "", true)
	require.NoError(t, err)

	snapshot, err = p.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Alarm, snapshot.AlarmStatus)

	require.NoError(t, p.Disarm(ctx))

	snapshot, err = p.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Disarmed, snapshot.ArmingStatus)
	require.Equal(t, domain.NoAlarm, snapshot.AlarmStatus)

	// Re-arming resets the flags that were left active before disarming.
	require.NoError(t, p.Arm(ctx, domain.ArmedHome))

	snapshot, err = p.Status(ctx)
	require.NoError(t, err)

	for _, sensor := range snapshot.Sensors {
		require.False(t, sensor.Active)
	}
}

// TestPanelScanImage verifies a decoded frame flows through the engine and
// the classifier answer is reported back.
func TestPanelScanImage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	framePath := writeTestImage(t)

	p := openTestPanel(t, vision.NewFakeClassifier(true))

	require.NoError(t, p.Arm(ctx, domain.ArmedHome))

	catDetected, err := p.ScanImage(ctx, framePath)
	require.NoError(t, err)
	require.True(t, catDetected)

	snapshot, err := p.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Alarm, snapshot.AlarmStatus)
}

// TestPanelScanImageBadInput verifies missing and undecodable files fail
// without touching the system state.
func TestPanelScanImageBadInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := openTestPanel(t, vision.NewFakeClassifier(true))

	_, err := p.ScanImage(ctx, filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o600))

	_, err = p.ScanImage(ctx, garbage)
	require.Error(t, err)

	snapshot, err := p.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.NoAlarm, snapshot.AlarmStatus)
}
