package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
)

// TestMemoryRepositoryDefaults verifies the initial disarmed, quiet state.
func TestMemoryRepositoryDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()

	arming, err := repo.ArmingStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Disarmed, arming)

	alarm, err := repo.AlarmStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.NoAlarm, alarm)

	sensors, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.Empty(t, sensors)
}

// TestMemoryRepositoryStatusRoundTrip verifies stored statuses read back unchanged.
func TestMemoryRepositoryStatusRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.SetArmingStatus(ctx, domain.ArmedAway))
	require.NoError(t, repo.SetAlarmStatus(ctx, domain.PendingAlarm))

	arming, err := repo.ArmingStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.ArmedAway, arming)

	alarm, err := repo.AlarmStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.PendingAlarm, alarm)
}

// TestMemoryRepositorySensorLifecycle walks a sensor through add, list,
// update, and remove, including the tolerant and error paths.
func TestMemoryRepositorySensorLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()

	window := domain.NewSensor("back window", domain.Window)
	door := domain.NewSensor("front door", domain.Door)

	require.NoError(t, repo.AddSensor(ctx, door))
	require.NoError(t, repo.AddSensor(ctx, window))

	// Re-adding an existing sensor is an update, not an error.
	require.NoError(t, repo.AddSensor(ctx, door))

	sensors, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 2)
	require.Equal(t, "back window", sensors[0].Name)
	require.Equal(t, "front door", sensors[1].Name)

	door.Active = true
	require.NoError(t, repo.UpdateSensor(ctx, door))

	sensors, err = repo.Sensors(ctx)
	require.NoError(t, err)
	require.True(t, sensors[1].Active)

	require.NoError(t, repo.RemoveSensor(ctx, window))

	// Removing a sensor that is already gone is tolerated.
	require.NoError(t, repo.RemoveSensor(ctx, window))

	sensors, err = repo.Sensors(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 1)

	// Updating an unknown sensor is the one strict path.
	err = repo.UpdateSensor(ctx, domain.NewSensor("ghost", domain.Motion))
	require.ErrorIs(t, err, ErrSensorNotFound)
}

// TestMemoryRepositoryCopies verifies that callers cannot mutate stored
// state through returned sensors or retained arguments.
func TestMemoryRepositoryCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()

	sensor := domain.NewSensor("garage motion", domain.Motion)
	require.NoError(t, repo.AddSensor(ctx, sensor))

	// Mutating the argument after the call must not leak into storage.
	sensor.Active = true

	sensors, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.False(t, sensors[0].Active)

	// Mutating a returned sensor must not leak either.
	sensors[0].Name = "changed"

	again, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.Equal(t, "garage motion", again[0].Name)
}
