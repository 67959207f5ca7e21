package security

import (
	"context"
	"errors"

	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
)

// Repository defines persistence operations for the security system state.
// The engine owns no state itself; everything it decides on is read from and
// written through this interface.
type Repository interface {
	// ArmingStatus returns the current arming status.
	ArmingStatus(ctx context.Context) (domain.ArmingStatus, error)
	// SetArmingStatus stores a new arming status.
	SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error
	// AlarmStatus returns the current alarm status.
	AlarmStatus(ctx context.Context) (domain.AlarmStatus, error)
	// SetAlarmStatus stores a new alarm status.
	SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error
	// Sensors returns the sensor roster in stable name order.
	// Implementations return copies; mutations flow back via UpdateSensor.
	Sensors(ctx context.Context) ([]*domain.Sensor, error)
	// AddSensor registers a sensor. Re-adding a known sensor is a no-op
	// update, never an error.
	AddSensor(ctx context.Context, sensor *domain.Sensor) error
	// RemoveSensor unregisters a sensor. Removing an unknown sensor is a
	// no-op, never an error.
	RemoveSensor(ctx context.Context, sensor *domain.Sensor) error
	// UpdateSensor writes back a sensor's mutable fields, most importantly
	// the Active flag. Unknown sensors yield ErrSensorNotFound.
	UpdateSensor(ctx context.Context, sensor *domain.Sensor) error
}

// ErrSensorNotFound is returned when an operation references a sensor
// identity the repository does not know.
var ErrSensorNotFound = errors.New("sensor not found")
