package security

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
)

// MemoryRepository keeps the security state in process memory.
// It is safe for concurrent use and hands out deep copies, so callers can
// mutate returned sensors without racing each other.
type MemoryRepository struct {
	mu           sync.RWMutex
	armingStatus domain.ArmingStatus
	alarmStatus  domain.AlarmStatus
	sensors      map[uuid.UUID]*domain.Sensor
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository returns a repository seeded with the disarmed,
// no-alarm initial state and an empty sensor roster.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		armingStatus: domain.Disarmed,
		alarmStatus:  domain.NoAlarm,
		sensors:      make(map[uuid.UUID]*domain.Sensor),
	}
}

// ArmingStatus returns the current arming status.
func (r *MemoryRepository) ArmingStatus(_ context.Context) (domain.ArmingStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.armingStatus, nil
}

// SetArmingStatus stores a new arming status.
func (r *MemoryRepository) SetArmingStatus(_ context.Context, status domain.ArmingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.armingStatus = status

	return nil
}

// AlarmStatus returns the current alarm status.
func (r *MemoryRepository) AlarmStatus(_ context.Context) (domain.AlarmStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.alarmStatus, nil
}

// SetAlarmStatus stores a new alarm status.
func (r *MemoryRepository) SetAlarmStatus(_ context.Context, status domain.AlarmStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.alarmStatus = status

	return nil
}

// Sensors returns copies of all registered sensors sorted by name,
// with the ID as a tiebreaker so the order is deterministic.
func (r *MemoryRepository) Sensors(_ context.Context) ([]*domain.Sensor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Sensor, 0, len(r.sensors))
	for _, sensor := range r.sensors {
		result = append(result, sensor.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if c := strings.Compare(result[i].Name, result[j].Name); c != 0 {
			return c < 0
		}

		return result[i].ID.String() < result[j].ID.String()
	})

	return result, nil
}

// AddSensor registers a sensor, overwriting any previous entry with the
// same ID.
func (r *MemoryRepository) AddSensor(_ context.Context, sensor *domain.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sensors[sensor.ID] = sensor.Clone()

	return nil
}

// RemoveSensor unregisters a sensor. Unknown sensors are ignored.
func (r *MemoryRepository) RemoveSensor(_ context.Context, sensor *domain.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sensors, sensor.ID)

	return nil
}

// UpdateSensor writes back a sensor's fields.
// It returns ErrSensorNotFound if the sensor was never added.
func (r *MemoryRepository) UpdateSensor(_ context.Context, sensor *domain.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sensors[sensor.ID]; !ok {
		return ErrSensorNotFound
	}

	r.sensors[sensor.ID] = sensor.Clone()

	return nil
}
