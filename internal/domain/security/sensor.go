package security

import "github.com/google/uuid"

// SensorType describes what a sensor watches.
type SensorType string

const (
	// Door sensors trip when a monitored door opens.
	Door SensorType = "DOOR"
	// Window sensors trip when a monitored window opens.
	Window SensorType = "WINDOW"
	// Motion sensors trip on movement in their field of view.
	Motion SensorType = "MOTION"
)

// String returns the canonical storage form of the sensor type.
func (t SensorType) String() string {
	return string(t)
}

// ParseSensorType converts string input to a SensorType.
func ParseSensorType(s string) (SensorType, bool) {
	switch normalizeEnumInput(s) {
	case "DOOR":
		return Door, true
	case "WINDOW":
		return Window, true
	case "MOTION":
		return Motion, true
	default:
		return Door, false
	}
}

// Sensor is a single door, window or motion input known to the system.
type Sensor struct {
	// ID uniquely identifies the sensor for its whole lifetime.
	ID uuid.UUID
	// Name is the human-readable label shown on the panel.
	Name string
	// Type describes what the sensor watches.
	Type SensorType
	// Active reports whether the sensor is currently tripped.
	// New sensors always start inactive.
	Active bool
}

// NewSensor creates an inactive sensor with a fresh identity.
func NewSensor(name string, sensorType SensorType) *Sensor {
	return &Sensor{
		ID:   uuid.New(),
		Name: name,
		Type: sensorType,
	}
}

// Clone returns a copy of the sensor to avoid leaking internal references.
func (s *Sensor) Clone() *Sensor {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}
