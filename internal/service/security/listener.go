package security

import (
	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
)

// StatusListener receives notifications about security state changes.
// Callbacks run synchronously inside engine operations, so implementations
// must return promptly and must not call back into the engine.
type StatusListener interface {
	// AlarmStatusChanged fires once for every persisted alarm status write.
	AlarmStatusChanged(status domain.AlarmStatus)
	// CatDetected fires once per processed image with the classifier's answer.
	CatDetected(catDetected bool)
	// SensorStatusChanged fires when the sensor roster or any sensor's
	// activation flag changes.
	SensorStatusChanged()
}
