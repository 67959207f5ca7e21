package security

import (
	"context"
	"fmt"
	"image"
	"sync"

	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
	"github.com/DonnaRichards/UdaSecurity/internal/logger"
	repo "github.com/DonnaRichards/UdaSecurity/internal/repository/security"
	"github.com/DonnaRichards/UdaSecurity/internal/service/vision"
)

// DefaultConfidenceThreshold is the cat detection confidence, in percent,
// used when no override is configured.
const DefaultConfidenceThreshold float32 = 50.0

// Service is the alarm decision engine. It evaluates sensor events, arming
// changes and image scans against the escalation rules and persists the
// outcome through the repository.
type Service struct {
	// repo owns all persistent state the engine decides on.
	repo repo.Repository
	// classifier answers the cat question for processed images.
	classifier vision.Classifier
	// confidenceThreshold is passed to the classifier on every scan.
	confidenceThreshold float32
	// listeners receive a notification per observable change.
	listeners map[StatusListener]struct{}
	// mu serializes engine operations so each one is atomic for callers.
	mu sync.RWMutex
}

// Option configures engine behaviour.
type Option func(*Service)

// WithConfidenceThreshold overrides the cat detection confidence threshold,
// expressed in percent. Non-positive values keep the default.
func WithConfidenceThreshold(threshold float32) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.confidenceThreshold = threshold
		}
	}
}

// New creates an engine backed by the provided repository and classifier.
func New(repository repo.Repository, classifier vision.Classifier, opts ...Option) *Service {
	s := &Service{
		repo:                repository,
		classifier:          classifier,
		confidenceThreshold: DefaultConfidenceThreshold,
		listeners:           make(map[StatusListener]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ChangeSensorActivationStatus applies a sensor activation or deactivation
// and resolves the resulting alarm status:
//   - while the alarm is sounding, sensor changes never touch the alarm;
//   - a sensor going active escalates NO_ALARM to PENDING_ALARM and
//     PENDING_ALARM to ALARM, unless the system is disarmed;
//   - the last active sensor going inactive during PENDING_ALARM returns
//     the system to NO_ALARM;
//   - re-activating an already-active sensor during PENDING_ALARM escalates
//     to ALARM, while deactivating an already-inactive sensor changes nothing.
//
// The new activation flag is always written back to the repository and
// mirrored onto the caller's sensor, whatever the alarm outcome.
func (s *Service) ChangeSensorActivationStatus(ctx context.Context, sensor *domain.Sensor, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.findSensor(ctx, sensor)
	if err != nil {
		return err
	}

	alarmStatus, err := s.repo.AlarmStatus(ctx)
	if err != nil {
		return fmt.Errorf("read alarm status: %w", err)
	}

	if alarmStatus != domain.Alarm {
		switch {
		case !stored.Active && active:
			err = s.handleSensorActivated(ctx, alarmStatus)
		case stored.Active && !active:
			err = s.handleSensorDeactivated(ctx, alarmStatus, stored)
		case stored.Active && active:
			// A repeat activation during the countdown is itself a signal.
			if alarmStatus == domain.PendingAlarm {
				err = s.setAlarmStatus(ctx, domain.Alarm)
			}
		default:
			// Deactivating an inactive sensor has no alarm effect.
		}

		if err != nil {
			return err
		}
	}

	stored.Active = active
	if err = s.repo.UpdateSensor(ctx, stored); err != nil {
		return fmt.Errorf("update sensor: %w", err)
	}

	sensor.Active = active

	s.notifySensorStatusChanged()

	return nil
}

// handleSensorActivated escalates the alarm status for a sensor going active.
func (s *Service) handleSensorActivated(ctx context.Context, alarmStatus domain.AlarmStatus) error {
	armingStatus, err := s.repo.ArmingStatus(ctx)
	if err != nil {
		return fmt.Errorf("read arming status: %w", err)
	}

	if armingStatus == domain.Disarmed {
		return nil
	}

	switch alarmStatus {
	case domain.NoAlarm:
		return s.setAlarmStatus(ctx, domain.PendingAlarm)
	case domain.PendingAlarm:
		return s.setAlarmStatus(ctx, domain.Alarm)
	default:
		return nil
	}
}

// handleSensorDeactivated cancels a pending countdown once the roster goes
// quiet. The deactivating sensor still reads active in the repository, so it
// is excluded by identity.
func (s *Service) handleSensorDeactivated(
	ctx context.Context,
	alarmStatus domain.AlarmStatus,
	deactivating *domain.Sensor,
) error {
	if alarmStatus != domain.PendingAlarm {
		return nil
	}

	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return fmt.Errorf("read sensors: %w", err)
	}

	for _, sensor := range sensors {
		if sensor.ID == deactivating.ID {
			continue
		}

		if sensor.Active {
			return nil
		}
	}

	return s.setAlarmStatus(ctx, domain.NoAlarm)
}

// SetArmingStatus switches the system between disarmed and the armed
// profiles. Disarming forces the alarm status back to NO_ALARM; arming
// resets every sensor to inactive without running the escalation rules.
func (s *Service) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status == domain.Disarmed {
		if err := s.setAlarmStatus(ctx, domain.NoAlarm); err != nil {
			return err
		}
	} else {
		sensors, err := s.repo.Sensors(ctx)
		if err != nil {
			return fmt.Errorf("read sensors: %w", err)
		}

		// Direct writes: arming must never trip the countdown itself.
		for _, sensor := range sensors {
			sensor.Active = false
			if err = s.repo.UpdateSensor(ctx, sensor); err != nil {
				return fmt.Errorf("reset sensor %q: %w", sensor.Name, err)
			}
		}
	}

	if err := s.repo.SetArmingStatus(ctx, status); err != nil {
		return fmt.Errorf("write arming status: %w", err)
	}

	logger.DebugKV(ctx, "Arming status changed", "arming_status", status)

	s.notifySensorStatusChanged()

	return nil
}

// ProcessImage runs the classifier over a camera image and applies the
// image rules: a cat while armed-home sounds the alarm regardless of
// sensors; no cat with a quiet roster stands the system down. Classifier
// failures propagate and leave the alarm status untouched.
func (s *Service) ProcessImage(ctx context.Context, img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	catDetected, err := s.classifier.ContainsCat(ctx, img, s.confidenceThreshold)
	if err != nil {
		return fmt.Errorf("classify image: %w", err)
	}

	logger.DebugKV(ctx, "Image processed", "cat_detected", catDetected)

	if catDetected {
		var armingStatus domain.ArmingStatus

		armingStatus, err = s.repo.ArmingStatus(ctx)
		if err != nil {
			return fmt.Errorf("read arming status: %w", err)
		}

		if armingStatus == domain.ArmedHome {
			if err = s.setAlarmStatus(ctx, domain.Alarm); err != nil {
				return err
			}
		}
	} else {
		var quiet bool

		quiet, err = s.allSensorsInactive(ctx)
		if err != nil {
			return err
		}

		if quiet {
			if err = s.setAlarmStatus(ctx, domain.NoAlarm); err != nil {
				return err
			}
		}
	}

	s.notifyCatDetected(catDetected)

	return nil
}

// AddSensor registers a sensor with the repository and announces the roster
// change. Re-adding a known sensor is tolerated.
func (s *Service) AddSensor(ctx context.Context, sensor *domain.Sensor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.AddSensor(ctx, sensor); err != nil {
		return fmt.Errorf("add sensor: %w", err)
	}

	s.notifySensorStatusChanged()

	return nil
}

// RemoveSensor unregisters a sensor and announces the roster change.
// Removing an unknown sensor is tolerated.
func (s *Service) RemoveSensor(ctx context.Context, sensor *domain.Sensor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.RemoveSensor(ctx, sensor); err != nil {
		return fmt.Errorf("remove sensor: %w", err)
	}

	s.notifySensorStatusChanged()

	return nil
}

// AddStatusListener registers a listener. Duplicate adds are no-ops.
func (s *Service) AddStatusListener(listener StatusListener) {
	if listener == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners[listener] = struct{}{}
}

// RemoveStatusListener unregisters a listener. Absent listeners are no-ops.
func (s *Service) RemoveStatusListener(listener StatusListener) {
	if listener == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.listeners, listener)
}

// AlarmStatus returns the current alarm status.
func (s *Service) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repo.AlarmStatus(ctx)
}

// ArmingStatus returns the current arming status.
func (s *Service) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repo.ArmingStatus(ctx)
}

// Sensors returns the current sensor roster.
func (s *Service) Sensors(ctx context.Context) ([]*domain.Sensor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repo.Sensors(ctx)
}

// findSensor resolves the caller's sensor against the stored roster by ID.
func (s *Service) findSensor(ctx context.Context, sensor *domain.Sensor) (*domain.Sensor, error) {
	if sensor == nil {
		return nil, repo.ErrSensorNotFound
	}

	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return nil, fmt.Errorf("read sensors: %w", err)
	}

	for _, stored := range sensors {
		if stored.ID == sensor.ID {
			return stored, nil
		}
	}

	return nil, fmt.Errorf("sensor %s: %w", sensor.ID, repo.ErrSensorNotFound)
}

// allSensorsInactive reports whether no sensor is currently active.
func (s *Service) allSensorsInactive(ctx context.Context) (bool, error) {
	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return false, fmt.Errorf("read sensors: %w", err)
	}

	for _, sensor := range sensors {
		if sensor.Active {
			return false, nil
		}
	}

	return true, nil
}

// setAlarmStatus persists a new alarm status and broadcasts it once.
func (s *Service) setAlarmStatus(ctx context.Context, status domain.AlarmStatus) error {
	if err := s.repo.SetAlarmStatus(ctx, status); err != nil {
		return fmt.Errorf("write alarm status: %w", err)
	}

	logger.DebugKV(ctx, "Alarm status changed", "alarm_status", status)

	for listener := range s.listeners {
		listener.AlarmStatusChanged(status)
	}

	return nil
}

// notifyCatDetected broadcasts a classifier result to all listeners.
func (s *Service) notifyCatDetected(catDetected bool) {
	for listener := range s.listeners {
		listener.CatDetected(catDetected)
	}
}

// notifySensorStatusChanged broadcasts a roster or activation change.
func (s *Service) notifySensorStatusChanged() {
	for listener := range s.listeners {
		listener.SensorStatusChanged()
	}
}
