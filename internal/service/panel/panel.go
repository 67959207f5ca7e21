package panel

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Register decoders for the camera frame formats the CLI accepts.
	_ "image/jpeg"
	_ "image/png"

	"github.com/DonnaRichards/UdaSecurity/internal/config"
	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
	"github.com/DonnaRichards/UdaSecurity/internal/logger"
	repo "github.com/DonnaRichards/UdaSecurity/internal/repository/security"
	"github.com/DonnaRichards/UdaSecurity/internal/service/security"
	"github.com/DonnaRichards/UdaSecurity/internal/service/vision"
)

// Panel wires the configured collaborators around the decision engine.
type Panel struct {
	// repository is the SQLite store shared with the monitor process.
	repository *repo.SQLiteRepository
	// classifier answers image scans.
	classifier vision.Classifier
	// engine applies the alarm decision rules.
	engine *security.Service
}

// Snapshot is the full system state as reported by the status operation.
type Snapshot struct {
	ArmingStatus domain.ArmingStatus
	AlarmStatus  domain.AlarmStatus
	Sensors      []*domain.Sensor
}

// Option configures panel construction.
type Option func(*Panel)

// WithClassifier overrides the classifier used for image scans.
func WithClassifier(classifier vision.Classifier) Option {
	return func(p *Panel) {
		if classifier != nil {
			p.classifier = classifier
		}
	}
}

var (
	// errSensorNameRequired is returned when a sensor operation gets an empty name.
	errSensorNameRequired = errors.New("sensor name must be provided")
	// errSensorExists is returned when adding a sensor that already exists.
	errSensorExists = errors.New("sensor already exists")
	// errSensorAmbiguous is returned when a name matches several sensors.
	errSensorAmbiguous = errors.New("sensor name matches several sensors, narrow it with --type")
	// errNotAnArmedProfile guards Arm against the disarmed status.
	errNotAnArmedProfile = errors.New("not an armed profile")
)

// Open loads configuration and prepares a ready-to-use panel.
// The caller owns the returned panel and must Close it.
func Open(ctx context.Context, configPath string, opts ...Option) (*Panel, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	p := &Panel{
		//nolint:gosec // Time-based seed is fine for simulated scan answers.
		classifier: vision.NewRandomClassifier(uint64(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.repository, err = repo.OpenSQLite(ctx, cfg.DatabaseFile)
	if err != nil {
		return nil, err
	}

	p.engine = security.New(p.repository, p.classifier,
		security.WithConfidenceThreshold(cfg.CatConfidenceThreshold))
	p.engine.AddStatusListener(newLogListener(ctx))

	logger.DebugKV(ctx, "Panel ready", "database_file", cfg.DatabaseFile)

	return p, nil
}

// Close releases the panel's database handle.
func (p *Panel) Close() error {
	if p == nil || p.repository == nil {
		return nil
	}

	return p.repository.Close()
}

// Status reports and logs the current system state.
func (p *Panel) Status(ctx context.Context) (*Snapshot, error) {
	armingStatus, err := p.engine.ArmingStatus(ctx)
	if err != nil {
		return nil, err
	}

	alarmStatus, err := p.engine.AlarmStatus(ctx)
	if err != nil {
		return nil, err
	}

	sensors, err := p.engine.Sensors(ctx)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "System status",
		"arming_status", armingStatus,
		"alarm_status", alarmStatus,
		"sensors", len(sensors))

	for _, sensor := range sensors {
		logger.Infof(ctx, "Sensor %s", formatSensor(sensor))
	}

	return &Snapshot{
		ArmingStatus: armingStatus,
		AlarmStatus:  alarmStatus,
		Sensors:      sensors,
	}, nil
}

// Arm switches the system into the requested armed profile.
func (p *Panel) Arm(ctx context.Context, status domain.ArmingStatus) error {
	if !status.Armed() {
		return fmt.Errorf("%q: %w", status, errNotAnArmedProfile)
	}

	if err := p.engine.SetArmingStatus(ctx, status); err != nil {
		return err
	}

	logger.InfoKV(ctx, "System armed", "arming_status", status)

	return nil
}

// Disarm switches the system off and stands the alarm down.
func (p *Panel) Disarm(ctx context.Context) error {
	if err := p.engine.SetArmingStatus(ctx, domain.Disarmed); err != nil {
		return err
	}

	logger.Info(ctx, "System disarmed")

	return nil
}

// AddSensor registers a new inactive sensor under the given name and type.
// The (name, type) pair must be free so later lookups stay unambiguous.
func (p *Panel) AddSensor(ctx context.Context, name string, sensorType domain.SensorType) (*domain.Sensor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errSensorNameRequired
	}

	sensors, err := p.engine.Sensors(ctx)
	if err != nil {
		return nil, err
	}

	for _, existing := range sensors {
		if existing.Name == name && existing.Type == sensorType {
			return nil, fmt.Errorf("sensor %q (%s): %w", name, sensorType, errSensorExists)
		}
	}

	sensor := domain.NewSensor(name, sensorType)
	if err = p.engine.AddSensor(ctx, sensor); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Sensor added", "name", sensor.Name, "type", sensor.Type, "id", sensor.ID)

	return sensor, nil
}

// RemoveSensor unregisters the sensor matching the given name, optionally
// narrowed by type.
func (p *Panel) RemoveSensor(ctx context.Context, name string, sensorType domain.SensorType) (*domain.Sensor, error) {
	sensor, err := p.findSensorByName(ctx, name, sensorType)
	if err != nil {
		return nil, err
	}

	if err = p.engine.RemoveSensor(ctx, sensor); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Sensor removed", "name", sensor.Name, "type", sensor.Type)

	return sensor, nil
}

// SetSensorActive flips the activation flag of the sensor matching the given
// name, running the full alarm decision rules.
func (p *Panel) SetSensorActive(
	ctx context.Context,
	name string,
	sensorType domain.SensorType,
	active bool,
) (*domain.Sensor, error) {
	sensor, err := p.findSensorByName(ctx, name, sensorType)
	if err != nil {
		return nil, err
	}

	if err = p.engine.ChangeSensorActivationStatus(ctx, sensor, active); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Sensor activation changed",
		"name", sensor.Name, "type", sensor.Type, "active", sensor.Active)

	return sensor, nil
}

// Sensors returns the current sensor roster.
func (p *Panel) Sensors(ctx context.Context) ([]*domain.Sensor, error) {
	return p.engine.Sensors(ctx)
}

// ListSensors reports the sensor roster through the logger and returns it.
func (p *Panel) ListSensors(ctx context.Context) ([]*domain.Sensor, error) {
	sensors, err := p.engine.Sensors(ctx)
	if err != nil {
		return nil, err
	}

	if len(sensors) == 0 {
		logger.Info(ctx, "No sensors registered")
		return sensors, nil
	}

	logger.InfoKV(ctx, "Registered sensors", "count", len(sensors))

	for _, sensor := range sensors {
		logger.Infof(ctx, "Sensor %s", formatSensor(sensor))
	}

	return sensors, nil
}

// ScanImage decodes a camera frame from disk and runs it through the engine.
// It returns the classifier's cat answer.
func (p *Panel) ScanImage(ctx context.Context, path string) (bool, error) {
	img, err := decodeImage(path)
	if err != nil {
		return false, err
	}

	// The engine reports the answer through listeners only, so attach a
	// capture for the duration of this scan.
	capture := &catResultCapture{}
	p.engine.AddStatusListener(capture)

	defer p.engine.RemoveStatusListener(capture)

	if err = p.engine.ProcessImage(ctx, img); err != nil {
		return false, err
	}

	logger.InfoKV(ctx, "Image processed", "file", path, "cat_detected", capture.detected)

	return capture.detected, nil
}

// findSensorByName resolves a sensor by display name. An empty sensorType
// matches any type; ambiguity and misses are errors.
func (p *Panel) findSensorByName(
	ctx context.Context,
	name string,
	sensorType domain.SensorType,
) (*domain.Sensor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errSensorNameRequired
	}

	sensors, err := p.engine.Sensors(ctx)
	if err != nil {
		return nil, err
	}

	var found *domain.Sensor

	for _, sensor := range sensors {
		if sensor.Name != name {
			continue
		}

		if sensorType != "" && sensor.Type != sensorType {
			continue
		}

		if found != nil {
			return nil, fmt.Errorf("sensor %q: %w", name, errSensorAmbiguous)
		}

		found = sensor
	}

	if found == nil {
		return nil, fmt.Errorf("sensor %q: %w", name, repo.ErrSensorNotFound)
	}

	return found, nil
}

// formatSensor renders one roster line for display.
func formatSensor(s *domain.Sensor) string {
	state := "inactive"
	if s.Active {
		state = "active"
	}

	return fmt.Sprintf("%s (%s): %s", s.Name, strings.ToLower(string(s.Type)), state)
}

// decodeImage reads a JPEG or PNG camera frame from disk.
func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}

	return img, nil
}

// catResultCapture records the classifier answer broadcast during one scan.
type catResultCapture struct {
	detected bool
}

func (c *catResultCapture) AlarmStatusChanged(domain.AlarmStatus) {}

func (c *catResultCapture) CatDetected(catDetected bool) {
	c.detected = catDetected
}

func (c *catResultCapture) SensorStatusChanged() {}
