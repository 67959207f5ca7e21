package security

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
)

// SQLiteRepository stores the security state in a SQLite database file,
// so arming decisions made by one process are visible to another.
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// OpenSQLite opens (creating if necessary) the database at path and runs
// the schema migration. The returned repository must be closed by the caller.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The modernc driver is not safe for concurrent writers on one file,
	// so funnel everything through a single connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	repository := &SQLiteRepository{db: db}
	if err = repository.migrate(ctx); err != nil {
		_ = db.Close()

		return nil, err
	}

	return repository, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}

	return r.db.Close()
}

// migrate creates the schema and seeds the single status row with the
// disarmed, no-alarm initial state.
func (r *SQLiteRepository) migrate(ctx context.Context) error {
	statements := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS system_status (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			arming_status TEXT NOT NULL,
			alarm_status TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sensors (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			active INTEGER NOT NULL
		);`,
	}

	for _, statement := range statements {
		if _, err := r.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO system_status (id, arming_status, alarm_status)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		string(domain.Disarmed), string(domain.NoAlarm))
	if err != nil {
		return fmt.Errorf("seed system status: %w", err)
	}

	return nil
}

// ArmingStatus returns the current arming status.
func (r *SQLiteRepository) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	var value string
	if err := r.db.QueryRowContext(ctx,
		`SELECT arming_status FROM system_status WHERE id = 1`).Scan(&value); err != nil {
		return "", fmt.Errorf("read arming status: %w", err)
	}

	return domain.ArmingStatus(value), nil
}

// SetArmingStatus stores a new arming status.
func (r *SQLiteRepository) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE system_status SET arming_status = ? WHERE id = 1`, string(status)); err != nil {
		return fmt.Errorf("write arming status: %w", err)
	}

	return nil
}

// AlarmStatus returns the current alarm status.
func (r *SQLiteRepository) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	var value string
	if err := r.db.QueryRowContext(ctx,
		`SELECT alarm_status FROM system_status WHERE id = 1`).Scan(&value); err != nil {
		return "", fmt.Errorf("read alarm status: %w", err)
	}

	return domain.AlarmStatus(value), nil
}

// SetAlarmStatus stores a new alarm status.
func (r *SQLiteRepository) SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE system_status SET alarm_status = ? WHERE id = 1`, string(status)); err != nil {
		return fmt.Errorf("write alarm status: %w", err)
	}

	return nil
}

// Sensors returns all registered sensors sorted by name, then ID.
func (r *SQLiteRepository) Sensors(ctx context.Context) ([]*domain.Sensor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, active FROM sensors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("read sensors: %w", err)
	}

	defer rows.Close()

	var result []*domain.Sensor

	for rows.Next() {
		var (
			rawID  string
			sensor domain.Sensor
			active int
		)

		if err = rows.Scan(&rawID, &sensor.Name, &sensor.Type, &active); err != nil {
			return nil, fmt.Errorf("scan sensor row: %w", err)
		}

		sensor.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse sensor ID %q: %w", rawID, err)
		}

		sensor.Active = active != 0

		result = append(result, &sensor)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sensors: %w", err)
	}

	return result, nil
}

// AddSensor registers a sensor, overwriting any previous row with the same ID.
func (r *SQLiteRepository) AddSensor(ctx context.Context, sensor *domain.Sensor) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sensors (id, name, type, active)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			type=excluded.type,
			active=excluded.active`,
		sensor.ID.String(), sensor.Name, string(sensor.Type), boolToInt(sensor.Active))
	if err != nil {
		return fmt.Errorf("add sensor: %w", err)
	}

	return nil
}

// RemoveSensor unregisters a sensor. Unknown sensors are ignored.
func (r *SQLiteRepository) RemoveSensor(ctx context.Context, sensor *domain.Sensor) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM sensors WHERE id = ?`, sensor.ID.String()); err != nil {
		return fmt.Errorf("remove sensor: %w", err)
	}

	return nil
}

// UpdateSensor writes back a sensor's fields.
// It returns ErrSensorNotFound if no row matches the sensor's ID.
func (r *SQLiteRepository) UpdateSensor(ctx context.Context, sensor *domain.Sensor) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE sensors SET name = ?, type = ?, active = ? WHERE id = ?`,
		sensor.Name, string(sensor.Type), boolToInt(sensor.Active), sensor.ID.String())
	if err != nil {
		return fmt.Errorf("update sensor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sensor: %w", err)
	}

	if affected == 0 {
		return ErrSensorNotFound
	}

	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}

	return 0
}
