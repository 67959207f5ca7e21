package monitor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/DonnaRichards/UdaSecurity/internal/config"
	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
	"github.com/DonnaRichards/UdaSecurity/internal/logger"
	repo "github.com/DonnaRichards/UdaSecurity/internal/repository/security"
)

// Options controls the monitor polling behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// PollInterval overrides the configured poll interval when positive.
	PollInterval time.Duration
}

// status is the pair of stored statuses the monitor tracks between polls.
type status struct {
	arming domain.ArmingStatus
	alarm  domain.AlarmStatus
}

// Run watches the shared database for status transitions until the context
// is canceled. Every arming or alarm change is logged; entering ALARM starts
// the configured alarm command, if any. Only one monitor per database is
// allowed to run at a time.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "monitor")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	pollInterval := cfg.MonitorPollInterval
	if opts.PollInterval > 0 {
		pollInterval = opts.PollInterval
	}

	// Refuse to start while another monitor watches the same database.
	release, err := claimMarker(ctx, markerPath(cfg.DatabaseFile))
	if err != nil {
		return err
	}

	defer release()

	repository, err := repo.OpenSQLite(ctx, cfg.DatabaseFile)
	if err != nil {
		return err
	}

	defer func() {
		_ = repository.Close()
	}()

	// Read the starting point; transitions are reported relative to it.
	last, err := readStatus(ctx, repository)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Monitoring security status",
		"database_file", cfg.DatabaseFile,
		"interval", pollInterval.String(),
		"arming_status", last.arming,
		"alarm_status", last.alarm)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case <-ticker.C:
			last, err = checkOnce(ctx, repository, cfg.AlarmCommand, last)
			if err != nil {
				logger.ErrorKV(ctx, "Status check failed", "error", err)
			}
		}
	}
}

// checkOnce reads the current statuses, reports transitions since last, and
// fires the alarm command on entry into ALARM.
func checkOnce(ctx context.Context, repository repo.Repository, alarmCommand string, last status) (status, error) {
	current, err := readStatus(ctx, repository)
	if err != nil {
		return last, err
	}

	if current.arming != last.arming {
		logger.InfoKV(ctx, "Arming status changed", "from", last.arming, "to", current.arming)
	}

	if current.alarm != last.alarm {
		logger.InfoKV(ctx, "Alarm status changed", "from", last.alarm, "to", current.alarm)

		if current.alarm == domain.Alarm {
			triggerAlarmCommand(ctx, alarmCommand)
		}
	}

	return current, nil
}

// readStatus loads both stored statuses in one place.
func readStatus(ctx context.Context, repository repo.Repository) (status, error) {
	arming, err := repository.ArmingStatus(ctx)
	if err != nil {
		return status{}, fmt.Errorf("read arming status: %w", err)
	}

	alarm, err := repository.AlarmStatus(ctx)
	if err != nil {
		return status{}, fmt.Errorf("read alarm status: %w", err)
	}

	return status{arming: arming, alarm: alarm}, nil
}

// triggerAlarmCommand starts the configured siren hook asynchronously.
// Failures are logged, not returned: the monitor keeps watching either way.
func triggerAlarmCommand(ctx context.Context, command string) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return
	}

	logger.InfoKV(ctx, "Alarm sounding, starting alarm command", "command", command)

	//nolint:gosec // The command comes from the operator's own settings file.
	if err := exec.CommandContext(ctx, fields[0], fields[1:]...).Start(); err != nil {
		logger.ErrorKV(ctx, "Alarm command failed to start", "error", err)
	}
}
