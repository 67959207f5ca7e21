package monitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/DonnaRichards/UdaSecurity/internal/config"
	"github.com/DonnaRichards/UdaSecurity/internal/logger"
)

// MarkerFilename marks that a monitor is already watching a database.
// The file lives next to the database and records the monitor's PID.
const MarkerFilename = "catpoint-monitor.pid"

// errAlreadyRunning indicates another live monitor owns the marker.
var errAlreadyRunning = errors.New("another monitor is already running")

// markerPath places the marker beside the database file, so one marker
// guards exactly one store.
func markerPath(databaseFile string) string {
	return filepath.Join(filepath.Dir(databaseFile), MarkerFilename)
}

// claimMarker records this process as the running monitor. A marker whose
// recorded PID is no longer a live process of this executable is treated as
// stale and reclaimed. The returned release function removes the marker.
func claimMarker(ctx context.Context, path string) (func(), error) {
	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		recordedPID, parseErr := strconv.Atoi(strings.TrimSpace(string(contents)))
		if parseErr == nil && isSameExecutableAlive(recordedPID) {
			return nil, fmt.Errorf("pid %d: %w", recordedPID, errAlreadyRunning)
		}

		logger.InfoKV(ctx, "Reclaiming stale monitor marker", "path", path)

		if err = os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale marker: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// First monitor on this database.
	default:
		return nil, fmt.Errorf("read marker: %w", err)
	}

	pid := strconv.Itoa(os.Getpid())
	if err = os.WriteFile(path, []byte(pid), config.DefaultFilePermissions); err != nil {
		return nil, fmt.Errorf("write marker: %w", err)
	}

	return func() {
		_ = os.Remove(path)
	}, nil
}

// isSameExecutableAlive reports whether pid belongs to a live process
// running the same executable as this one.
func isSameExecutableAlive(pid int) bool {
	process, err := ps.FindProcess(pid)
	if err != nil || process == nil {
		return false
	}

	return process.Executable() == filepath.Base(os.Args[0])
}
