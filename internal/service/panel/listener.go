package panel

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/DonnaRichards/UdaSecurity/internal/domain/security"
	"github.com/DonnaRichards/UdaSecurity/internal/logger"
)

// logListener mirrors engine notifications into the application log.
// Alarm transitions are the headline events; cat results and sensor churn
// stay at debug because the triggering command already reports its outcome.
type logListener struct {
	log *zap.SugaredLogger
}

func newLogListener(ctx context.Context) *logListener {
	return &logListener{log: logger.FromContext(ctx)}
}

func (l *logListener) AlarmStatusChanged(status domain.AlarmStatus) {
	l.log.Infow("Alarm status changed", "alarm_status", status)
}

func (l *logListener) CatDetected(catDetected bool) {
	l.log.Debugw("Cat detection result", "cat_detected", catDetected)
}

func (l *logListener) SensorStatusChanged() {
	l.log.Debugw("Sensor status changed")
}
