package proc

import (
	"context"
	"time"

	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/observability"
)

const meterName = "github.com/kbukum/pipekit/proc"

// sinkMetrics records sink activity through the global meter provider.
// Instrument creation failure disables recording rather than failing
// the sink.
type sinkMetrics struct {
	name string
	m    *observability.Metrics
}

func newSinkMetrics(name string, log *logger.Logger) *sinkMetrics {
	m, err := observability.NewMetrics(observability.Meter(meterName))
	if err != nil {
		log.Warn("metrics disabled", logger.ErrorFields("metrics_init", err))
		return &sinkMetrics{name: name}
	}
	return &sinkMetrics{name: name, m: m}
}

func (sm *sinkMetrics) batch(offered, accepted, itemSize int, d time.Duration) {
	if sm.m == nil {
		return
	}
	sm.m.RecordBatch(context.Background(), sm.name, offered, accepted, itemSize, d)
}

func (sm *sinkMetrics) error(errType string) {
	if sm.m == nil {
		return
	}
	sm.m.RecordError(context.Background(), errType, "proc")
}
