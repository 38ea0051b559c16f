package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/coopsuite/activity-log-ms/internal/metrics"
	"github.com/coopsuite/activity-log-ms/internal/models"
)

// EventRecorder is the minimal interface the ingestion worker writes
// through.
type EventRecorder interface {
	CreateFromEvent(ctx context.Context, ev *models.ActivityLogEvent) error
}

// IngestWorker buffers inbound events and persists them via a single
// worker goroutine. Ingestion is fire-and-forget: persistence failures
// are logged and discarded, never surfaced to whatever delivered the
// event, so audit-logging problems cannot cascade into the business
// operations being audited.
type IngestWorker struct {
	recorder EventRecorder
	log      *logrus.Logger
	jobs     chan *models.ActivityLogEvent
}

// NewIngestWorker creates an IngestWorker with the given queue capacity.
func NewIngestWorker(recorder EventRecorder, log *logrus.Logger, queueSize int) *IngestWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}

	return &IngestWorker{
		recorder: recorder,
		log:      log,
		jobs:     make(chan *models.ActivityLogEvent, queueSize),
	}
}

// Enqueue adds an event. Non-blocking; drops the event if the queue is full.
func (w *IngestWorker) Enqueue(ev *models.ActivityLogEvent) {
	select {
	case w.jobs <- ev:
		metrics.IngestQueueDepth.Set(float64(len(w.jobs)))
	default:
		metrics.EventsDroppedTotal.Inc()
		w.log.WithFields(logrus.Fields{
			"service": ev.Service,
			"action":  ev.Action,
		}).Warn("ingest queue full, dropping event")
	}
}

// Run processes events until the context is cancelled, then drains
// remaining events.
func (w *IngestWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()

			return
		case ev := <-w.jobs:
			w.process(ev)
		}
	}
}

func (w *IngestWorker) drain() {
	for {
		select {
		case ev := <-w.jobs:
			w.process(ev)
		default:
			return
		}
	}
}

func (w *IngestWorker) process(ev *models.ActivityLogEvent) {
	defer metrics.IngestQueueDepth.Set(float64(len(w.jobs)))

	if err := w.recorder.CreateFromEvent(context.Background(), ev); err != nil {
		metrics.EventsFailedTotal.Inc()
		w.log.WithError(err).WithFields(logrus.Fields{
			"service": ev.Service,
			"module":  ev.Module,
			"action":  ev.Action,
		}).Warn("activity event persist failed")

		return
	}

	metrics.EventsIngestedTotal.Inc()
}
