package api

import (
	"context"

	"github.com/coopsuite/activity-log-ms/internal/models"
)

// ActivityLogQuerier defines the query operations used by ActivityLogHandler.
type ActivityLogQuerier interface {
	Search(ctx context.Context, f *models.ActivityLogFilter) (*models.ActivityLogPage, error)
	GetByID(ctx context.Context, id string) (*models.ActivityLogDetail, error)
}

// EventSink accepts events for asynchronous, fire-and-forget persistence.
type EventSink interface {
	Enqueue(ev *models.ActivityLogEvent)
}
