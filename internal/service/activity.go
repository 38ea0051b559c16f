// Package service orchestrates the activity-log use cases: ingestion,
// filtered list queries, and detail lookups.
package service

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/coopsuite/activity-log-ms/internal/filter"
	"github.com/coopsuite/activity-log-ms/internal/models"
)

// ActivityStore is the data-access interface ActivityService depends on.
type ActivityStore interface {
	Insert(ctx context.Context, rec *models.ActivityRecord) error
	Search(ctx context.Context, pred *filter.Predicate, w filter.Window) ([]models.ActivityRecord, int64, error)
	GetByID(ctx context.Context, id int64) (*models.ActivityRecord, error)
}

// ActivityService implements ingestion and querying on top of the store.
type ActivityService struct {
	store ActivityStore
	log   *logrus.Logger
}

// NewActivityService creates an ActivityService.
func NewActivityService(store ActivityStore, log *logrus.Logger) *ActivityService {
	return &ActivityService{store: store, log: log}
}

// CreateFromEvent validates an inbound event and persists it.
func (s *ActivityService) CreateFromEvent(ctx context.Context, ev *models.ActivityLogEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	return s.store.Insert(ctx, ev.Record())
}

// Search resolves pagination, builds the predicate, and runs the
// snapshot-consistent count+fetch. Pagination is validated before the
// predicate is built so a bad pageSize never reaches the store.
func (s *ActivityService) Search(ctx context.Context, f *models.ActivityLogFilter) (*models.ActivityLogPage, error) {
	w, err := filter.Paginate(f)
	if err != nil {
		return nil, err
	}

	pred, err := filter.BuildWhere(f)
	if err != nil {
		return nil, err
	}

	recs, total, err := s.store.Search(ctx, pred, w)
	if err != nil {
		return nil, err
	}

	items := make([]models.ActivityLogItem, 0, len(recs))
	for i := range recs {
		items = append(items, recs[i].Item())
	}

	return &models.ActivityLogPage{
		Data:           items,
		Page:           w.Page,
		PageSize:       w.PageSize,
		TotalPages:     w.TotalPages(total),
		TotalRegistros: total,
	}, nil
}

// GetByID returns the detail projection for a string-encoded integer id.
func (s *ActivityService) GetByID(ctx context.Context, id string) (*models.ActivityLogDetail, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, models.Invalidf("id", "must be a numeric id, got %q", id)
	}

	rec, err := s.store.GetByID(ctx, n)
	if err != nil {
		return nil, err
	}

	detail := rec.Detail()

	return &detail, nil
}
