package service

import (
	"context"
	"sync"

	"github.com/coopsuite/activity-log-ms/internal/filter"
	"github.com/coopsuite/activity-log-ms/internal/models"
)

// mockStore implements ActivityStore with func fields.
type mockStore struct {
	insertFn func(ctx context.Context, rec *models.ActivityRecord) error
	searchFn func(ctx context.Context, pred *filter.Predicate, w filter.Window) ([]models.ActivityRecord, int64, error)
	getFn    func(ctx context.Context, id int64) (*models.ActivityRecord, error)
}

func (m *mockStore) Insert(ctx context.Context, rec *models.ActivityRecord) error {
	return m.insertFn(ctx, rec)
}

func (m *mockStore) Search(ctx context.Context, pred *filter.Predicate, w filter.Window) ([]models.ActivityRecord, int64, error) {
	return m.searchFn(ctx, pred, w)
}

func (m *mockStore) GetByID(ctx context.Context, id int64) (*models.ActivityRecord, error) {
	return m.getFn(ctx, id)
}

// mockRecorder implements EventRecorder and records received events.
type mockRecorder struct {
	mu     sync.Mutex
	events []*models.ActivityLogEvent
	err    error
}

func (m *mockRecorder) CreateFromEvent(_ context.Context, ev *models.ActivityLogEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, ev)

	return m.err
}

func (m *mockRecorder) getEvents() []*models.ActivityLogEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*models.ActivityLogEvent, len(m.events))
	copy(out, m.events)

	return out
}
