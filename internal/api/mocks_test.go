package api_test

import (
	"context"
	"sync"

	"github.com/coopsuite/activity-log-ms/internal/models"
)

// mockQuerier implements api.ActivityLogQuerier for testing.
type mockQuerier struct {
	searchFn func(ctx context.Context, f *models.ActivityLogFilter) (*models.ActivityLogPage, error)
	getFn    func(ctx context.Context, id string) (*models.ActivityLogDetail, error)
}

func (m *mockQuerier) Search(ctx context.Context, f *models.ActivityLogFilter) (*models.ActivityLogPage, error) {
	return m.searchFn(ctx, f)
}

func (m *mockQuerier) GetByID(ctx context.Context, id string) (*models.ActivityLogDetail, error) {
	return m.getFn(ctx, id)
}

// mockSink implements api.EventSink and records enqueued events.
type mockSink struct {
	mu     sync.Mutex
	events []*models.ActivityLogEvent
}

func (m *mockSink) Enqueue(ev *models.ActivityLogEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, ev)
}

func (m *mockSink) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.events)
}

func (m *mockSink) last() *models.ActivityLogEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.events) == 0 {
		return nil
	}

	return m.events[len(m.events)-1]
}
