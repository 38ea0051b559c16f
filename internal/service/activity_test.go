package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/coopsuite/activity-log-ms/internal/filter"
	"github.com/coopsuite/activity-log-ms/internal/models"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

func intp(v int) *int { return &v }

func TestCreateFromEvent_AppliesDefaults(t *testing.T) {
	t.Parallel()

	var inserted *models.ActivityRecord
	st := &mockStore{
		insertFn: func(_ context.Context, rec *models.ActivityRecord) error {
			inserted = rec

			return nil
		},
	}

	svc := NewActivityService(st, testLogger())
	err := svc.CreateFromEvent(context.Background(), &models.ActivityLogEvent{
		Service: "credito-ms", Module: "credito", Action: "CREATE", Entity: "Credito",
	})
	if err != nil {
		t.Fatalf("CreateFromEvent: %v", err)
	}

	if inserted == nil {
		t.Fatal("record not inserted")
	}
	if inserted.Source != models.SourceAPI || inserted.Result != models.ResultSuccess {
		t.Errorf("defaults not applied: source=%q result=%q", inserted.Source, inserted.Result)
	}
}

func TestCreateFromEvent_InvalidEvent(t *testing.T) {
	t.Parallel()

	st := &mockStore{
		insertFn: func(_ context.Context, _ *models.ActivityRecord) error {
			t.Fatal("store reached with invalid event")

			return nil
		},
	}

	svc := NewActivityService(st, testLogger())
	err := svc.CreateFromEvent(context.Background(), &models.ActivityLogEvent{Service: "s"})

	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestSearch_BuildsPageMetadata(t *testing.T) {
	t.Parallel()

	st := &mockStore{
		searchFn: func(_ context.Context, pred *filter.Predicate, w filter.Window) ([]models.ActivityRecord, int64, error) {
			if pred == nil || pred.Atom == nil || pred.Atom.Column != "AL01Service" {
				t.Errorf("unexpected predicate: %+v", pred)
			}
			if w.Skip != 0 || w.Take != 50 {
				t.Errorf("window = %+v", w)
			}

			recs := []models.ActivityRecord{
				{ID: 2, CreatedAt: time.Now(), Service: "s", Module: "m", Action: "a", Source: "API", Result: "SUCCESS", Entity: "E"},
				{ID: 1, CreatedAt: time.Now(), Service: "s", Module: "m", Action: "a", Source: "API", Result: "SUCCESS", Entity: "E"},
			}

			return recs, 101, nil
		},
	}

	svc := NewActivityService(st, testLogger())
	page, err := svc.Search(context.Background(), &models.ActivityLogFilter{Service: "s"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if page.Page != 1 || page.PageSize != 50 {
		t.Errorf("page meta = %+v", page)
	}
	if page.TotalPages != 3 || page.TotalRegistros != 101 {
		t.Errorf("totals = pages:%d registros:%d, want 3/101", page.TotalPages, page.TotalRegistros)
	}
	if len(page.Data) != 2 || page.Data[0].ID != "2" {
		t.Errorf("data = %+v", page.Data)
	}
}

func TestSearch_InvalidPageSizeNeverReachesStore(t *testing.T) {
	t.Parallel()

	st := &mockStore{
		searchFn: func(_ context.Context, _ *filter.Predicate, _ filter.Window) ([]models.ActivityRecord, int64, error) {
			t.Fatal("store reached with invalid pageSize")

			return nil, 0, nil
		},
	}

	svc := NewActivityService(st, testLogger())
	_, err := svc.Search(context.Background(), &models.ActivityLogFilter{PageSize: intp(0)})

	var verr *models.ValidationError
	if !errors.As(err, &verr) || verr.Field != "pageSize" {
		t.Fatalf("err = %v, want pageSize ValidationError", err)
	}
}

func TestSearch_MalformedDateBound(t *testing.T) {
	t.Parallel()

	st := &mockStore{
		searchFn: func(_ context.Context, _ *filter.Predicate, _ filter.Window) ([]models.ActivityRecord, int64, error) {
			t.Fatal("store reached with malformed date")

			return nil, 0, nil
		},
	}

	svc := NewActivityService(st, testLogger())
	_, err := svc.Search(context.Background(), &models.ActivityLogFilter{DateFrom: "yesterday"})

	var verr *models.ValidationError
	if !errors.As(err, &verr) || verr.Field != "dateFrom" {
		t.Fatalf("err = %v, want dateFrom ValidationError", err)
	}
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	st := &mockStore{
		getFn: func(_ context.Context, id int64) (*models.ActivityRecord, error) {
			if id != 42 {
				t.Errorf("id = %d, want 42", id)
			}

			return &models.ActivityRecord{
				ID: id, CreatedAt: time.Now(),
				Service: "s", Module: "m", Action: "a", Source: "API", Result: "SUCCESS", Entity: "E",
			}, nil
		},
	}

	svc := NewActivityService(st, testLogger())
	detail, err := svc.GetByID(context.Background(), "42")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if detail.ID != "42" {
		t.Errorf("ID = %q", detail.ID)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	t.Parallel()

	st := &mockStore{
		getFn: func(_ context.Context, _ int64) (*models.ActivityRecord, error) {
			return nil, models.ErrRecordNotFound
		},
	}

	svc := NewActivityService(st, testLogger())
	_, err := svc.GetByID(context.Background(), "7")
	if !errors.Is(err, models.ErrRecordNotFound) {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestGetByID_NonNumeric(t *testing.T) {
	t.Parallel()

	svc := NewActivityService(&mockStore{}, testLogger())
	_, err := svc.GetByID(context.Background(), "abc")

	var verr *models.ValidationError
	if !errors.As(err, &verr) || verr.Field != "id" {
		t.Fatalf("err = %v, want id ValidationError", err)
	}
}
