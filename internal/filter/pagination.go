package filter

import "github.com/coopsuite/activity-log-ms/internal/models"

// Pagination defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 50
)

// Window is the resolved pagination arithmetic for one query.
type Window struct {
	// Skip is the number of rows to skip.
	Skip int
	// Take is the row limit; negative means unbounded.
	Take int
	// Page is the effective 1-based page reported to the caller.
	Page int
	// PageSize is the effective page size.
	PageSize int
	// Paginated reports whether a row limit applies.
	Paginated bool
}

// Paginate resolves the pagination controls of a filter into a Window.
//
// A supplied non-negative First (0-based offset) is authoritative over
// Page; Page is clamped to a minimum of 1. When Paginated is false the
// full result set is returned and any offset or page input is ignored.
// A supplied non-positive PageSize is a validation error, never
// silently coerced.
func Paginate(f *models.ActivityLogFilter) (Window, error) {
	if f == nil {
		f = &models.ActivityLogFilter{}
	}

	pageSize := DefaultPageSize

	if f.PageSize != nil {
		if *f.PageSize <= 0 {
			return Window{}, models.Invalidf("pageSize", "must be a positive integer, got %d", *f.PageSize)
		}

		pageSize = *f.PageSize
	}

	if f.Paginated != nil && !*f.Paginated {
		return Window{Skip: 0, Take: -1, Page: 1, PageSize: pageSize, Paginated: false}, nil
	}

	page := DefaultPage
	if f.Page != nil && *f.Page > 1 {
		page = *f.Page
	}

	w := Window{Take: pageSize, Page: page, PageSize: pageSize, Paginated: true}

	if f.First != nil && *f.First >= 0 {
		w.Skip = *f.First
		w.Page = *f.First/pageSize + 1
	} else {
		w.Skip = (page - 1) * pageSize
	}

	return w, nil
}

// TotalPages computes the page count for a matching-row total:
// ceil(total/pageSize) when paginated, else 1.
func (w Window) TotalPages(total int64) int {
	if !w.Paginated {
		return 1
	}

	return int((total + int64(w.PageSize) - 1) / int64(w.PageSize))
}
