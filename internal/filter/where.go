package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/coopsuite/activity-log-ms/internal/models"
)

// directFields pairs each fixed direct-filter field with its accessor.
// These are the classification fields accepted outside the generic
// constraint group.
var directFields = []struct {
	name  string
	value func(*models.ActivityLogFilter) string
}{
	{"service", func(f *models.ActivityLogFilter) string { return f.Service }},
	{"module", func(f *models.ActivityLogFilter) string { return f.Module }},
	{"action", func(f *models.ActivityLogFilter) string { return f.Action }},
	{"result", func(f *models.ActivityLogFilter) string { return f.Result }},
	{"source", func(f *models.ActivityLogFilter) string { return f.Source }},
	{"entity", func(f *models.ActivityLogFilter) string { return f.Entity }},
	{"userId", func(f *models.ActivityLogFilter) string { return f.UserID }},
	{"cooperativaId", func(f *models.ActivityLogFilter) string { return f.CooperativaID }},
}

// createdAtColumn is the storage column holding the record creation time.
const createdAtColumn = "AL01CreatedAt"

// BuildWhere assembles the full predicate for a filter description:
//
//	direct equalities AND date range AND (OR of search atoms)
//	AND (AND of generic-constraint atoms)
//
// Unmapped fields and empty-valued constraints are silently excluded.
// Malformed date bounds are validation errors: a date bound is explicit
// user intent, unlike an optional classification filter. A filter with
// no criteria yields the universal predicate (nil).
func BuildWhere(f *models.ActivityLogFilter) (*Predicate, error) {
	if f == nil {
		return nil, nil
	}

	parts := make([]*Predicate, 0, len(directFields)+3)

	for _, df := range directFields {
		if v := df.value(f); v != "" {
			col, _ := MapField(df.name)
			parts = append(parts, Eq(col, v))
		}
	}

	rangePred, err := dateRange(f.DateFrom, f.DateTo)
	if err != nil {
		return nil, err
	}

	parts = append(parts, rangePred, searchPredicate(f.Search), constraintGroup(f.Filters))

	return AndOf(parts...), nil
}

// dateRange builds the inclusive created-at range atoms. Either bound
// may be absent.
func dateRange(from, to string) (*Predicate, error) {
	var bounds []*Predicate

	if from != "" {
		t, _, err := ParseDateBound(from)
		if err != nil {
			return nil, models.Invalidf("dateFrom", "invalid date %q, use RFC3339 or YYYY-MM-DD", from)
		}

		bounds = append(bounds, Gte(createdAtColumn, t))
	}

	if to != "" {
		t, dateOnly, err := ParseDateBound(to)
		if err != nil {
			return nil, models.Invalidf("dateTo", "invalid date %q, use RFC3339 or YYYY-MM-DD", to)
		}

		// A bare calendar day as upper bound includes the whole day.
		if dateOnly {
			bounds = append(bounds, Lt(createdAtColumn, t.Add(day)))
		} else {
			bounds = append(bounds, Lte(createdAtColumn, t))
		}
	}

	return AndOf(bounds...), nil
}

// searchPredicate builds the global OR search across the fixed textual
// column set. A blank-after-trim term contributes nothing.
func searchPredicate(term string) *Predicate {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	atoms := make([]*Predicate, 0, len(searchColumns))
	for _, col := range searchColumns {
		atoms = append(atoms, ContainsFold(col, term))
	}

	return OrOf(atoms...)
}

// constraintGroup translates the generic constraint group. Constraints
// within a field and across fields combine with AND: a field with
// several constraints requires all of them to hold. Fields are visited
// in sorted order so the constructed tree is deterministic.
func constraintGroup(filters map[string]models.ConstraintSet) *Predicate {
	if len(filters) == 0 {
		return nil
	}

	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}

	sort.Strings(names)

	var atoms []*Predicate

	for _, name := range names {
		col, ok := MapField(name)
		if !ok {
			continue
		}

		for _, c := range filters[name] {
			if emptyValue(c.Value) {
				continue
			}

			atoms = append(atoms, TranslateConstraint(col, ParseMatchMode(c.MatchMode), c.Value))
		}
	}

	return AndOf(atoms...)
}

// emptyValue reports whether a constraint value is trivially empty
// (null, undefined, or the empty string) and must be dropped before
// translation.
func emptyValue(v any) bool {
	if v == nil {
		return true
	}

	s, ok := v.(string)

	return ok && s == ""
}

// ParseDateBound parses a date bound as RFC 3339 or as a bare calendar
// day (YYYY-MM-DD, interpreted as midnight UTC). dateOnly reports which
// form was supplied.
func ParseDateBound(s string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}

	if t, err = time.Parse("2006-01-02", s); err == nil {
		return t, true, nil
	}

	return time.Time{}, false, err
}
