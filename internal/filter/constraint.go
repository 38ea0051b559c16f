package filter

import (
	"fmt"
	"time"
)

// MatchMode is the closed set of constraint operators. Unknown operator
// strings parse to MatchUnknown, which translates to no predicate: new
// UI operators degrade to "constraint dropped" instead of failing.
type MatchMode int

const (
	MatchUnknown MatchMode = iota
	MatchEquals
	MatchContains
	MatchStartsWith
	MatchEndsWith
	MatchIn
	MatchDateIs
	MatchDateBefore
	MatchDateAfter
)

// ParseMatchMode maps the wire operator name to its MatchMode.
func ParseMatchMode(s string) MatchMode {
	switch s {
	case "equals":
		return MatchEquals
	case "contains":
		return MatchContains
	case "startsWith":
		return MatchStartsWith
	case "endsWith":
		return MatchEndsWith
	case "in":
		return MatchIn
	case "dateIs":
		return MatchDateIs
	case "dateBefore":
		return MatchDateBefore
	case "dateAfter":
		return MatchDateAfter
	}

	return MatchUnknown
}

const day = 24 * time.Hour

// TranslateConstraint converts one resolved (column, mode, value) triple
// into an atomic predicate, or nil when the constraint is inert
// (unknown mode, or a date mode whose value does not parse as a date).
// Empty values must be rejected by the caller before translation.
//
// Date modes compare at day granularity with inclusive boundaries:
// dateIs covers [day, day+1), dateBefore means on-or-before the day,
// dateAfter means on-or-after it.
func TranslateConstraint(column string, mode MatchMode, value any) *Predicate {
	switch mode {
	case MatchEquals:
		return Eq(column, value)
	case MatchContains:
		return ContainsFold(column, stringValue(value))
	case MatchStartsWith:
		return HasPrefixFold(column, stringValue(value))
	case MatchEndsWith:
		return HasSuffixFold(column, stringValue(value))
	case MatchIn:
		return In(column, setValue(value))
	case MatchDateIs:
		d, ok := dateValue(value)
		if !ok {
			return nil
		}

		return AndOf(Gte(column, d), Lt(column, d.Add(day)))
	case MatchDateBefore:
		d, ok := dateValue(value)
		if !ok {
			return nil
		}

		return Lt(column, d.Add(day))
	case MatchDateAfter:
		d, ok := dateValue(value)
		if !ok {
			return nil
		}

		return Gte(column, d)
	}

	return nil
}

// stringValue renders a constraint value for textual matching.
func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", v)
}

// setValue coerces a constraint value into a membership set. A scalar
// becomes a one-element set; an empty set stays empty and matches
// nothing, mirroring SQL IN () semantics.
func setValue(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			out = append(out, stringValue(e))
		}

		return out
	}

	return []string{stringValue(v)}
}

// dateValue parses a constraint value as a calendar day in UTC.
func dateValue(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}

	t, _, err := ParseDateBound(s)
	if err != nil {
		return time.Time{}, false
	}

	return t.UTC().Truncate(day), true
}
