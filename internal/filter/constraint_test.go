package filter_test

import (
	"testing"
	"time"

	"github.com/coopsuite/activity-log-ms/internal/filter"
)

func TestParseMatchMode_Unknown(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "between", "notEquals", "EQUALS"} {
		if got := filter.ParseMatchMode(s); got != filter.MatchUnknown {
			t.Errorf("ParseMatchMode(%q) = %v, want MatchUnknown", s, got)
		}
	}
}

func TestTranslateConstraint_Equals(t *testing.T) {
	t.Parallel()

	p := filter.TranslateConstraint("AL01Service", filter.MatchEquals, "auth-ms")
	if p == nil || p.Atom == nil {
		t.Fatalf("expected atom, got %+v", p)
	}
	if p.Atom.Op != filter.OpEq || p.Atom.Column != "AL01Service" || p.Atom.Value != "auth-ms" {
		t.Errorf("atom = %+v", p.Atom)
	}
}

func TestTranslateConstraint_TextModes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		mode filter.MatchMode
		op   filter.Op
	}{
		{filter.MatchContains, filter.OpContains},
		{filter.MatchStartsWith, filter.OpHasPrefix},
		{filter.MatchEndsWith, filter.OpHasSuffix},
	}
	for _, tc := range cases {
		p := filter.TranslateConstraint("AL01Entity", tc.mode, "Cred")
		if p == nil || p.Atom == nil || p.Atom.Op != tc.op {
			t.Errorf("mode %v: got %+v, want op %v", tc.mode, p, tc.op)
		}
	}
}

func TestTranslateConstraint_In(t *testing.T) {
	t.Parallel()

	p := filter.TranslateConstraint("AL01Result", filter.MatchIn, []any{"SUCCESS", "ERROR"})
	if p == nil || p.Atom == nil || p.Atom.Op != filter.OpIn {
		t.Fatalf("expected IN atom, got %+v", p)
	}

	set, ok := p.Atom.Value.([]string)
	if !ok || len(set) != 2 || set[0] != "SUCCESS" || set[1] != "ERROR" {
		t.Errorf("set = %#v", p.Atom.Value)
	}
}

func TestTranslateConstraint_InScalar(t *testing.T) {
	t.Parallel()

	p := filter.TranslateConstraint("AL01Result", filter.MatchIn, "SUCCESS")
	if p == nil || p.Atom == nil {
		t.Fatal("expected atom")
	}

	set, ok := p.Atom.Value.([]string)
	if !ok || len(set) != 1 || set[0] != "SUCCESS" {
		t.Errorf("set = %#v, want one-element set", p.Atom.Value)
	}
}

func TestTranslateConstraint_DateIs(t *testing.T) {
	t.Parallel()

	p := filter.TranslateConstraint("AL01CreatedAt", filter.MatchDateIs, "2025-03-10")
	if p == nil || len(p.And) != 2 {
		t.Fatalf("expected two-atom AND group, got %+v", p)
	}

	lo := p.And[0].Atom
	hi := p.And[1].Atom
	if lo.Op != filter.OpGte || hi.Op != filter.OpLt {
		t.Errorf("ops = %v,%v want Gte,Lt", lo.Op, hi.Op)
	}

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !lo.Value.(time.Time).Equal(day) {
		t.Errorf("lower = %v, want %v", lo.Value, day)
	}
	if !hi.Value.(time.Time).Equal(day.Add(24 * time.Hour)) {
		t.Errorf("upper = %v, want next midnight", hi.Value)
	}
}

func TestTranslateConstraint_DateBeforeAfterInclusive(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	before := filter.TranslateConstraint("AL01CreatedAt", filter.MatchDateBefore, "2025-03-10")
	if before == nil || before.Atom == nil || before.Atom.Op != filter.OpLt {
		t.Fatalf("dateBefore: got %+v", before)
	}
	if !before.Atom.Value.(time.Time).Equal(day.Add(24 * time.Hour)) {
		t.Errorf("dateBefore bound = %v, want next midnight (day inclusive)", before.Atom.Value)
	}

	after := filter.TranslateConstraint("AL01CreatedAt", filter.MatchDateAfter, "2025-03-10")
	if after == nil || after.Atom == nil || after.Atom.Op != filter.OpGte {
		t.Fatalf("dateAfter: got %+v", after)
	}
	if !after.Atom.Value.(time.Time).Equal(day) {
		t.Errorf("dateAfter bound = %v, want midnight (day inclusive)", after.Atom.Value)
	}
}

func TestTranslateConstraint_Inert(t *testing.T) {
	t.Parallel()

	if p := filter.TranslateConstraint("AL01Service", filter.MatchUnknown, "x"); p != nil {
		t.Errorf("unknown mode: got %+v, want nil", p)
	}

	// Unparseable date values are inert, like unknown modes.
	if p := filter.TranslateConstraint("AL01CreatedAt", filter.MatchDateIs, "not-a-date"); p != nil {
		t.Errorf("bad date: got %+v, want nil", p)
	}
	if p := filter.TranslateConstraint("AL01CreatedAt", filter.MatchDateIs, 42.0); p != nil {
		t.Errorf("numeric date: got %+v, want nil", p)
	}
}
