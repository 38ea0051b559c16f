package filter

// Op identifies an atomic comparison.
type Op int

const (
	// OpEq matches the exact value.
	OpEq Op = iota
	// OpContains matches a case-insensitive substring.
	OpContains
	// OpHasPrefix matches a case-insensitive prefix.
	OpHasPrefix
	// OpHasSuffix matches a case-insensitive suffix.
	OpHasSuffix
	// OpIn matches membership in a value set.
	OpIn
	// OpGte matches values greater than or equal to the bound.
	OpGte
	// OpLte matches values less than or equal to the bound.
	OpLte
	// OpLt matches values strictly less than the bound.
	OpLt
)

// Atom is a single comparison against one storage column.
type Atom struct {
	Column string
	Op     Op
	Value  any
}

// Predicate is a boolean expression tree over stored audit columns.
// Exactly one of Atom, And, or Or is set. A nil *Predicate is the
// universal predicate (matches everything).
type Predicate struct {
	Atom *Atom
	And  []*Predicate
	Or   []*Predicate
}

// Eq builds an exact-match atom.
func Eq(column string, value any) *Predicate {
	return &Predicate{Atom: &Atom{Column: column, Op: OpEq, Value: value}}
}

// ContainsFold builds a case-insensitive substring atom.
func ContainsFold(column, value string) *Predicate {
	return &Predicate{Atom: &Atom{Column: column, Op: OpContains, Value: value}}
}

// HasPrefixFold builds a case-insensitive prefix atom.
func HasPrefixFold(column, value string) *Predicate {
	return &Predicate{Atom: &Atom{Column: column, Op: OpHasPrefix, Value: value}}
}

// HasSuffixFold builds a case-insensitive suffix atom.
func HasSuffixFold(column, value string) *Predicate {
	return &Predicate{Atom: &Atom{Column: column, Op: OpHasSuffix, Value: value}}
}

// In builds a set-membership atom.
func In(column string, values []string) *Predicate {
	return &Predicate{Atom: &Atom{Column: column, Op: OpIn, Value: values}}
}

// Gte builds a lower-bound atom (inclusive).
func Gte(column string, value any) *Predicate {
	return &Predicate{Atom: &Atom{Column: column, Op: OpGte, Value: value}}
}

// Lte builds an upper-bound atom (inclusive).
func Lte(column string, value any) *Predicate {
	return &Predicate{Atom: &Atom{Column: column, Op: OpLte, Value: value}}
}

// Lt builds an upper-bound atom (exclusive).
func Lt(column string, value any) *Predicate {
	return &Predicate{Atom: &Atom{Column: column, Op: OpLt, Value: value}}
}

// AndOf combines predicates with AND semantics. Nil children are
// dropped; zero children yield the universal predicate; one child is
// returned as-is.
func AndOf(children ...*Predicate) *Predicate {
	return groupOf(true, children)
}

// OrOf combines predicates with OR semantics, with the same nil and
// single-child collapsing as AndOf.
func OrOf(children ...*Predicate) *Predicate {
	return groupOf(false, children)
}

func groupOf(and bool, children []*Predicate) *Predicate {
	kept := make([]*Predicate, 0, len(children))

	for _, c := range children {
		if c != nil {
			kept = append(kept, c)
		}
	}

	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}

	if and {
		return &Predicate{And: kept}
	}

	return &Predicate{Or: kept}
}
