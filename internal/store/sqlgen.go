package store

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/coopsuite/activity-log-ms/internal/filter"
)

// sqlBuilder accumulates WHERE fragments with numbered args.
type sqlBuilder struct {
	args []any
}

// renderWhere renders a predicate tree into a WHERE clause (including
// the leading "WHERE ") and its argument list. The universal predicate
// renders as the empty string.
func renderWhere(p *filter.Predicate) (string, []any) {
	if p == nil {
		return "", nil
	}

	b := &sqlBuilder{}
	cond := b.render(p)

	return "WHERE " + cond, b.args
}

func (b *sqlBuilder) render(p *filter.Predicate) string {
	switch {
	case p.Atom != nil:
		return b.atom(p.Atom)
	case len(p.And) > 0:
		return b.group(p.And, " AND ")
	case len(p.Or) > 0:
		return b.group(p.Or, " OR ")
	}

	return "TRUE"
}

func (b *sqlBuilder) group(children []*filter.Predicate, sep string) string {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		parts = append(parts, b.render(c))
	}

	return "(" + strings.Join(parts, sep) + ")"
}

func (b *sqlBuilder) atom(a *filter.Atom) string {
	col := pgx.Identifier{a.Column}.Sanitize()

	switch a.Op {
	case filter.OpEq:
		return col + " = " + b.arg(a.Value)
	case filter.OpContains:
		return col + " ILIKE " + b.arg("%"+escapeLike(likeOperand(a.Value))+"%") + likeEscape
	case filter.OpHasPrefix:
		return col + " ILIKE " + b.arg(escapeLike(likeOperand(a.Value))+"%") + likeEscape
	case filter.OpHasSuffix:
		return col + " ILIKE " + b.arg("%"+escapeLike(likeOperand(a.Value))) + likeEscape
	case filter.OpIn:
		return col + " = ANY(" + b.arg(a.Value) + ")"
	case filter.OpGte:
		return col + " >= " + b.arg(a.Value)
	case filter.OpLte:
		return col + " <= " + b.arg(a.Value)
	case filter.OpLt:
		return col + " < " + b.arg(a.Value)
	}

	// Unreachable with a well-formed tree.
	return "FALSE"
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)

	return "$" + strconv.Itoa(len(b.args))
}

const likeEscape = ` ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE metacharacters so the search term matches
// literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func likeOperand(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return ""
}
