// Package filter translates loosely-typed, UI-originated filter
// descriptions into a typed predicate tree over stored audit columns,
// and computes the pagination window around the resulting query.
//
// The package is pure: it never touches the database. The store renders
// the predicate tree into SQL.
package filter

// fieldMap is the fixed table of externally filterable field names and
// the storage columns they resolve to. The column names carry the AL01
// prefix inherited from the audit schema. Review this table whenever the
// record schema changes.
//
// Absence of an entry is not an error: a name outside this table is
// simply not filterable and must be skipped by callers.
var fieldMap = map[string]string{
	"service":   "AL01Service",
	"module":    "AL01Module",
	"action":    "AL01Action",
	"result":    "AL01Result",
	"source":    "AL01Source",
	"eventName": "AL01EventName",

	"entity":   "AL01Entity",
	"entityId": "AL01EntityId",

	"userId":     "AL01UserId",
	"userNombre": "AL01UserNombre",
	"userRol":    "AL01UserRol",

	"cooperativaId": "AL01CooperativaId",
	"sucursalId":    "AL01SucursalId",
}

// MapField resolves an external filter field name to its storage column.
func MapField(external string) (string, bool) {
	col, ok := fieldMap[external]

	return col, ok
}

// searchColumns is the fixed set of textual columns scanned by the
// free-text OR search.
var searchColumns = []string{
	"AL01Service",
	"AL01Module",
	"AL01Action",
	"AL01EventName",
	"AL01Entity",
	"AL01EntityId",
	"AL01UserNombre",
	"AL01Message",
}

// SearchColumns returns a copy of the free-text search column set.
func SearchColumns() []string {
	out := make([]string, len(searchColumns))
	copy(out, searchColumns)

	return out
}
