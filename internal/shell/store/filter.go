package store

import (
	"strings"

	"github.com/artpar/swplanet/internal/core/domain"
)

// =============================================================================
// Filters
// =============================================================================

// Filter constrains a single column to a value, compared under Unicode case folding.
type Filter struct {
	Field string
	Value any
}

// planetColumns is the allow-list of filterable planet columns.
var planetColumns = map[string]bool{
	"name":    true,
	"climate": true,
	"terrain": true,
}

// PlanetFilters converts a query example into filters.
// Unset fields produce no filter.
func PlanetFilters(q domain.PlanetQuery) []Filter {
	var filters []Filter
	if q.Name != nil {
		filters = append(filters, Filter{Field: "name", Value: *q.Name})
	}
	if q.Climate != nil {
		filters = append(filters, Filter{Field: "climate", Value: *q.Climate})
	}
	if q.Terrain != nil {
		filters = append(filters, Filter{Field: "terrain", Value: *q.Terrain})
	}
	return filters
}

// WhereClause renders filters as a SQL WHERE clause joined with AND.
// Returns an empty clause when there are no filters. Filters on columns
// outside the allow-list are dropped.
func WhereClause(filters []Filter) (string, []any) {
	var where []string
	var args []any
	for _, f := range filters {
		if !planetColumns[f.Field] {
			continue
		}
		where = append(where, f.Field+" = ? COLLATE "+foldCollation)
		args = append(args, f.Value)
	}
	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}
