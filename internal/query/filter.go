package query

import (
	"fmt"
	"strings"
)

// FilterClause builds the OR-list substring condition over the given columns:
// each column matches when lower(col) contains the lowercased filter text.
// Returns an empty fragment when there is no filter text or no columns.
func FilterClause(filter string, columns []string) (string, []any) {
	filter = strings.TrimSpace(filter)
	if filter == "" || len(columns) == 0 {
		return "", nil
	}

	pattern := "%" + strings.ToLower(filter) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("lower(%s::text) LIKE ?", QuoteIdentifier(col)))
		args = append(args, pattern)
	}
	return strings.Join(parts, " OR "), args
}
