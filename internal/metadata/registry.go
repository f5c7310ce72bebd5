package metadata

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Column describes one column of a table as reported by the database catalog.
type Column struct {
	Name     string
	DataType string
}

var numericTypes = map[string]bool{
	"smallint":         true,
	"integer":          true,
	"bigint":           true,
	"numeric":          true,
	"decimal":          true,
	"real":             true,
	"double precision": true,
}

var characterTypes = map[string]bool{
	"text":              true,
	"character varying": true,
	"character":         true,
	"citext":            true,
}

// Numeric reports whether values of this column compare numerically.
func (c Column) Numeric() bool {
	return numericTypes[c.DataType]
}

// Text reports whether this is a character column, the kind bare search
// words are matched against.
func (c Column) Text() bool {
	return characterTypes[c.DataType]
}

// Find returns the column with the given name, if the table has one.
func Find(cols []Column, name string) (Column, bool) {
	for _, c := range cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Registry introspects column metadata from information_schema and memoizes
// it per table for the lifetime of the process. It is constructed once at
// startup and injected into every companion; schema changes require a
// restart. Safe for concurrent use.
type Registry struct {
	pool *pgxpool.Pool

	mu     sync.RWMutex
	tables map[string][]Column
}

func NewRegistry(pool *pgxpool.Pool) *Registry {
	return &Registry{
		pool:   pool,
		tables: make(map[string][]Column),
	}
}

// Columns returns the column list of a table in ordinal position order,
// introspecting the catalog on first access.
func (r *Registry) Columns(ctx context.Context, table string) ([]Column, error) {
	r.mu.RLock()
	cols, ok := r.tables[table]
	r.mu.RUnlock()
	if ok {
		return cols, nil
	}

	query := `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position
	`

	rows, err := r.pool.Query(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect table %q: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.DataType); err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %q not found in information_schema", table)
	}

	r.mu.Lock()
	r.tables[table] = cols
	r.mu.Unlock()

	return cols, nil
}
