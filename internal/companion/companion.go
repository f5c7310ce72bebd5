package companion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"crudbase/internal/entity"
	"crudbase/internal/metadata"
	"crudbase/internal/query"
)

// User-facing failures for mutations whose follow-up read did not return a
// row. The underlying cause is logged, not surfaced.
var (
	ErrCouldNotCreate = errors.New("could not create record")
	ErrCouldNotUpdate = errors.New("could not update record")
)

// Config is the per-entity-type wiring of a companion.
type Config[T entity.Entity] struct {
	// New constructs an empty entity, used as scan target and by handlers
	// binding request bodies.
	New func() T
	// FilterColumns are the default columns matched by the substring filter.
	FilterColumns []string
	// DefaultOrder applies when a list request carries no order of its own.
	DefaultOrder string
}

// Companion is the generic data access object for one entity type. Every
// operation is per-call and stateless: it borrows a pooled connection, runs
// its statement (save and update run a mutation followed by a re-read, not
// wrapped in a transaction), and releases the connection on all paths.
type Companion[T entity.Entity] struct {
	pool *pgxpool.Pool
	meta *metadata.Registry
	log  *zap.Logger
	cfg  Config[T]
}

func New[T entity.Entity](pool *pgxpool.Pool, meta *metadata.Registry, log *zap.Logger, cfg Config[T]) *Companion[T] {
	return &Companion[T]{
		pool: pool,
		meta: meta,
		log:  log,
		cfg:  cfg,
	}
}

// Page is one page of records plus pagination counters.
type Page[T any] struct {
	Records    []T   `json:"records"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
}

// NewEntity constructs an empty entity of the companion's type.
func (c *Companion[T]) NewEntity() T {
	return c.cfg.New()
}

func (c *Companion[T]) table() string {
	return c.cfg.New().TableName()
}

// selectList returns "id, col1, col2, ..." matching the Pointers contract.
func (c *Companion[T]) selectList() string {
	fields := c.cfg.New().Fields()
	cols := make([]string, 0, len(fields)+1)
	cols = append(cols, "id")
	for _, f := range fields {
		cols = append(cols, f.Name)
	}
	return strings.Join(cols, ", ")
}

// FindByID returns the record with the given identity, or ok=false when no
// such row exists. Storage errors propagate unmodified.
func (c *Companion[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	var zero T
	e := c.cfg.New()

	sql := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", c.selectList(), e.TableName())
	err := c.pool.QueryRow(ctx, sql, id).Scan(e.Pointers()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, err
	}
	return e, true, nil
}

// whereFor AND-combines the optional clauses of a list request: the substring
// filter over the filterable columns, the free-text condition, and the raw
// caller condition. Absent clauses are omitted. cols is the table's column
// metadata, fetched once by the caller.
func (c *Companion[T]) whereFor(cols []metadata.Column, opts query.Options, condition string, args []any) (string, []any, error) {
	filterCols := c.cfg.FilterColumns
	if len(opts.FilterBy) > 0 {
		for _, name := range opts.FilterBy {
			if _, ok := metadata.Find(cols, name); !ok {
				return "", nil, entity.NewConfigError("unknown filter column %q", name)
			}
		}
		filterCols = opts.FilterBy
	}

	var b query.Builder
	clause, clauseArgs := query.FilterClause(opts.Filter, filterCols)
	b.Add(clause, clauseArgs...)
	clause, clauseArgs = query.Condition(opts.Search, cols)
	b.Add(clause, clauseArgs...)
	b.Add(condition, args...)

	where, whereArgs := b.Where()
	return where, whereArgs, nil
}

// Find returns one page of records matching the request options.
func (c *Companion[T]) Find(ctx context.Context, opts query.Options) (*Page[T], error) {
	return c.FindWithCondition(ctx, opts, "", nil)
}

// FindWithCondition is Find with an additional raw condition fragment. The
// fragment is trusted and must come from internal constants; its values are
// passed as ? bind arguments, and the fragment must not contain a literal ?
// outside placeholders.
func (c *Companion[T]) FindWithCondition(ctx context.Context, opts query.Options, condition string, args []any) (*Page[T], error) {
	cols, err := c.meta.Columns(ctx, c.table())
	if err != nil {
		return nil, err
	}

	where, whereArgs, err := c.whereFor(cols, opts, condition, args)
	if err != nil {
		return nil, err
	}

	orderSpec := opts.Order
	if orderSpec == "" {
		orderSpec = c.cfg.DefaultOrder
	}
	orderBy, err := query.Order(orderSpec, cols)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf("SELECT %s FROM %s%s", c.selectList(), c.table(), where)
	if orderBy != "" {
		sql += " ORDER BY " + orderBy
	}
	sql += fmt.Sprintf(" LIMIT %d OFFSET %d", opts.PageSize, opts.Offset())

	rows, err := c.pool.Query(ctx, sql, whereArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		e := c.cfg.New()
		if err := rows.Scan(e.Pointers()...); err != nil {
			return nil, err
		}
		records = append(records, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	total, err := c.CountWithCondition(ctx, opts, condition, args)
	if err != nil {
		return nil, err
	}

	return &Page[T]{
		Records:    records,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalItems: total,
	}, nil
}

// Count returns the number of records matching the request options,
// composing the same filters as Find.
func (c *Companion[T]) Count(ctx context.Context, opts query.Options) (int64, error) {
	return c.CountWithCondition(ctx, opts, "", nil)
}

// CountWithCondition is Count with an additional raw condition fragment.
func (c *Companion[T]) CountWithCondition(ctx context.Context, opts query.Options, condition string, args []any) (int64, error) {
	cols, err := c.meta.Columns(ctx, c.table())
	if err != nil {
		return 0, err
	}

	where, whereArgs, err := c.whereFor(cols, opts, condition, args)
	if err != nil {
		return 0, err
	}

	sql := fmt.Sprintf("SELECT count(*) FROM %s%s", c.table(), where)

	var count int64
	if err := c.pool.QueryRow(ctx, sql, whereArgs...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Save validates the entity and, when it is clean, inserts it and re-reads
// the stored record by the generated identity. Validation failures come back
// as the middle result without touching storage.
func (c *Companion[T]) Save(ctx context.Context, e T) (T, []entity.Error, error) {
	var zero T

	if v, ok := any(e).(entity.Validatable); ok {
		if errs := v.Validate(); len(errs) > 0 {
			return zero, errs, nil
		}
	}
	if p, ok := any(e).(entity.Preparer); ok {
		p.Prepare()
	}

	fields := e.Fields()
	names := make([]string, len(fields))
	placeholders := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = f.Value
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		e.TableName(),
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	)

	var id int64
	if err := c.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return zero, nil, err
	}

	saved, ok, err := c.FindByID(ctx, id)
	if err != nil || !ok {
		c.log.Warn("re-read after insert failed",
			zap.String("table", e.TableName()),
			zap.Int64("id", id),
			zap.Error(err),
		)
		return zero, nil, ErrCouldNotCreate
	}
	return saved, nil, nil
}

// Update validates the entity, rewrites its row by identity, and re-reads
// the stored record. An entity without identity cannot be updated.
func (c *Companion[T]) Update(ctx context.Context, e T) (T, []entity.Error, error) {
	var zero T

	if v, ok := any(e).(entity.Validatable); ok {
		if errs := v.Validate(); len(errs) > 0 {
			return zero, errs, nil
		}
	}
	if e.ID() == 0 {
		return zero, nil, ErrCouldNotUpdate
	}

	fields := e.Fields()
	sets := make([]string, len(fields))
	args := make([]any, 0, len(fields)+1)
	args = append(args, e.ID())
	for i, f := range fields {
		sets[i] = fmt.Sprintf("%s = $%d", f.Name, i+2)
		args = append(args, f.Value)
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", e.TableName(), strings.Join(sets, ", "))
	if _, err := c.pool.Exec(ctx, sql, args...); err != nil {
		return zero, nil, err
	}

	updated, ok, err := c.FindByID(ctx, e.ID())
	if err != nil || !ok {
		c.log.Warn("re-read after update failed",
			zap.String("table", e.TableName()),
			zap.Int64("id", e.ID()),
			zap.Error(err),
		)
		return zero, nil, ErrCouldNotUpdate
	}
	return updated, nil, nil
}

// Delete removes the record with the given identity. An absent identity is a
// silent no-op, and no report is made on whether a row was actually removed.
func (c *Companion[T]) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return nil
	}
	sql := fmt.Sprintf("DELETE FROM %s WHERE id = $1", c.table())
	_, err := c.pool.Exec(ctx, sql, id)
	return err
}

// DeleteEntity removes the entity's row by its identity.
func (c *Companion[T]) DeleteEntity(ctx context.Context, e T) error {
	return c.Delete(ctx, e.ID())
}

// IsDuplicate reports whether another row has the same value as the entity in
// the given field, excluding the entity's own row once it has an identity.
// Asking about a field the entity does not project is a configuration error.
func (c *Companion[T]) IsDuplicate(ctx context.Context, e T, field string) (bool, error) {
	var value any
	found := false
	for _, f := range e.Fields() {
		if f.Name == field {
			value, found = f.Value, true
			break
		}
	}
	if !found {
		return false, entity.NewConfigError("duplicate check on unknown field %q of %s", field, e.TableName())
	}

	col := query.QuoteIdentifier(field)
	var exists bool
	var err error
	if e.ID() != 0 {
		sql := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND id <> $2)", e.TableName(), col)
		err = c.pool.QueryRow(ctx, sql, value, e.ID()).Scan(&exists)
	} else {
		sql := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)", e.TableName(), col)
		err = c.pool.QueryRow(ctx, sql, value).Scan(&exists)
	}
	if err != nil {
		return false, err
	}
	return exists, nil
}
