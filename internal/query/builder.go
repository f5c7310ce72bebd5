package query

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Builder accumulates optional boolean fragments and AND-combines them into a
// WHERE clause. Fragments use ? placeholders; Where rewrites them to
// PostgreSQL $n placeholders in argument order. The rewrite is textual, so
// fragments must not contain a literal ? outside placeholders, string
// literals included.
type Builder struct {
	conds []string
	args  []any
}

// Add appends a fragment with its bind arguments. Empty fragments are
// ignored, so absent clauses are simply omitted.
func (b *Builder) Add(cond string, args ...any) {
	if strings.TrimSpace(cond) == "" {
		return
	}
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
}

// Where returns the assembled clause including the leading " WHERE ", plus
// its bind arguments. When nothing was added it returns "" and no arguments.
func (b *Builder) Where() (string, []any) {
	if len(b.conds) == 0 {
		return "", nil
	}
	joined := "(" + strings.Join(b.conds, ") AND (") + ")"
	return " WHERE " + rebind(joined), b.args
}

// rebind rewrites ? placeholders to $1..$n.
func rebind(s string) string {
	if !strings.ContainsRune(s, '?') {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	n := 0
	for _, r := range s {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// QuoteIdentifier quotes a SQL identifier so it can never terminate the
// surrounding statement.
func QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
