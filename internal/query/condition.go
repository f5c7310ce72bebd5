package query

import (
	"fmt"
	"strconv"
	"strings"

	"crudbase/internal/metadata"
)

// operators recognized inside a search term, matched earliest-first with the
// longer form winning at the same position.
var termOperators = []string{">=", "<=", "!=", "=", ">", "<", ":"}

// Condition translates a free-text search expression into a SQL boolean
// fragment with bind arguments, using column metadata to pick per-column
// comparison semantics.
//
// The expression is a sequence of whitespace-separated terms, AND-combined:
//
//	col:value    substring match on text columns, equality on numeric ones
//	col=value    equality ("!=", ">", ">=", "<", "<=" likewise)
//	word         substring match over any of the table's character columns
//
// Terms naming unknown columns, non-numeric values compared against numeric
// columns, ordered or equality comparisons against columns that are neither
// numeric nor character typed, and empty values are dropped; when nothing
// usable remains the fragment is empty. Malformed input never produces an
// error.
func Condition(search string, cols []metadata.Column) (string, []any) {
	terms := strings.Fields(search)
	if len(terms) == 0 {
		return "", nil
	}

	byName := make(map[string]metadata.Column, len(cols))
	var textCols []string
	for _, c := range cols {
		byName[c.Name] = c
		if c.Text() {
			textCols = append(textCols, c.Name)
		}
	}

	var conds []string
	var args []any
	for _, term := range terms {
		name, op, value, ok := splitTerm(term)
		if !ok {
			clause, clauseArgs := FilterClause(term, textCols)
			if clause != "" {
				conds = append(conds, "("+clause+")")
				args = append(args, clauseArgs...)
			}
			continue
		}

		col, known := byName[name]
		if !known || value == "" {
			continue
		}

		if col.Numeric() {
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			if op == ":" {
				op = "="
			}
			conds = append(conds, fmt.Sprintf("%s %s ?", QuoteIdentifier(name), op))
			args = append(args, n)
			continue
		}

		if op == ":" {
			conds = append(conds, fmt.Sprintf("lower(%s::text) LIKE ?", QuoteIdentifier(name)))
			args = append(args, "%"+strings.ToLower(value)+"%")
			continue
		}

		// ordered and equality comparisons bind the raw value, which only
		// parses reliably for character columns; other types (timestamps,
		// booleans, uuids) drop the term
		if !col.Text() {
			continue
		}

		switch op {
		case "!=":
			conds = append(conds, fmt.Sprintf("%s <> ?", QuoteIdentifier(name)))
			args = append(args, value)
		default:
			conds = append(conds, fmt.Sprintf("%s %s ?", QuoteIdentifier(name), op))
			args = append(args, value)
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return strings.Join(conds, " AND "), args
}

// splitTerm splits "col<op>value" into its parts. ok is false for bare words.
// The operator may not lead the term.
func splitTerm(term string) (name, op, value string, ok bool) {
	best := -1
	for _, o := range termOperators {
		i := strings.Index(term, o)
		if i <= 0 {
			continue
		}
		if best == -1 || i < best || (i == best && len(o) > len(op)) {
			best, op = i, o
		}
	}
	if best == -1 {
		return "", "", "", false
	}
	return term[:best], op, term[best+len(op):], true
}
