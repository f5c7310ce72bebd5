package query

import (
	"strings"

	"crudbase/internal/entity"
	"crudbase/internal/metadata"
)

// Order validates a comma-separated order specification ("name desc, age")
// against the table's columns and returns the sanitized ORDER BY clause body.
// Unknown columns and malformed items are configuration errors: order specs
// come from internal constants, not end users.
func Order(spec string, cols []metadata.Column) (string, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", nil
	}

	var parts []string
	for _, item := range strings.Split(spec, ",") {
		words := strings.Fields(item)
		if len(words) == 0 || len(words) > 2 {
			return "", entity.NewConfigError("invalid order item %q", strings.TrimSpace(item))
		}

		name := words[0]
		if _, ok := metadata.Find(cols, name); !ok {
			return "", entity.NewConfigError("unknown order column %q", name)
		}

		part := QuoteIdentifier(name)
		if len(words) == 2 {
			switch strings.ToLower(words[1]) {
			case "asc":
				part += " ASC"
			case "desc":
				part += " DESC"
			default:
				return "", entity.NewConfigError("invalid order direction %q", words[1])
			}
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", "), nil
}
