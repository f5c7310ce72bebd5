package query

import (
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// Options carries the list-query parameters decoded from an HTTP request.
type Options struct {
	Page     int
	PageSize int
	// Order is a comma-separated column list, e.g. "name desc, age".
	Order string
	// Search is the free-text query translated by the condition builder.
	Search string
	// Filter is a substring matched against the filterable columns.
	Filter string
	// FilterBy overrides the companion's default filterable columns.
	FilterBy []string
}

// ParseOptions decodes the page/length/order/search/filter/filterBy keys of
// an HTTP-style query map. Missing page and length fall back to defaults;
// non-positive values are passed through as given.
func ParseOptions(params map[string]string) Options {
	opts := Options{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if v := params["page"]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Page = n
		}
	}
	if v := params["length"]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.PageSize = n
		}
	}

	opts.Order = strings.TrimSpace(params["order"])
	opts.Search = strings.TrimSpace(params["search"])
	opts.Filter = strings.TrimSpace(params["filter"])

	if v := params["filterBy"]; v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.FilterBy = append(opts.FilterBy, name)
			}
		}
	}

	return opts
}

// Offset returns the row offset of the requested page.
func (o Options) Offset() int {
	return (o.Page - 1) * o.PageSize
}
