package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOptionsDefaults(t *testing.T) {
	opts := ParseOptions(map[string]string{})

	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultPageSize, opts.PageSize)
	assert.Empty(t, opts.Order)
	assert.Empty(t, opts.Search)
	assert.Empty(t, opts.Filter)
	assert.Empty(t, opts.FilterBy)
}

func TestParseOptions(t *testing.T) {
	opts := ParseOptions(map[string]string{
		"page":     "3",
		"length":   "25",
		"order":    "name desc",
		"search":   "age>30",
		"filter":   "ann",
		"filterBy": "name, email,,phone",
	})

	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 25, opts.PageSize)
	assert.Equal(t, "name desc", opts.Order)
	assert.Equal(t, "age>30", opts.Search)
	assert.Equal(t, "ann", opts.Filter)
	assert.Equal(t, []string{"name", "email", "phone"}, opts.FilterBy)
}

func TestParseOptionsIgnoresGarbageNumbers(t *testing.T) {
	opts := ParseOptions(map[string]string{"page": "abc", "length": "x"})

	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultPageSize, opts.PageSize)
}

func TestOptionsOffset(t *testing.T) {
	assert.Equal(t, 0, Options{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 10, Options{Page: 2, PageSize: 10}.Offset())
	assert.Equal(t, 40, Options{Page: 3, PageSize: 20}.Offset())
}
