package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crudbase/internal/entity"
)

func TestOrderEmpty(t *testing.T) {
	clause, err := Order("", contactColumns)
	assert.NoError(t, err)
	assert.Empty(t, clause)
}

func TestOrderSingleColumn(t *testing.T) {
	clause, err := Order("name", contactColumns)
	assert.NoError(t, err)
	assert.Equal(t, `"name"`, clause)
}

func TestOrderWithDirections(t *testing.T) {
	clause, err := Order("name desc, age", contactColumns)
	assert.NoError(t, err)
	assert.Equal(t, `"name" DESC, "age"`, clause)

	clause, err = Order("age ASC", contactColumns)
	assert.NoError(t, err)
	assert.Equal(t, `"age" ASC`, clause)
}

func TestOrderUnknownColumn(t *testing.T) {
	_, err := Order("nope", contactColumns)
	assert.Error(t, err)
	assert.True(t, entity.IsConfigError(err))
}

func TestOrderInvalidDirection(t *testing.T) {
	_, err := Order("name sideways", contactColumns)
	assert.Error(t, err)
	assert.True(t, entity.IsConfigError(err))
}

func TestOrderMalformedItem(t *testing.T) {
	_, err := Order("name desc extra", contactColumns)
	assert.Error(t, err)
	assert.True(t, entity.IsConfigError(err))
}
