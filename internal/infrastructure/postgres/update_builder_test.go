package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateBuilder_Build(t *testing.T) {
	b := newUpdate("products")
	assert.True(t, b.empty())

	b.set("name", "Café")
	b.set("min_stock", 5)
	b.setRaw("updated_at = now()")

	query, args := b.build(42)
	assert.Equal(t, "UPDATE products SET name = $1, min_stock = $2, updated_at = now() WHERE id = $3", query)
	assert.Equal(t, []any{"Café", 5, int64(42)}, args)
	assert.False(t, b.empty())
}

func TestUpdateBuilder_SoloRaw(t *testing.T) {
	b := newUpdate("sales")
	b.setRaw("status = 'cancelled'")

	query, args := b.build(7)
	assert.Equal(t, "UPDATE sales SET status = 'cancelled' WHERE id = $1", query)
	assert.Equal(t, []any{int64(7)}, args)
}
