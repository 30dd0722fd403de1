package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/pricing"
)

func wholesaleProduct() *entity.Product {
	price := decimal.NewFromInt(8)
	minQty := 10
	return &entity.Product{
		RetailPrice:     decimal.NewFromInt(10),
		WholesalePrice:  &price,
		WholesaleMinQty: &minQty,
	}
}

// Umbral 10 @ $8, detal $10, cantidad 12 → $8 y subtotal $96.
func TestResolveUnitPrice_MayoristaSobreUmbral(t *testing.T) {
	p := wholesaleProduct()

	price, wholesale := pricing.ResolveUnitPrice(p, 12)
	assert.True(t, wholesale)
	assert.True(t, price.Equal(decimal.NewFromInt(8)))

	sub := pricing.LineSubtotal(12, price, decimal.Zero)
	assert.True(t, sub.Equal(decimal.NewFromInt(96)), "subtotal esperado 96, obtenido %s", sub)
}

func TestResolveUnitPrice_ExactamenteEnUmbral(t *testing.T) {
	price, wholesale := pricing.ResolveUnitPrice(wholesaleProduct(), 10)
	assert.True(t, wholesale)
	assert.True(t, price.Equal(decimal.NewFromInt(8)))
}

func TestResolveUnitPrice_BajoUmbralUsaDetal(t *testing.T) {
	price, wholesale := pricing.ResolveUnitPrice(wholesaleProduct(), 9)
	assert.False(t, wholesale)
	assert.True(t, price.Equal(decimal.NewFromInt(10)))
}

func TestResolveUnitPrice_SinPrecioMayorista(t *testing.T) {
	minQty := 5
	p := &entity.Product{RetailPrice: decimal.NewFromInt(10), WholesaleMinQty: &minQty}
	price, wholesale := pricing.ResolveUnitPrice(p, 50)
	assert.False(t, wholesale)
	assert.True(t, price.Equal(decimal.NewFromInt(10)))
}

func TestLineSubtotal_ConDescuento(t *testing.T) {
	sub := pricing.LineSubtotal(3, decimal.RequireFromString("2.50"), decimal.RequireFromString("1.00"))
	assert.True(t, sub.Equal(decimal.RequireFromString("6.50")))
}

func TestChange(t *testing.T) {
	change, ok := pricing.Change(decimal.NewFromInt(100), decimal.RequireFromString("96.00"))
	assert.True(t, ok)
	assert.True(t, change.Equal(decimal.NewFromInt(4)))

	_, ok = pricing.Change(decimal.NewFromInt(50), decimal.NewFromInt(96))
	assert.False(t, ok, "monto recibido menor al total debe rechazarse")

	change, ok = pricing.Change(decimal.NewFromInt(96), decimal.NewFromInt(96))
	assert.True(t, ok)
	assert.True(t, change.IsZero())
}
