// Package pricing contiene las reglas de precio de una venta (servicio de dominio, sin I/O).
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ResolveUnitPrice devuelve el precio unitario de una línea.
// Se usa el precio mayorista si el producto define umbral y precio mayorista y quantity >= umbral.
func ResolveUnitPrice(p *entity.Product, quantity int) (price decimal.Decimal, wholesale bool) {
	if p.WholesalePrice != nil && p.WholesaleMinQty != nil &&
		*p.WholesaleMinQty > 0 && quantity >= *p.WholesaleMinQty {
		return *p.WholesalePrice, true
	}
	return p.RetailPrice, false
}

// LineSubtotal = quantity × unitPrice − discount.
func LineSubtotal(quantity int, unitPrice, discount decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(unitPrice).Sub(discount)
}

// Change calcula el vuelto de un pago en efectivo.
// ok=false si el monto recibido no cubre el total.
func Change(amountReceived, total decimal.Decimal) (decimal.Decimal, bool) {
	if amountReceived.LessThan(total) {
		return decimal.Zero, false
	}
	return amountReceived.Sub(total), true
}

// Money redondea a 2 decimales (NUMERIC(12,2) en DB).
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
