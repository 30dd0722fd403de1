package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del punto de venta.
// Stock solo se modifica a través del ledger de inventario o de una venta, nunca vía Update.
type Product struct {
	ID              int64
	Barcode         string // vacío = sin código (NULL en DB, el UNIQUE no aplica)
	Name            string
	Description     string
	CategoryID      *int64
	SupplierID      *int64
	CostPrice       decimal.Decimal
	RetailPrice     decimal.Decimal
	WholesalePrice  *decimal.Decimal
	WholesaleMinQty *int
	Stock           int
	MinStock        int
	UnitMeasure     string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Solo lectura (JOIN)
	CategoryName string
	SupplierName string
}

// LowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// ProductPatch actualización parcial de un producto. Stock no es parcheable.
// ClearCategory/ClearSupplier/ClearWholesale fuerzan NULL.
type ProductPatch struct {
	Barcode         *string
	Name            *string
	Description     *string
	CategoryID      *int64
	ClearCategory   bool
	SupplierID      *int64
	ClearSupplier   bool
	CostPrice       *decimal.Decimal
	RetailPrice     *decimal.Decimal
	WholesalePrice  *decimal.Decimal
	WholesaleMinQty *int
	ClearWholesale  bool
	MinStock        *int
	UnitMeasure     *string
	Active          *bool
}

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Name            string // substring, sin distinguir mayúsculas
	CategoryID      *int64
	SupplierID      *int64
	LowStockOnly    bool
	IncludeInactive bool
	Limit           int
	Offset          int
}
