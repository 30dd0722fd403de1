package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea del carrito. El precio lo resuelve el servidor (detal o mayorista).
type SaleLineRequest struct {
	ProductID int64           `json:"product_id" validate:"gt=0"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Discount  decimal.Decimal `json:"discount" validate:"gte=0"`
}

// RegisterSaleRequest body para POST /api/sales.
// Total es opcional: si viene debe ser > 0 y no mayor que la suma de subtotales.
type RegisterSaleRequest struct {
	Lines          []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
	Total          *decimal.Decimal  `json:"total,omitempty" validate:"omitempty,gt=0"`
	PaymentType    string            `json:"payment_type" validate:"required,oneof=cash credit_card debit_card transfer other"`
	AmountReceived *decimal.Decimal  `json:"amount_received,omitempty" validate:"omitempty,gte=0"`
	CustomerName   string            `json:"customer_name,omitempty" validate:"max=150"`
	CustomerID     string            `json:"customer_id,omitempty" validate:"max=50"`
	Notes          string            `json:"notes,omitempty"`
}

// SaleLineResponse línea de una venta.
type SaleLineResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Wholesale   bool            `json:"wholesale,omitempty"`
}

// RegisterSaleResponse resultado de una venta registrada.
type RegisterSaleResponse struct {
	SaleID int64              `json:"sale_id"`
	Total  decimal.Decimal    `json:"total"`
	Change *decimal.Decimal   `json:"change,omitempty"`
	Lines  []SaleLineResponse `json:"lines"`
}

// SaleResponse cabecera de venta (con líneas en el detalle).
type SaleResponse struct {
	ID             int64              `json:"id"`
	Date           time.Time          `json:"date"`
	UserID         int64              `json:"user_id"`
	Username       string             `json:"username"`
	CustomerName   string             `json:"customer_name,omitempty"`
	CustomerID     string             `json:"customer_id,omitempty"`
	Total          decimal.Decimal    `json:"total"`
	AmountReceived *decimal.Decimal   `json:"amount_received,omitempty"`
	Change         *decimal.Decimal   `json:"change,omitempty"`
	PaymentType    string             `json:"payment_type"`
	Status         string             `json:"status"`
	Notes          string             `json:"notes,omitempty"`
	Lines          []SaleLineResponse `json:"lines,omitempty"`
}

// SaleFilter filtros del historial. Dates en formato YYYY-MM-DD (inclusive).
type SaleFilter struct {
	PageRequest
	UserID   int64  `query:"user_id"`
	From     string `query:"from"`
	To       string `query:"to"`
	Customer string `query:"customer"`
}

// SaleListResponse historial paginado.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
	// Scope "all" o "own": indica si el filtro de usuario se forzó al solicitante.
	Scope string `json:"scope"`
}
