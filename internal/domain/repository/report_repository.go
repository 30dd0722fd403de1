package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentBreakdown total por tipo de pago.
type PaymentBreakdown struct {
	PaymentType string
	Count       int
	Total       decimal.Decimal
}

// SalesSummaryResult resultado crudo del resumen de un período (solo ventas completadas).
type SalesSummaryResult struct {
	Count     int
	Total     decimal.Decimal
	Average   decimal.Decimal
	ByPayment []PaymentBreakdown
}

// ProductRankResult fila de ranking de productos.
type ProductRankResult struct {
	ProductID   int64
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal
}

// UserSalesResult ventas agrupadas por vendedor.
type UserSalesResult struct {
	UserID   int64
	Username string
	Count    int
	Total    decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes. from/to son inclusive por fecha.
type ReportRepository interface {
	PeriodSummary(ctx context.Context, from, to time.Time) (*SalesSummaryResult, error)
	TopProductsByQuantity(ctx context.Context, from, to time.Time, limit int) ([]ProductRankResult, error)
	TopProductsByRevenue(ctx context.Context, from, to time.Time, limit int) ([]ProductRankResult, error)
	SalesByUser(ctx context.Context, from, to time.Time) ([]UserSalesResult, error)
}
