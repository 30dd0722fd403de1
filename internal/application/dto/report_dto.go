package dto

import "github.com/shopspring/decimal"

// ReportRange rango de fechas YYYY-MM-DD (inclusive) para reportes.
type ReportRange struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// PaymentBreakdownDTO total por tipo de pago.
type PaymentBreakdownDTO struct {
	PaymentType string          `json:"payment_type"`
	Count       int             `json:"count"`
	Total       decimal.Decimal `json:"total"`
}

// SalesSummaryDTO resumen de ventas completadas de un período.
type SalesSummaryDTO struct {
	From      string                `json:"from"`
	To        string                `json:"to"`
	Count     int                   `json:"count"`
	Total     decimal.Decimal       `json:"total"`
	Average   decimal.Decimal       `json:"average"`
	ByPayment []PaymentBreakdownDTO `json:"by_payment"`
}

// ProductRankDTO fila de ranking.
type ProductRankDTO struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// TopProductsDTO ranking por cantidad y por valor.
type TopProductsDTO struct {
	ByQuantity []ProductRankDTO `json:"by_quantity"`
	ByRevenue  []ProductRankDTO `json:"by_revenue"`
}

// UserSalesDTO ventas por vendedor.
type UserSalesDTO struct {
	UserID   int64           `json:"user_id"`
	Username string          `json:"username"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// DashboardDTO resumen de hoy y del mes en curso.
type DashboardDTO struct {
	Today       SalesSummaryDTO  `json:"today"`
	Month       SalesSummaryDTO  `json:"month"`
	TopProducts []ProductRankDTO `json:"top_products"`
}
