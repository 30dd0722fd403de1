package dto

import "time"

// AdjustStockRequest body para POST /api/products/:id/stock.
type AdjustStockRequest struct {
	Quantity  int    `json:"quantity"`
	Direction string `json:"direction"` // entry | exit
	Note      string `json:"note"`
}

// AdjustStockResponse stock resultante.
type AdjustStockResponse struct {
	ProductID int64 `json:"product_id"`
	Stock     int   `json:"stock"`
}

// StockMovementResponse movimiento de auditoría.
type StockMovementResponse struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transaction_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	StockAfter    int       `json:"stock_after"`
	Note          string    `json:"note,omitempty"`
	UserID        *int64    `json:"user_id,omitempty"`
	SaleID        *int64    `json:"sale_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
