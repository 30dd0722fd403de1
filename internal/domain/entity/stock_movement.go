package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementEntry      = "entry"       // entrada manual
	MovementExit       = "exit"        // salida manual (ajuste)
	MovementSale       = "sale"        // descuento por venta
	MovementSaleCancel = "sale_cancel" // reposición por anulación
)

// StockMovement registro de auditoría de un cambio de stock.
// Quantity es positivo en entradas y negativo en salidas.
type StockMovement struct {
	ID            int64
	TransactionID string
	ProductID     int64
	Type          string
	Quantity      int
	StockAfter    int
	Note          string
	UserID        *int64
	SaleID        *int64
	CreatedAt     time.Time
}
