package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago.
const (
	PaymentCash       = "cash"
	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentTransfer   = "transfer"
	PaymentOther      = "other"
)

// ValidPaymentType indica si t es un tipo de pago soportado.
func ValidPaymentType(t string) bool {
	switch t {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// Estados de venta.
const (
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
	SalePending   = "pending"
	SaleInProcess = "in_process"
)

// Sale cabecera de una venta. AmountReceived y Change solo aplican a pagos en efectivo.
type Sale struct {
	ID             int64
	Date           time.Time
	UserID         int64
	CustomerName   string
	CustomerID     string
	Total          decimal.Decimal
	AmountReceived *decimal.Decimal
	Change         *decimal.Decimal
	PaymentType    string
	Status         string
	Notes          string

	// Solo lectura (JOIN)
	Username string
}

// SaleLine línea de detalle. UnitPrice es el precio vigente al momento de la venta.
type SaleLine struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal

	// Solo lectura (JOIN)
	ProductName string
	Barcode     string
}

// SaleFilter filtros del historial. Dates se comparan por fecha calendario (inclusive).
type SaleFilter struct {
	UserID   *int64
	From     *time.Time
	To       *time.Time
	Customer string // substring en nombre o identificación
	Limit    int
	Offset   int
}
