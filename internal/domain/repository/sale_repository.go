package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	AddLine(ctx context.Context, line *entity.SaleLine) error
	// GetByID devuelve (nil, nil) si la venta no existe.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	Lines(ctx context.Context, saleID int64) ([]*entity.SaleLine, error)
	// List ordena de la más reciente a la más antigua y devuelve el total sin paginar.
	List(ctx context.Context, filter entity.SaleFilter) ([]*entity.Sale, int, error)
	// UpdateStatus cambia el estado solo si el actual es from; false si no se afectó la fila.
	UpdateStatus(ctx context.Context, id int64, from, to string) (bool, error)
}
