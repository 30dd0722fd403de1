package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// StockMovementRepository auditoría de movimientos de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, int, error)
}
