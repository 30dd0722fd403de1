package inventory

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del ajuste de stock y su movimiento de auditoría.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// permissionChecker es el contrato mínimo que se necesita del resolver de permisos.
// Lo implementa *authz.Resolver.
type permissionChecker interface {
	HasAny(ctx context.Context, userID int64, names ...string) bool
}
