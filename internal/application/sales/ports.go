package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace rollback completo: ni cabecera, ni líneas, ni cambios de stock.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// permissionChecker lo implementa *authz.Resolver.
type permissionChecker interface {
	HasAny(ctx context.Context, userID int64, names ...string) bool
}
