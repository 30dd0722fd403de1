// Package sales registro atómico de ventas, anulación e historial con control de acceso por alcance.
package sales

import (
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// SaleUseCase capa llamadora del motor: permisos, carrito, precios y pago.
type SaleUseCase struct {
	engine   *Engine
	products repository.ProductRepository
	sales    repository.SaleRepository
	authz    permissionChecker
	pageSize int
	log      *logger.Logger
}

// NewSaleUseCase construye el caso de uso. pageSize es el límite por defecto del historial.
func NewSaleUseCase(
	engine *Engine,
	products repository.ProductRepository,
	sales repository.SaleRepository,
	authz permissionChecker,
	pageSize int,
	log *logger.Logger,
) *SaleUseCase {
	if pageSize <= 0 {
		pageSize = 25
	}
	return &SaleUseCase{
		engine:   engine,
		products: products,
		sales:    sales,
		authz:    authz,
		pageSize: pageSize,
		log:      log.Component("sales"),
	}
}
