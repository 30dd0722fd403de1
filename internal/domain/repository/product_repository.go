package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID incluye productos inactivos; (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, int, error)
	Update(ctx context.Context, id int64, patch entity.ProductPatch) error
	// Delete borra físicamente; ErrProductInUse si alguna línea de venta lo referencia.
	Delete(ctx context.Context, id int64) error

	// IncrementStock suma qty al stock de un producto activo y devuelve el nuevo stock.
	IncrementStock(ctx context.Context, id int64, qty int) (int, error)
	// DecrementStock resta qty solo si stock >= qty, en un único UPDATE condicional.
	// Si no se afectó ninguna fila devuelve *domain.StockError.
	DecrementStock(ctx context.Context, id int64, qty int) (int, error)
}
