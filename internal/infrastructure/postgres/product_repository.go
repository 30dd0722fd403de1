package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
	SELECT p.id, p.barcode, p.name, p.description, p.category_id, p.supplier_id,
		p.cost_price, p.retail_price, p.wholesale_price, p.wholesale_min_qty,
		p.stock, p.min_stock, p.unit_measure, p.active, p.created_at, p.updated_at,
		COALESCE(c.name, ''), COALESCE(s.name, '')
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el repositorio. q puede ser el pool o una pgx.Tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y completa ID y fechas.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (barcode, name, description, category_id, supplier_id,
			cost_price, retail_price, wholesale_price, wholesale_min_qty,
			stock, min_stock, unit_measure, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		nullIfEmpty(p.Barcode), p.Name, p.Description, p.CategoryID, p.SupplierID,
		p.CostPrice, p.RetailPrice, p.WholesalePrice, p.WholesaleMinQty,
		p.Stock, p.MinStock, p.UnitMeasure, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBarcode
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return p, nil
}

// GetByBarcode obtiene un producto por código de barras (activo o no).
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.barcode = $1`, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// List devuelve la página pedida ordenada por nombre y el total sin paginar.
func (r *ProductRepo) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, int, error) {
	var conds []string
	var args []any
	if !f.IncludeInactive {
		conds = append(conds, "p.active")
	}
	if f.Name != "" {
		args = append(args, containsPattern(f.Name))
		conds = append(conds, fmt.Sprintf(`p.name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.SupplierID != nil {
		args = append(args, *f.SupplierID)
		conds = append(conds, fmt.Sprintf("p.supplier_id = $%d", len(args)))
	}
	if f.LowStockOnly {
		conds = append(conds, "p.stock <= p.min_stock")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := productSelect + where + ` ORDER BY p.name, p.id`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Update aplica el patch. El stock nunca se toca aquí.
func (r *ProductRepo) Update(ctx context.Context, id int64, p entity.ProductPatch) error {
	b := newUpdate("products")
	if p.Barcode != nil {
		b.set("barcode", nullIfEmpty(*p.Barcode))
	}
	if p.Name != nil {
		b.set("name", *p.Name)
	}
	if p.Description != nil {
		b.set("description", *p.Description)
	}
	if p.ClearCategory {
		b.setRaw("category_id = NULL")
	} else if p.CategoryID != nil {
		b.set("category_id", *p.CategoryID)
	}
	if p.ClearSupplier {
		b.setRaw("supplier_id = NULL")
	} else if p.SupplierID != nil {
		b.set("supplier_id", *p.SupplierID)
	}
	if p.CostPrice != nil {
		b.set("cost_price", *p.CostPrice)
	}
	if p.RetailPrice != nil {
		b.set("retail_price", *p.RetailPrice)
	}
	if p.ClearWholesale {
		b.setRaw("wholesale_price = NULL")
		b.setRaw("wholesale_min_qty = NULL")
	} else {
		if p.WholesalePrice != nil {
			b.set("wholesale_price", *p.WholesalePrice)
		}
		if p.WholesaleMinQty != nil {
			b.set("wholesale_min_qty", *p.WholesaleMinQty)
		}
	}
	if p.MinStock != nil {
		b.set("min_stock", *p.MinStock)
	}
	if p.UnitMeasure != nil {
		b.set("unit_measure", *p.UnitMeasure)
	}
	if p.Active != nil {
		b.set("active", *p.Active)
	}
	b.setRaw("updated_at = now()")

	query, args := b.build(id)
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBarcode
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete borra el producto; sale_lines lo referencia con ON DELETE RESTRICT.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductInUse
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// IncrementStock suma qty a un producto activo y devuelve el stock resultante.
func (r *ProductRepo) IncrementStock(ctx context.Context, id int64, qty int) (int, error) {
	var stock int
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND active
		RETURNING stock`, id, qty).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrProductNotFound
		}
		return 0, fmt.Errorf("increment stock: %w", err)
	}
	return stock, nil
}

// DecrementStock resta qty en un único UPDATE condicional. Dos ventas concurrentes
// sobre el mismo producto no pueden dejar el stock negativo: la segunda no afecta filas.
func (r *ProductRepo) DecrementStock(ctx context.Context, id int64, qty int) (int, error) {
	var stock int
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND active AND stock >= $2
		RETURNING stock`, id, qty).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &domain.StockError{ProductID: id, Requested: qty, Available: -1}
		}
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	return stock, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func scanProduct(row pgxScanner) (*entity.Product, error) {
	var p entity.Product
	var barcode *string
	err := row.Scan(
		&p.ID, &barcode, &p.Name, &p.Description, &p.CategoryID, &p.SupplierID,
		&p.CostPrice, &p.RetailPrice, &p.WholesalePrice, &p.WholesaleMinQty,
		&p.Stock, &p.MinStock, &p.UnitMeasure, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	return &p, nil
}
