package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repositorio.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// withNames copia el producto y completa los nombres de categoría y proveedor.
func (r *ProductRepo) withNames(p entity.Product) *entity.Product {
	if p.CategoryID != nil {
		p.CategoryName = r.s.categories[*p.CategoryID].Name
	}
	if p.SupplierID != nil {
		p.SupplierName = r.s.suppliers[*p.SupplierID].Name
	}
	return &p
}

func (r *ProductRepo) barcodeTaken(barcode string, exceptID int64) bool {
	if barcode == "" {
		return false
	}
	for id, p := range r.s.products {
		if id != exceptID && p.Barcode == barcode {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("products.create"); err != nil {
		return err
	}
	if r.barcodeTaken(p.Barcode, 0) {
		return domain.ErrDuplicateBarcode
	}
	now := r.s.Now()
	p.ID = r.s.next("products")
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.withNames(p), nil
}

func (r *ProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if barcode != "" && p.Barcode == barcode {
			return r.withNames(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(_ context.Context, f entity.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	name := strings.ToLower(f.Name)
	var all []*entity.Product
	for _, p := range r.s.products {
		if !f.IncludeInactive && !p.Active {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		if f.SupplierID != nil && (p.SupplierID == nil || *p.SupplierID != *f.SupplierID) {
			continue
		}
		if f.LowStockOnly && !p.LowStock() {
			continue
		}
		all = append(all, r.withNames(p))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name == all[j].Name {
			return all[i].ID < all[j].ID
		}
		return all[i].Name < all[j].Name
	})
	return paginate(all, f.Limit, f.Offset), len(all), nil
}

func (r *ProductRepo) Update(_ context.Context, id int64, patch entity.ProductPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if patch.Barcode != nil {
		if r.barcodeTaken(*patch.Barcode, id) {
			return domain.ErrDuplicateBarcode
		}
		p.Barcode = *patch.Barcode
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.ClearCategory {
		p.CategoryID = nil
	} else if patch.CategoryID != nil {
		p.CategoryID = patch.CategoryID
	}
	if patch.ClearSupplier {
		p.SupplierID = nil
	} else if patch.SupplierID != nil {
		p.SupplierID = patch.SupplierID
	}
	if patch.CostPrice != nil {
		p.CostPrice = *patch.CostPrice
	}
	if patch.RetailPrice != nil {
		p.RetailPrice = *patch.RetailPrice
	}
	if patch.ClearWholesale {
		p.WholesalePrice, p.WholesaleMinQty = nil, nil
	} else {
		if patch.WholesalePrice != nil {
			p.WholesalePrice = patch.WholesalePrice
		}
		if patch.WholesaleMinQty != nil {
			p.WholesaleMinQty = patch.WholesaleMinQty
		}
	}
	if patch.MinStock != nil {
		p.MinStock = *patch.MinStock
	}
	if patch.UnitMeasure != nil {
		p.UnitMeasure = *patch.UnitMeasure
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	p.UpdatedAt = r.s.Now()
	r.s.products[id] = p
	return nil
}

// Delete borra el producto salvo que una línea de venta lo referencie (ON DELETE RESTRICT).
func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	for _, l := range r.s.lines {
		if l.ProductID == id {
			return domain.ErrProductInUse
		}
	}
	delete(r.s.products, id)
	for mid, m := range r.s.movements {
		if m.ProductID == id {
			delete(r.s.movements, mid)
		}
	}
	return nil
}

func (r *ProductRepo) IncrementStock(_ context.Context, id int64, qty int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || !p.Active {
		return 0, domain.ErrProductNotFound
	}
	p.Stock += qty
	p.UpdatedAt = r.s.Now()
	r.s.products[id] = p
	return p.Stock, nil
}

// DecrementStock equivale al UPDATE ... WHERE stock >= qty: comprobación y escritura bajo el mismo lock.
func (r *ProductRepo) DecrementStock(_ context.Context, id int64, qty int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("products.decrement"); err != nil {
		return 0, err
	}
	p, ok := r.s.products[id]
	if !ok || !p.Active || p.Stock < qty {
		return 0, &domain.StockError{ProductID: id, Requested: qty, Available: -1}
	}
	p.Stock -= qty
	p.UpdatedAt = r.s.Now()
	r.s.products[id] = p
	return p.Stock, nil
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
