package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	s *Store
}

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{s: s}
}

func (r *CategoryRepo) nameTaken(name string, exceptID int64) bool {
	for id, c := range r.s.categories {
		if id != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(c.Name, 0) {
		return domain.ErrDuplicate
	}
	c.ID = r.s.next("categories")
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepo) Update(_ context.Context, id int64, p entity.CategoryPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Name != nil {
		if r.nameTaken(*p.Name, id) {
			return domain.ErrDuplicate
		}
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	r.s.categories[id] = c
	return nil
}

// Delete borra la categoría; los productos quedan sin categoría (ON DELETE SET NULL).
func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	for pid, p := range r.s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			r.s.products[pid] = p
		}
	}
	return nil
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	s *Store
}

// NewSupplierRepository construye el repositorio.
func NewSupplierRepository(s *Store) *SupplierRepo {
	return &SupplierRepo{s: s}
}

func (r *SupplierRepo) taken(name, phone string, exceptID int64) bool {
	for id, s := range r.s.suppliers {
		if id != exceptID && strings.EqualFold(s.Name, name) && s.Phone == phone {
			return true
		}
	}
	return false
}

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.taken(s.Name, s.Phone, 0) {
		return domain.ErrDuplicate
	}
	s.ID = r.s.next("suppliers")
	r.s.suppliers[s.ID] = *s
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, s := range r.s.suppliers {
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SupplierRepo) Update(_ context.Context, id int64, p entity.SupplierPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.suppliers[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Contact != nil {
		s.Contact = *p.Contact
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Address != nil {
		s.Address = *p.Address
	}
	if r.taken(s.Name, s.Phone, id) {
		return domain.ErrDuplicate
	}
	r.s.suppliers[id] = s
	return nil
}

// Delete borra el proveedor; los productos quedan sin proveedor.
func (r *SupplierRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.suppliers, id)
	for pid, p := range r.s.products {
		if p.SupplierID != nil && *p.SupplierID == id {
			p.SupplierID = nil
			r.s.products[pid] = p
		}
	}
	return nil
}
