package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y líneas en memoria.
type SaleRepo struct {
	s *Store
}

// NewSaleRepository construye el repositorio.
func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{s: s}
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("sales.create"); err != nil {
		return err
	}
	if _, ok := r.s.users[sale.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	sale.ID = r.s.next("sales")
	if sale.Date.IsZero() {
		sale.Date = r.s.Now()
	}
	if sale.Status == "" {
		sale.Status = entity.SaleCompleted
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) AddLine(_ context.Context, line *entity.SaleLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("sales.add_line"); err != nil {
		return err
	}
	if _, ok := r.s.sales[line.SaleID]; !ok {
		return domain.ErrSaleNotFound
	}
	if _, ok := r.s.products[line.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	line.ID = r.s.next("lines")
	r.s.lines[line.ID] = *line
	return nil
}

func (r *SaleRepo) withUsername(s entity.Sale) *entity.Sale {
	s.Username = r.s.users[s.UserID].Username
	return &s
}

func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return r.withUsername(s), nil
}

// Lines líneas de la venta en orden de inserción.
func (r *SaleRepo) Lines(_ context.Context, saleID int64) ([]*entity.SaleLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.SaleLine{}
	for _, l := range r.s.lines {
		if l.SaleID == saleID {
			l := l
			p := r.s.products[l.ProductID]
			l.ProductName, l.Barcode = p.Name, p.Barcode
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func sameOrAfterDay(t, day time.Time) bool {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return !t.Before(start)
}

func sameOrBeforeDay(t, day time.Time) bool {
	y, m, d := day.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
	return t.Before(end)
}

func (r *SaleRepo) List(_ context.Context, f entity.SaleFilter) ([]*entity.Sale, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	customer := strings.ToLower(f.Customer)
	var all []*entity.Sale
	for _, s := range r.s.sales {
		if f.UserID != nil && s.UserID != *f.UserID {
			continue
		}
		if f.From != nil && !sameOrAfterDay(s.Date, *f.From) {
			continue
		}
		if f.To != nil && !sameOrBeforeDay(s.Date, *f.To) {
			continue
		}
		if customer != "" &&
			!strings.Contains(strings.ToLower(s.CustomerName), customer) &&
			!strings.Contains(strings.ToLower(s.CustomerID), customer) {
			continue
		}
		all = append(all, r.withUsername(s))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Date.Equal(all[j].Date) {
			return all[i].ID > all[j].ID
		}
		return all[i].Date.After(all[j].Date)
	})
	return paginate(all, f.Limit, f.Offset), len(all), nil
}

func (r *SaleRepo) UpdateStatus(_ context.Context, id int64, from, to string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.sales[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	r.s.sales[id] = s
	return true, nil
}
