package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo movimientos de stock en memoria.
type StockMovementRepo struct {
	s *Store
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("movements.create"); err != nil {
		return err
	}
	m.ID = r.s.next("movements")
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.s.Now()
	}
	r.s.movements[m.ID] = *m
	return nil
}

// ListByProduct movimientos del producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			m := m
			all = append(all, &m)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return paginate(all, limit, offset), len(all), nil
}
