package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo auditoría de movimientos; normalmente recibe la pgx.Tx del TxRunner.
type StockMovementRepo struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (transaction_id, product_id, movement_type, quantity, stock_after, note, user_id, sale_id)
		VALUES ($1::text::uuid, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		m.TransactionID, m.ProductID, m.Type, m.Quantity, m.StockAfter, m.Note, m.UserID, m.SaleID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct del más reciente al más antiguo, con el total sin paginar.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	query := `
		SELECT id, transaction_id::text, product_id, movement_type, quantity, stock_after, note, user_id, sale_id, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY id DESC`
	args := []any{productID}
	if limit > 0 {
		args = append(args, limit, offset)
		query += ` LIMIT $2 OFFSET $3`
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	list := []*entity.StockMovement{}
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.TransactionID, &m.ProductID, &m.Type, &m.Quantity, &m.StockAfter,
			&m.Note, &m.UserID, &m.SaleID, &m.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
