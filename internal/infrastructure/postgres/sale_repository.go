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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleSelect = `
	SELECT s.id, s.sold_at, s.user_id, s.customer_name, s.customer_id, s.total,
		s.amount_received, s.change_given, s.payment_type, s.status, s.notes,
		COALESCE(u.username, '')
	FROM sales s
	LEFT JOIN users u ON u.id = s.user_id`

// SaleRepo ventas y líneas de venta.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera. Si Date es cero usa now().
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (sold_at, user_id, customer_name, customer_id, total,
			amount_received, change_given, payment_type, status, notes)
		VALUES (COALESCE($1, now()), $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, sold_at`
	var date any
	if !s.Date.IsZero() {
		date = s.Date
	}
	err := r.q.QueryRow(ctx, query,
		date, s.UserID, s.CustomerName, s.CustomerID, s.Total,
		s.AmountReceived, s.Change, s.PaymentType, s.Status, s.Notes,
	).Scan(&s.ID, &s.Date)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) AddLine(ctx context.Context, l *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (sale_id, product_id, quantity, unit_price, subtotal, discount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		l.SaleID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal, l.Discount,
	).Scan(&l.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// Lines líneas de la venta en orden de inserción, con nombre y código del producto.
func (r *SaleRepo) Lines(ctx context.Context, saleID int64) ([]*entity.SaleLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.sale_id, l.product_id, l.quantity, l.unit_price, l.subtotal, l.discount,
			p.name, COALESCE(p.barcode, '')
		FROM sale_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.sale_id = $1
		ORDER BY l.id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()

	list := []*entity.SaleLine{}
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal, &l.Discount,
			&l.ProductName, &l.Barcode); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// List historial filtrado, de la más reciente a la más antigua.
func (r *SaleRepo) List(ctx context.Context, f entity.SaleFilter) ([]*entity.Sale, int, error) {
	var conds []string
	var args []any
	if f.UserID != nil {
		args = append(args, *f.UserID)
		conds = append(conds, fmt.Sprintf("s.user_id = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, startOfDay(*f.From))
		conds = append(conds, fmt.Sprintf("s.sold_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, startOfDay(*f.To).AddDate(0, 0, 1))
		conds = append(conds, fmt.Sprintf("s.sold_at < $%d", len(args)))
	}
	if f.Customer != "" {
		args = append(args, containsPattern(f.Customer))
		conds = append(conds, fmt.Sprintf(`(s.customer_name ILIKE $%d ESCAPE '\' OR s.customer_id ILIKE $%d ESCAPE '\')`, len(args), len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales s`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := saleSelect + where + ` ORDER BY s.sold_at DESC, s.id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	list := []*entity.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// UpdateStatus transición condicional from → to.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id int64, from, to string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE sales SET status = $3 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, fmt.Errorf("update sale status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func scanSale(row pgxScanner) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.Date, &s.UserID, &s.CustomerName, &s.CustomerID, &s.Total,
		&s.AmountReceived, &s.Change, &s.PaymentType, &s.Status, &s.Notes,
		&s.Username,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
