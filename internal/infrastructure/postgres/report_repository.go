package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones de solo lectura sobre ventas completadas.
type ReportRepo struct {
	q Querier
}

func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// PeriodSummary cantidad, total, ticket promedio y desglose por tipo de pago.
func (r *ReportRepo) PeriodSummary(ctx context.Context, from, to time.Time) (*repository.SalesSummaryResult, error) {
	start, end := dayBounds(from, to)
	res := &repository.SalesSummaryResult{ByPayment: []repository.PaymentBreakdown{}}

	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(ROUND(AVG(total), 2), 0)
		FROM sales
		WHERE status = 'completed' AND sold_at >= $1 AND sold_at < $2`, start, end,
	).Scan(&res.Count, &res.Total, &res.Average)
	if err != nil {
		return nil, fmt.Errorf("period summary: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT payment_type, COUNT(*), SUM(total)
		FROM sales
		WHERE status = 'completed' AND sold_at >= $1 AND sold_at < $2
		GROUP BY payment_type
		ORDER BY payment_type`, start, end)
	if err != nil {
		return nil, fmt.Errorf("payment breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b repository.PaymentBreakdown
		if err := rows.Scan(&b.PaymentType, &b.Count, &b.Total); err != nil {
			return nil, fmt.Errorf("scan payment breakdown: %w", err)
		}
		res.ByPayment = append(res.ByPayment, b)
	}
	return res, rows.Err()
}

func (r *ReportRepo) TopProductsByQuantity(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductRankResult, error) {
	return r.rank(ctx, from, to, limit, "quantity DESC, l.product_id")
}

func (r *ReportRepo) TopProductsByRevenue(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductRankResult, error) {
	return r.rank(ctx, from, to, limit, "revenue DESC, l.product_id")
}

// rank agrupa líneas de ventas completadas por producto. orderBy es siempre una constante.
func (r *ReportRepo) rank(ctx context.Context, from, to time.Time, limit int, orderBy string) ([]repository.ProductRankResult, error) {
	start, end := dayBounds(from, to)
	rows, err := r.q.Query(ctx, `
		SELECT l.product_id, p.name, SUM(l.quantity) AS quantity, SUM(l.subtotal) AS revenue
		FROM sale_lines l
		JOIN sales s ON s.id = l.sale_id
		JOIN products p ON p.id = l.product_id
		WHERE s.status = 'completed' AND s.sold_at >= $1 AND s.sold_at < $2
		GROUP BY l.product_id, p.name
		ORDER BY `+orderBy+`
		LIMIT $3`, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	list := []repository.ProductRankResult{}
	for rows.Next() {
		var row repository.ProductRankResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan product rank: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SalesByUser total vendido por cada usuario, de mayor a menor.
func (r *ReportRepo) SalesByUser(ctx context.Context, from, to time.Time) ([]repository.UserSalesResult, error) {
	start, end := dayBounds(from, to)
	rows, err := r.q.Query(ctx, `
		SELECT s.user_id, u.username, COUNT(*), SUM(s.total) AS total
		FROM sales s
		JOIN users u ON u.id = s.user_id
		WHERE s.status = 'completed' AND s.sold_at >= $1 AND s.sold_at < $2
		GROUP BY s.user_id, u.username
		ORDER BY total DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales by user: %w", err)
	}
	defer rows.Close()

	list := []repository.UserSalesResult{}
	for rows.Next() {
		row := repository.UserSalesResult{Total: decimal.Zero}
		if err := rows.Scan(&row.UserID, &row.Username, &row.Count, &row.Total); err != nil {
			return nil, fmt.Errorf("scan user sales: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
