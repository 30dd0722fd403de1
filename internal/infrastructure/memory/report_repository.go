package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones sobre las ventas completadas en memoria.
type ReportRepo struct {
	s *Store
}

// NewReportRepository construye el repositorio.
func NewReportRepository(s *Store) *ReportRepo {
	return &ReportRepo{s: s}
}

func (r *ReportRepo) completed(from, to time.Time) []entity.Sale {
	var out []entity.Sale
	for _, s := range r.s.sales {
		if s.Status == entity.SaleCompleted && sameOrAfterDay(s.Date, from) && sameOrBeforeDay(s.Date, to) {
			out = append(out, s)
		}
	}
	return out
}

func (r *ReportRepo) PeriodSummary(_ context.Context, from, to time.Time) (*repository.SalesSummaryResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := &repository.SalesSummaryResult{Total: decimal.Zero, Average: decimal.Zero}
	byPay := map[string]*repository.PaymentBreakdown{}
	for _, s := range r.completed(from, to) {
		res.Count++
		res.Total = res.Total.Add(s.Total)
		b, ok := byPay[s.PaymentType]
		if !ok {
			b = &repository.PaymentBreakdown{PaymentType: s.PaymentType, Total: decimal.Zero}
			byPay[s.PaymentType] = b
		}
		b.Count++
		b.Total = b.Total.Add(s.Total)
	}
	if res.Count > 0 {
		res.Average = res.Total.Div(decimal.NewFromInt(int64(res.Count))).Round(2)
	}
	for _, b := range byPay {
		res.ByPayment = append(res.ByPayment, *b)
	}
	sort.Slice(res.ByPayment, func(i, j int) bool { return res.ByPayment[i].PaymentType < res.ByPayment[j].PaymentType })
	return res, nil
}

func (r *ReportRepo) rank(from, to time.Time) []repository.ProductRankResult {
	saleIDs := map[int64]struct{}{}
	for _, s := range r.completed(from, to) {
		saleIDs[s.ID] = struct{}{}
	}
	acc := map[int64]*repository.ProductRankResult{}
	for _, l := range r.s.lines {
		if _, ok := saleIDs[l.SaleID]; !ok {
			continue
		}
		row, ok := acc[l.ProductID]
		if !ok {
			row = &repository.ProductRankResult{ProductID: l.ProductID, ProductName: r.s.products[l.ProductID].Name, Revenue: decimal.Zero}
			acc[l.ProductID] = row
		}
		row.Quantity += l.Quantity
		row.Revenue = row.Revenue.Add(l.Subtotal)
	}
	out := make([]repository.ProductRankResult, 0, len(acc))
	for _, row := range acc {
		out = append(out, *row)
	}
	return out
}

func limitRows(rows []repository.ProductRankResult, limit int) []repository.ProductRankResult {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func (r *ReportRepo) TopProductsByQuantity(_ context.Context, from, to time.Time, limit int) ([]repository.ProductRankResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.rank(from, to)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Quantity == rows[j].Quantity {
			return rows[i].ProductID < rows[j].ProductID
		}
		return rows[i].Quantity > rows[j].Quantity
	})
	return limitRows(rows, limit), nil
}

func (r *ReportRepo) TopProductsByRevenue(_ context.Context, from, to time.Time, limit int) ([]repository.ProductRankResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.rank(from, to)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue.Equal(rows[j].Revenue) {
			return rows[i].ProductID < rows[j].ProductID
		}
		return rows[i].Revenue.GreaterThan(rows[j].Revenue)
	})
	return limitRows(rows, limit), nil
}

func (r *ReportRepo) SalesByUser(_ context.Context, from, to time.Time) ([]repository.UserSalesResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	acc := map[int64]*repository.UserSalesResult{}
	for _, s := range r.completed(from, to) {
		row, ok := acc[s.UserID]
		if !ok {
			row = &repository.UserSalesResult{UserID: s.UserID, Username: r.s.users[s.UserID].Username, Total: decimal.Zero}
			acc[s.UserID] = row
		}
		row.Count++
		row.Total = row.Total.Add(s.Total)
	}
	out := make([]repository.UserSalesResult, 0, len(acc))
	for _, row := range acc {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}
