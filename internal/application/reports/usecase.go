// Package reports contiene los casos de uso de reportes de ventas y el dashboard.
// Solo cuentan ventas completadas; las anuladas quedan fuera de todo total.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

const (
	dateLayout         = "2006-01-02"
	dashboardTopN      = 5
	defaultTopProducts = 10
)

type permissionChecker interface {
	HasAny(ctx context.Context, userID int64, names ...string) bool
}

// ReportUseCase consultas read-only sobre ReportRepository.
type ReportUseCase struct {
	repo  repository.ReportRepository
	authz permissionChecker
	log   *logger.Logger
	now   func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, authz permissionChecker, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{repo: repo, authz: authz, log: log.Component("reports"), now: time.Now}
}

// period convierte el rango YYYY-MM-DD; vacío = hoy.
func (uc *ReportUseCase) period(in dto.ReportRange) (time.Time, time.Time, error) {
	today := uc.now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)
	from, to := today, today
	var err error
	if in.From != "" {
		if from, err = time.ParseInLocation(dateLayout, in.From, time.Local); err != nil {
			return from, to, domain.Invalid("from", "formato YYYY-MM-DD")
		}
	}
	if in.To != "" {
		if to, err = time.ParseInLocation(dateLayout, in.To, time.Local); err != nil {
			return from, to, domain.Invalid("to", "formato YYYY-MM-DD")
		}
	}
	if from.After(to) {
		return from, to, domain.Invalid("from", "posterior a to")
	}
	return from, to, nil
}

// PeriodSummary cantidad, total y promedio de ventas del período con desglose por tipo de pago.
func (uc *ReportUseCase) PeriodSummary(ctx context.Context, actorID int64, in dto.ReportRange) (*dto.SalesSummaryDTO, error) {
	if !uc.authz.HasAny(ctx, actorID, entity.PermGenerateSalesReports) {
		return nil, domain.ErrForbidden
	}
	from, to, err := uc.period(in)
	if err != nil {
		return nil, err
	}
	res, err := uc.repo.PeriodSummary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("reportes: resumen: %w", err)
	}
	return toSummaryDTO(from, to, res), nil
}

// TopProducts los n productos más vendidos por cantidad y por valor (dos consultas en paralelo).
func (uc *ReportUseCase) TopProducts(ctx context.Context, actorID int64, in dto.ReportRange, n int) (*dto.TopProductsDTO, error) {
	if !uc.authz.HasAny(ctx, actorID, entity.PermGenerateSalesReports) {
		return nil, domain.ErrForbidden
	}
	if n < 0 {
		return nil, domain.Invalid("limit", "debe ser mayor que cero")
	}
	if n == 0 {
		n = defaultTopProducts
	}
	from, to, err := uc.period(in)
	if err != nil {
		return nil, err
	}

	type rankResult struct {
		rows []repository.ProductRankResult
		err  error
	}
	qtyCh := make(chan rankResult, 1)
	revCh := make(chan rankResult, 1)
	go func() {
		rows, err := uc.repo.TopProductsByQuantity(ctx, from, to, n)
		qtyCh <- rankResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.TopProductsByRevenue(ctx, from, to, n)
		revCh <- rankResult{rows, err}
	}()
	byQty, byRev := <-qtyCh, <-revCh

	if byQty.err != nil {
		return nil, fmt.Errorf("reportes: top por cantidad: %w", byQty.err)
	}
	if byRev.err != nil {
		return nil, fmt.Errorf("reportes: top por valor: %w", byRev.err)
	}
	return &dto.TopProductsDTO{ByQuantity: toRankDTO(byQty.rows), ByRevenue: toRankDTO(byRev.rows)}, nil
}

// SalesByUser totales por vendedor. Además del permiso de reportes requiere ver el historial completo.
func (uc *ReportUseCase) SalesByUser(ctx context.Context, actorID int64, in dto.ReportRange) ([]dto.UserSalesDTO, error) {
	if !uc.authz.HasAny(ctx, actorID, entity.PermGenerateSalesReports) ||
		!uc.authz.HasAny(ctx, actorID, entity.PermViewAllSalesHistory) {
		return nil, domain.ErrForbidden
	}
	from, to, err := uc.period(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.SalesByUser(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("reportes: ventas por usuario: %w", err)
	}
	out := make([]dto.UserSalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UserSalesDTO{UserID: r.UserID, Username: r.Username, Count: r.Count, Total: r.Total.Round(2)})
	}
	return out, nil
}

// Dashboard resumen de hoy, del mes en curso y top 5 del mes (tres consultas en paralelo).
func (uc *ReportUseCase) Dashboard(ctx context.Context, actorID int64) (*dto.DashboardDTO, error) {
	if !uc.authz.HasAny(ctx, actorID, entity.PermViewSalesDashboard) {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)

	type summaryResult struct {
		res *repository.SalesSummaryResult
		err error
	}
	type topResult struct {
		rows []repository.ProductRankResult
		err  error
	}
	todayCh := make(chan summaryResult, 1)
	monthCh := make(chan summaryResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		res, err := uc.repo.PeriodSummary(ctx, today, today)
		todayCh <- summaryResult{res, err}
	}()
	go func() {
		res, err := uc.repo.PeriodSummary(ctx, monthStart, today)
		monthCh <- summaryResult{res, err}
	}()
	go func() {
		rows, err := uc.repo.TopProductsByQuantity(ctx, monthStart, today, dashboardTopN)
		topCh <- topResult{rows, err}
	}()

	t, m, top := <-todayCh, <-monthCh, <-topCh
	if t.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", t.err)
	}
	if m.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", m.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	return &dto.DashboardDTO{
		Today:       *toSummaryDTO(today, today, t.res),
		Month:       *toSummaryDTO(monthStart, today, m.res),
		TopProducts: toRankDTO(top.rows),
	}, nil
}

func toSummaryDTO(from, to time.Time, r *repository.SalesSummaryResult) *dto.SalesSummaryDTO {
	out := &dto.SalesSummaryDTO{
		From:      from.Format(dateLayout),
		To:        to.Format(dateLayout),
		Count:     r.Count,
		Total:     r.Total.Round(2),
		Average:   r.Average.Round(2),
		ByPayment: make([]dto.PaymentBreakdownDTO, 0, len(r.ByPayment)),
	}
	for _, b := range r.ByPayment {
		out.ByPayment = append(out.ByPayment, dto.PaymentBreakdownDTO{PaymentType: b.PaymentType, Count: b.Count, Total: b.Total.Round(2)})
	}
	return out
}

func toRankDTO(rows []repository.ProductRankResult) []dto.ProductRankDTO {
	out := make([]dto.ProductRankDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductRankDTO{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			Revenue:     r.Revenue.Round(2),
		})
	}
	return out
}
