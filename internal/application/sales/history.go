package sales

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// Alcances del historial.
const (
	ScopeAll = "all"
	ScopeOwn = "own"
)

const dateLayout = "2006-01-02"

// scope devuelve el alcance del actor o ErrForbidden si no puede ver historial.
func (uc *SaleUseCase) scope(ctx context.Context, actorID int64) (string, error) {
	if uc.authz.HasAny(ctx, actorID, entity.PermViewAllSalesHistory) {
		return ScopeAll, nil
	}
	if uc.authz.HasAny(ctx, actorID, entity.PermViewOwnSalesHistory) {
		return ScopeOwn, nil
	}
	return "", domain.ErrForbidden
}

// ListSales historial paginado, de la más reciente a la más antigua.
// Con solo view_own_sales_history el filtro de usuario se fuerza al actor.
func (uc *SaleUseCase) ListSales(ctx context.Context, actorID int64, in dto.SaleFilter) (*dto.SaleListResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	scope, err := uc.scope(ctx, actorID)
	if err != nil {
		return nil, err
	}
	in.Normalize(uc.pageSize)

	filter := entity.SaleFilter{
		Customer: in.Customer,
		Limit:    in.Limit,
		Offset:   in.Offset(),
	}
	if filter.From, err = parseDay("from", in.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseDay("to", in.To); err != nil {
		return nil, err
	}
	switch {
	case scope == ScopeOwn:
		if in.UserID != 0 && in.UserID != actorID {
			uc.log.Debug().Int64("actor_id", actorID).Int64("requested_user_id", in.UserID).
				Msg("filtro de usuario reemplazado por el propio")
		}
		own := actorID
		filter.UserID = &own
	case in.UserID > 0:
		filter.UserID = &in.UserID
	}

	list, total, err := uc.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSaleResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.NewPageResponse(in.Page, in.Limit, total),
		Scope: scope,
	}, nil
}

// GetSale cabecera + líneas. Un actor con alcance propio no puede leer ventas ajenas.
func (uc *SaleUseCase) GetSale(ctx context.Context, actorID, saleID int64) (*dto.SaleResponse, error) {
	scope, err := uc.scope(ctx, actorID)
	if err != nil {
		return nil, err
	}
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	if scope == ScopeOwn && sale.UserID != actorID {
		uc.log.Warn().Int64("actor_id", actorID).Int64("sale_id", saleID).Msg("lectura de venta ajena denegada")
		return nil, domain.ErrForbidden
	}
	lines, err := uc.sales.Lines(ctx, saleID)
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(sale, lines)
	return &out, nil
}

func parseDay(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, domain.Invalid(field, "formato YYYY-MM-DD")
	}
	return &t, nil
}

func toSaleResponse(s *entity.Sale, lines []*entity.SaleLine) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:             s.ID,
		Date:           s.Date,
		UserID:         s.UserID,
		Username:       s.Username,
		CustomerName:   s.CustomerName,
		CustomerID:     s.CustomerID,
		Total:          s.Total,
		AmountReceived: s.AmountReceived,
		Change:         s.Change,
		PaymentType:    s.PaymentType,
		Status:         s.Status,
		Notes:          s.Notes,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Barcode:     l.Barcode,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			Subtotal:    l.Subtotal,
		})
	}
	return out
}
