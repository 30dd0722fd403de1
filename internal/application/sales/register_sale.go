package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/pricing"
)

// RegisterSale valida el carrito, resuelve precios (detal o mayorista), calcula el vuelto
// y delega en Engine.Register. La comprobación definitiva de stock ocurre dentro de la transacción.
func (uc *SaleUseCase) RegisterSale(ctx context.Context, actorID int64, in dto.RegisterSaleRequest) (*dto.RegisterSaleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !uc.authz.HasAny(ctx, actorID, entity.PermMakeSales) {
		return nil, domain.ErrForbidden
	}

	lines := make([]LineDraft, 0, len(in.Lines))
	out := make([]dto.SaleLineResponse, 0, len(in.Lines))
	requested := make(map[int64]int, len(in.Lines))
	sum := decimal.Zero
	discounted := false

	for i, l := range in.Lines {
		product, err := uc.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, fmt.Errorf("línea %d: producto %d: %w", i+1, l.ProductID, domain.ErrProductNotFound)
		}
		// Pre-chequeo con el acumulado del carrito; el UPDATE condicional es el que decide
		requested[l.ProductID] += l.Quantity
		if product.Stock < requested[l.ProductID] {
			return nil, &domain.StockError{ProductID: product.ID, Requested: requested[l.ProductID], Available: product.Stock}
		}

		unit, wholesale := pricing.ResolveUnitPrice(product, l.Quantity)
		gross := pricing.LineSubtotal(l.Quantity, unit, decimal.Zero)
		if l.Discount.GreaterThan(gross) {
			return nil, domain.Invalid(fmt.Sprintf("lines[%d].discount", i), "el descuento supera el subtotal")
		}
		if l.Discount.IsPositive() {
			discounted = true
		}
		subtotal := pricing.Money(pricing.LineSubtotal(l.Quantity, unit, l.Discount))
		sum = sum.Add(subtotal)

		lines = append(lines, LineDraft{
			ProductID: product.ID,
			Quantity:  l.Quantity,
			UnitPrice: unit,
			Discount:  l.Discount,
			Subtotal:  subtotal,
		})
		out = append(out, dto.SaleLineResponse{
			ProductID:   product.ID,
			ProductName: product.Name,
			Barcode:     product.Barcode,
			Quantity:    l.Quantity,
			UnitPrice:   unit,
			Discount:    l.Discount,
			Subtotal:    subtotal,
			Wholesale:   wholesale,
		})
	}

	total := sum
	if in.Total != nil {
		t := pricing.Money(*in.Total)
		if t.GreaterThan(sum) {
			return nil, domain.Invalid("total", "no puede superar la suma de las líneas")
		}
		if t.LessThan(sum) {
			discounted = true
		}
		total = t
	}
	if !total.IsPositive() {
		return nil, domain.Invalid("total", "debe ser mayor que cero")
	}
	if discounted && !uc.authz.HasAny(ctx, actorID, entity.PermApplySaleDiscounts) {
		return nil, domain.ErrForbidden
	}

	draft := SaleDraft{
		UserID:       actorID,
		CustomerName: strings.TrimSpace(in.CustomerName),
		CustomerID:   strings.TrimSpace(in.CustomerID),
		Total:        total,
		PaymentType:  in.PaymentType,
		Notes:        in.Notes,
		Lines:        lines,
	}
	if in.PaymentType == entity.PaymentCash {
		if in.AmountReceived == nil {
			return nil, domain.Invalid("amount_received", "requerido para pagos en efectivo")
		}
		received := pricing.Money(*in.AmountReceived)
		change, ok := pricing.Change(received, total)
		if !ok {
			return nil, domain.ErrInsufficientPayment
		}
		draft.AmountReceived, draft.Change = &received, &change
	}

	saleID, err := uc.engine.Register(ctx, draft)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterSaleResponse{SaleID: saleID, Total: total, Change: draft.Change, Lines: out}, nil
}

// CancelSale anula una venta completada reponiendo su stock. Requiere cancel_sales.
func (uc *SaleUseCase) CancelSale(ctx context.Context, actorID, saleID int64) error {
	if !uc.authz.HasAny(ctx, actorID, entity.PermCancelSales) {
		return domain.ErrForbidden
	}
	return uc.engine.Cancel(ctx, actorID, saleID)
}
