package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// SaleDraft venta ya validada y con precios resueltos, lista para persistir.
type SaleDraft struct {
	UserID         int64
	CustomerName   string
	CustomerID     string
	Total          decimal.Decimal
	AmountReceived *decimal.Decimal
	Change         *decimal.Decimal
	PaymentType    string
	Notes          string
	Lines          []LineDraft
}

// LineDraft línea con precio unitario y subtotal ya calculados.
type LineDraft struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Subtotal  decimal.Decimal
}

// Engine persiste ventas de forma atómica. No valida permisos: eso lo hace SaleUseCase.
type Engine struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewEngine construye el motor de ventas.
func NewEngine(txRunner TxRunner, log *logger.Logger) *Engine {
	return &Engine{txRunner: txRunner, log: log.Component("sale_engine")}
}

// Register inserta cabecera, líneas (en el orden recibido) y descuenta stock con UPDATE condicional.
// Si alguna línea no tiene stock devuelve *domain.StockError y no persiste nada.
func (e *Engine) Register(ctx context.Context, draft SaleDraft) (int64, error) {
	if len(draft.Lines) == 0 {
		return 0, domain.Invalid("lines", "la venta no tiene líneas")
	}
	for _, l := range draft.Lines {
		if l.Quantity <= 0 {
			return 0, domain.ErrInvalidQuantity
		}
	}

	txID := uuid.New().String()
	user := draft.UserID
	var saleID int64

	err := e.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale := &entity.Sale{
			Date:           time.Now(),
			UserID:         draft.UserID,
			CustomerName:   draft.CustomerName,
			CustomerID:     draft.CustomerID,
			Total:          draft.Total,
			AmountReceived: draft.AmountReceived,
			Change:         draft.Change,
			PaymentType:    draft.PaymentType,
			Status:         entity.SaleCompleted,
			Notes:          draft.Notes,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return fmt.Errorf("insertar venta: %w", err)
		}
		saleID = sale.ID

		for _, l := range draft.Lines {
			line := &entity.SaleLine{
				SaleID:    sale.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				Discount:  l.Discount,
				Subtotal:  l.Subtotal,
			}
			if err := saleRepo.AddLine(ctx, line); err != nil {
				return fmt.Errorf("insertar línea: %w", err)
			}
			newStock, err := productRepo.DecrementStock(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return err
			}
			sid := sale.ID
			if err := movRepo.Create(ctx, &entity.StockMovement{
				TransactionID: txID,
				ProductID:     l.ProductID,
				Type:          entity.MovementSale,
				Quantity:      -l.Quantity,
				StockAfter:    newStock,
				UserID:        &user,
				SaleID:        &sid,
				CreatedAt:     sale.Date,
			}); err != nil {
				return fmt.Errorf("registrar movimiento: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		e.log.Warn().Err(err).Int64("user_id", draft.UserID).Int("lines", len(draft.Lines)).Msg("venta revertida")
		return 0, err
	}
	e.log.Info().Int64("sale_id", saleID).Int64("user_id", draft.UserID).
		Str("total", draft.Total.StringFixed(2)).Str("tx", txID).Msg("venta registrada")
	return saleID, nil
}

// Cancel anula una venta completada y repone el stock de cada línea en la misma transacción.
// Solo ventas en estado completed; otro estado → ErrInvalidStatus.
func (e *Engine) Cancel(ctx context.Context, actorID, saleID int64) error {
	txID := uuid.New().String()
	actor := actorID

	err := e.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		ok, err := saleRepo.UpdateStatus(ctx, saleID, entity.SaleCompleted, entity.SaleCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidStatus
		}
		lines, err := saleRepo.Lines(ctx, saleID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			newStock, err := productRepo.IncrementStock(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return fmt.Errorf("reponer producto %d: %w", l.ProductID, err)
			}
			sid := saleID
			if err := movRepo.Create(ctx, &entity.StockMovement{
				TransactionID: txID,
				ProductID:     l.ProductID,
				Type:          entity.MovementSaleCancel,
				Quantity:      l.Quantity,
				StockAfter:    newStock,
				Note:          fmt.Sprintf("anulación venta %d", saleID),
				UserID:        &actor,
				SaleID:        &sid,
				CreatedAt:     time.Now(),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		e.log.Warn().Err(err).Int64("sale_id", saleID).Msg("anulación rechazada")
		return err
	}
	e.log.Info().Int64("sale_id", saleID).Int64("actor_id", actorID).Str("tx", txID).Msg("venta anulada")
	return nil
}
