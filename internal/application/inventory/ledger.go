package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// Direcciones de un ajuste manual.
const (
	DirectionEntry = "entry"
	DirectionExit  = "exit"
)

// exitNotePrefix se antepone a la nota de toda salida manual.
const exitNotePrefix = "MANUAL ADJUSTMENT: "

// StockLedger aplica ajustes manuales de stock: entradas incondicionales y salidas
// con UPDATE condicional (stock >= cantidad). Cada ajuste deja un movimiento en la misma tx.
type StockLedger struct {
	txRunner  TxRunner
	movements repository.StockMovementRepository
	products  repository.ProductRepository
	authz     permissionChecker
	log       *logger.Logger
}

// NewStockLedger construye el caso de uso.
func NewStockLedger(
	txRunner TxRunner,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	authz permissionChecker,
	log *logger.Logger,
) *StockLedger {
	return &StockLedger{
		txRunner:  txRunner,
		movements: movements,
		products:  products,
		authz:     authz,
		log:       log.Component("stock_ledger"),
	}
}

// AdjustStockInput entrada de un ajuste manual.
type AdjustStockInput struct {
	ActorID   int64
	ProductID int64
	Quantity  int
	Direction string // entry | exit
	Note      string
}

// AdjustStock aplica el ajuste y devuelve el stock resultante.
// Cantidad <= 0, dirección desconocida o salida sin nota se rechazan antes de tocar la DB.
func (l *StockLedger) AdjustStock(ctx context.Context, in AdjustStockInput) (int, error) {
	if in.Quantity <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	note := strings.TrimSpace(in.Note)
	switch in.Direction {
	case DirectionEntry:
	case DirectionExit:
		if note == "" {
			return 0, domain.Invalid("note", "una salida manual requiere motivo")
		}
		note = exitNotePrefix + note
	default:
		return 0, domain.Invalid("direction", "debe ser entry o exit")
	}
	if !l.authz.HasAny(ctx, in.ActorID, entity.PermAdjustStock, entity.PermManageInventory) {
		return 0, domain.ErrForbidden
	}

	actor := in.ActorID
	txID := uuid.New().String()
	var newStock int

	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err := l.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !product.Active {
			return domain.ErrProductNotFound
		}

		mov := &entity.StockMovement{
			TransactionID: txID,
			ProductID:     in.ProductID,
			Note:          note,
			UserID:        &actor,
			CreatedAt:     time.Now(),
		}
		if in.Direction == DirectionEntry {
			newStock, err = productRepo.IncrementStock(ctx, in.ProductID, in.Quantity)
			mov.Type, mov.Quantity = entity.MovementEntry, in.Quantity
		} else {
			// La comprobación de stock ocurre dentro del UPDATE condicional
			newStock, err = productRepo.DecrementStock(ctx, in.ProductID, in.Quantity)
			mov.Type, mov.Quantity = entity.MovementExit, -in.Quantity
			var se *domain.StockError
			if errors.As(err, &se) {
				se.Available = product.Stock
			}
		}
		if err != nil {
			return err
		}
		mov.StockAfter = newStock
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		l.log.Warn().Err(err).Int64("product_id", in.ProductID).Str("direction", in.Direction).
			Int("quantity", in.Quantity).Msg("ajuste de stock rechazado")
		return 0, err
	}
	l.log.Info().Int64("product_id", in.ProductID).Str("direction", in.Direction).
		Int("quantity", in.Quantity).Int("stock", newStock).Str("tx", txID).Msg("ajuste de stock aplicado")
	return newStock, nil
}

// ListMovements historial de movimientos de un producto.
func (l *StockLedger) ListMovements(ctx context.Context, actorID, productID int64, page dto.PageRequest) (*dto.StockMovementListResponse, error) {
	if !l.authz.HasAny(ctx, actorID, entity.PermViewInventory, entity.PermManageInventory, entity.PermAdjustStock) {
		return nil, domain.ErrForbidden
	}
	product, err := l.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	page.Normalize(50)
	list, total, err := l.movements.ListByProduct(ctx, productID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			StockAfter:    m.StockAfter,
			Note:          m.Note,
			UserID:        m.UserID,
			SaleID:        m.SaleID,
			CreatedAt:     m.CreatedAt,
		})
	}
	return &dto.StockMovementListResponse{Items: items, Page: dto.NewPageResponse(page.Page, page.Limit, total)}, nil
}
