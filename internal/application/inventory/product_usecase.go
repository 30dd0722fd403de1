package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

const defaultUnitMeasure = "unit"

// ProductUseCase casos de uso CRUD para productos. Stock solo cambia vía StockLedger o ventas.
type ProductUseCase struct {
	txRunner   TxRunner
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	authz      permissionChecker
	log        *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner TxRunner,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	authz permissionChecker,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:   txRunner,
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		authz:      authz,
		log:        log.Component("products"),
	}
}

func (uc *ProductUseCase) canRead(ctx context.Context, actorID int64) bool {
	return uc.authz.HasAny(ctx, actorID, entity.PermViewInventory, entity.PermManageInventory, entity.PermMakeSales)
}

func (uc *ProductUseCase) canSeeCost(ctx context.Context, actorID int64) bool {
	return uc.authz.HasAny(ctx, actorID, entity.PermViewCostPrice, entity.PermManageInventory)
}

// Create crea un producto. El stock inicial queda registrado como movimiento de entrada.
func (uc *ProductUseCase) Create(ctx context.Context, actorID int64, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if (in.WholesalePrice == nil) != (in.WholesaleMinQty == nil) {
		return nil, domain.Invalid("wholesale_price", "precio mayorista y cantidad mínima van juntos")
	}
	if !uc.authz.HasAny(ctx, actorID, entity.PermManageInventory) {
		return nil, domain.ErrForbidden
	}
	if err := uc.checkRefs(ctx, in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}
	unit := strings.TrimSpace(in.UnitMeasure)
	if unit == "" {
		unit = defaultUnitMeasure
	}
	product := &entity.Product{
		Barcode:         strings.TrimSpace(in.Barcode),
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		SupplierID:      in.SupplierID,
		CostPrice:       in.CostPrice,
		RetailPrice:     in.RetailPrice,
		WholesalePrice:  in.WholesalePrice,
		WholesaleMinQty: in.WholesaleMinQty,
		Stock:           in.Stock,
		MinStock:        in.MinStock,
		UnitMeasure:     unit,
		Active:          true,
	}
	actor := actorID
	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if product.Stock == 0 {
			return nil
		}
		return movRepo.Create(ctx, &entity.StockMovement{
			TransactionID: uuid.New().String(),
			ProductID:     product.ID,
			Type:          entity.MovementEntry,
			Quantity:      product.Stock,
			StockAfter:    product.Stock,
			Note:          "initial stock",
			UserID:        &actor,
			CreatedAt:     time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("product_id", product.ID).Int64("actor_id", actorID).Msg("producto creado")
	return uc.get(ctx, product.ID, true)
}

// GetByID obtiene un producto por ID (incluye inactivos).
func (uc *ProductUseCase) GetByID(ctx context.Context, actorID, id int64) (*dto.ProductResponse, error) {
	if !uc.canRead(ctx, actorID) {
		return nil, domain.ErrForbidden
	}
	return uc.get(ctx, id, uc.canSeeCost(ctx, actorID))
}

// GetByBarcode busca por código de barras.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, actorID int64, barcode string) (*dto.ProductResponse, error) {
	if !uc.canRead(ctx, actorID) {
		return nil, domain.ErrForbidden
	}
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.Invalid("barcode", "requerido")
	}
	p, err := uc.products.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(p, uc.canSeeCost(ctx, actorID)), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, actorID int64, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !uc.canRead(ctx, actorID) {
		return nil, domain.ErrForbidden
	}
	in.Normalize(50)
	filter := entity.ProductFilter{
		Name:            strings.TrimSpace(in.Name),
		LowStockOnly:    in.LowStock,
		IncludeInactive: in.IncludeInactive,
		Limit:           in.Limit,
		Offset:          in.Offset(),
	}
	if in.CategoryID > 0 {
		filter.CategoryID = &in.CategoryID
	}
	if in.SupplierID > 0 {
		filter.SupplierID = &in.SupplierID
	}
	list, total, err := uc.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	showCost := uc.canSeeCost(ctx, actorID)
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, showCost))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.NewPageResponse(in.Page, in.Limit, total)}, nil
}

// Update actualiza los campos presentes. No permite modificar Stock.
func (uc *ProductUseCase) Update(ctx context.Context, actorID, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !uc.authz.HasAny(ctx, actorID, entity.PermManageInventory) {
		return nil, domain.ErrForbidden
	}
	current, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrProductNotFound
	}
	if !in.ClearWholesale {
		price, qty := current.WholesalePrice, current.WholesaleMinQty
		if in.WholesalePrice != nil {
			price = in.WholesalePrice
		}
		if in.WholesaleMinQty != nil {
			qty = in.WholesaleMinQty
		}
		if (price == nil) != (qty == nil) {
			return nil, domain.Invalid("wholesale_price", "precio mayorista y cantidad mínima van juntos")
		}
	}
	var catRef, supRef *int64
	if !in.ClearCategory {
		catRef = in.CategoryID
	}
	if !in.ClearSupplier {
		supRef = in.SupplierID
	}
	if err := uc.checkRefs(ctx, catRef, supRef); err != nil {
		return nil, err
	}

	patch := entity.ProductPatch{
		Barcode:         trimmed(in.Barcode),
		Name:            trimmed(in.Name),
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		ClearCategory:   in.ClearCategory,
		SupplierID:      in.SupplierID,
		ClearSupplier:   in.ClearSupplier,
		CostPrice:       in.CostPrice,
		RetailPrice:     in.RetailPrice,
		WholesalePrice:  in.WholesalePrice,
		WholesaleMinQty: in.WholesaleMinQty,
		ClearWholesale:  in.ClearWholesale,
		MinStock:        in.MinStock,
		UnitMeasure:     trimmed(in.UnitMeasure),
		Active:          in.Active,
	}
	if err := uc.products.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return uc.get(ctx, id, true)
}

// Deactivate baja lógica: el producto deja de venderse pero conserva su historial.
func (uc *ProductUseCase) Deactivate(ctx context.Context, actorID, id int64) error {
	if !uc.authz.HasAny(ctx, actorID, entity.PermManageInventory) {
		return domain.ErrForbidden
	}
	inactive := false
	return uc.products.Update(ctx, id, entity.ProductPatch{Active: &inactive})
}

// Delete borrado físico. Falla con ErrProductInUse si el producto aparece en alguna venta.
func (uc *ProductUseCase) Delete(ctx context.Context, actorID, id int64) error {
	if !uc.authz.HasAny(ctx, actorID, entity.PermManageInventory) {
		return domain.ErrForbidden
	}
	if err := uc.products.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("product_id", id).Int64("actor_id", actorID).Msg("producto eliminado")
	return nil
}

func (uc *ProductUseCase) get(ctx context.Context, id int64, showCost bool) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(p, showCost), nil
}

func (uc *ProductUseCase) checkRefs(ctx context.Context, categoryID, supplierID *int64) error {
	if categoryID != nil {
		c, err := uc.categories.GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.Invalid("category_id", "la categoría no existe")
		}
	}
	if supplierID != nil {
		s, err := uc.suppliers.GetByID(ctx, *supplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.Invalid("supplier_id", "el proveedor no existe")
		}
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func toProductResponse(p *entity.Product, showCost bool) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:              p.ID,
		Barcode:         p.Barcode,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		CategoryName:    p.CategoryName,
		SupplierID:      p.SupplierID,
		SupplierName:    p.SupplierName,
		RetailPrice:     p.RetailPrice,
		WholesalePrice:  p.WholesalePrice,
		WholesaleMinQty: p.WholesaleMinQty,
		Stock:           p.Stock,
		MinStock:        p.MinStock,
		LowStock:        p.LowStock(),
		UnitMeasure:     p.UnitMeasure,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if showCost {
		cost := p.CostPrice
		out.CostPrice = &cost
	}
	return out
}
