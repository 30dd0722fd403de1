package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
)

// ProductHandler catálogo de productos, ajustes de stock y movimientos.
type ProductHandler struct {
	uc     *inventory.ProductUseCase
	ledger *inventory.StockLedger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *inventory.ProductUseCase, ledger *inventory.StockLedger) *ProductHandler {
	return &ProductHandler{uc: uc, ledger: ledger}
}

// Create POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/products?name=&category_id=&supplier_id=&low_stock=&include_inactive=&page=&limit=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByBarcode GET /api/products/barcode/:code
func (h *ProductHandler) GetByBarcode(c *fiber.Ctx) error {
	out, err := h.uc.GetByBarcode(c.UserContext(), GetUserID(c), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate POST /api/products/:id/deactivate
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Deactivate(c.UserContext(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdjustStock POST /api/products/:id/stock
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	stock, err := h.ledger.AdjustStock(c.UserContext(), inventory.AdjustStockInput{
		ActorID:   GetUserID(c),
		ProductID: id,
		Quantity:  in.Quantity,
		Direction: in.Direction,
		Note:      in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{ProductID: id, Stock: stock})
}

// Movements GET /api/products/:id/movements?page=&limit=
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 0)}
	out, err := h.ledger.ListMovements(c.UserContext(), GetUserID(c), id, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
