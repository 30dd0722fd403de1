package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/reports"
)

// ReportHandler reportes de ventas y dashboard.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func reportRange(c *fiber.Ctx) dto.ReportRange {
	return dto.ReportRange{From: c.Query("from"), To: c.Query("to")}
}

// Summary GET /api/reports/summary?from=&to=
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.PeriodSummary(c.UserContext(), GetUserID(c), reportRange(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts GET /api/reports/top-products?from=&to=&n=
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.UserContext(), GetUserID(c), reportRange(c), c.QueryInt("n", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByUser GET /api/reports/by-user?from=&to=
func (h *ReportHandler) ByUser(c *fiber.Ctx) error {
	out, err := h.uc.SalesByUser(c.UserContext(), GetUserID(c), reportRange(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard GET /api/reports/dashboard
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
