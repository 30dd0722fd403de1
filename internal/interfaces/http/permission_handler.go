package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/authz"
)

// PermissionHandler catálogo y defaults por rol.
type PermissionHandler struct {
	authz *authz.Resolver
}

func NewPermissionHandler(resolver *authz.Resolver) *PermissionHandler {
	return &PermissionHandler{authz: resolver}
}

// Catalog GET /api/permissions
func (h *PermissionHandler) Catalog(c *fiber.Ctx) error {
	out, err := h.authz.ListCatalog(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignToRole POST /api/roles/:role/permissions/:name
func (h *PermissionHandler) AssignToRole(c *fiber.Ctx) error {
	if err := h.authz.AssignToRole(c.UserContext(), GetUserID(c), c.Params("role"), c.Params("name")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RevokeFromRole DELETE /api/roles/:role/permissions/:name
func (h *PermissionHandler) RevokeFromRole(c *fiber.Ctx) error {
	if err := h.authz.RevokeFromRole(c.UserContext(), GetUserID(c), c.Params("role"), c.Params("name")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
