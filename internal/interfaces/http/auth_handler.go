package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/authz"
	"github.com/jhoicas/pos-api/internal/application/dto"
)

// AuthHandler login, recuperación de cuenta y operaciones sobre la propia cuenta.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	authz *authz.Resolver
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, resolver *authz.Resolver) *AuthHandler {
	return &AuthHandler{uc: uc, authz: resolver}
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecoveryQuestions POST /api/auth/recovery/questions
func (h *AuthHandler) RecoveryQuestions(c *fiber.Ctx) error {
	var in dto.RecoveryQuestionsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SecurityQuestions(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResetPassword POST /api/auth/recovery/reset
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.ResetPasswordWithAnswers(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MyPermissions GET /api/me/permissions
func (h *AuthHandler) MyPermissions(c *fiber.Ctx) error {
	userID := GetUserID(c)
	perms, err := h.authz.EffectivePermissions(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MyPermissionsResponse{UserID: userID, Permissions: perms.Sorted()})
}

// ChangePassword PUT /api/me/password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.ChangeOwnPassword(c.UserContext(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateSecurityQuestions PUT /api/me/security-questions
func (h *AuthHandler) UpdateSecurityQuestions(c *fiber.Ctx) error {
	var in dto.SecurityQuestionsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.UpdateOwnSecurityQuestions(c.UserContext(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
