package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/upk-it/helpdesk/internal/api/dto"
	"github.com/upk-it/helpdesk/internal/auth"
	"github.com/upk-it/helpdesk/internal/service"
	apperrors "github.com/upk-it/helpdesk/pkg/util"
)

// ProfileHandler covers self-service account endpoints.
type ProfileHandler struct {
	service *service.UserService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(userService *service.UserService) *ProfileHandler {
	return &ProfileHandler{service: userService}
}

// Get GET /profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No autenticado")
	}
	user, err := h.service.GetProfile(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Update PATCH /profile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No autenticado")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.UpdateProfile(c.UserContext(), principal.ID, service.ProfileUpdateInput{
		Name:            req.Name,
		AreaSet:         req.Area.Set,
		Area:            req.Area.Value,
		ChangePassword:  req.ChangePassword,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Delete DELETE /profile.
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No autenticado")
	}
	if err := h.service.DeleteProfile(c.UserContext(), principal.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Cuenta eliminada"})
}
