package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/upk-it/helpdesk/internal/api/dto"
	"github.com/upk-it/helpdesk/internal/auth"
	"github.com/upk-it/helpdesk/internal/domain"
	"github.com/upk-it/helpdesk/internal/service"
	apperrors "github.com/upk-it/helpdesk/pkg/util"
)

// UsersHandler covers admin account management and the resolver listing.
// Role gating happens in the route guards.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.Create(c.UserContext(), service.UserCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Area:     req.Area,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// Update PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.AdminUpdate(c.UserContext(), c.Params("id"), service.UserUpdateInput{
		Name:          req.Name,
		AreaSet:       req.Area.Set,
		Area:          req.Area.Value,
		Role:          req.Role,
		IsActive:      req.IsActive,
		ResetPassword: req.ResetPassword,
		NewPassword:   req.NewPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Delete DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No autenticado")
	}
	if err := h.service.Delete(c.UserContext(), principal.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Resolvers GET /resolvers.
func (h *UsersHandler) Resolvers(c *fiber.Ctx) error {
	users, err := h.service.ListResolvers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ResolverResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.ResolverResponse{
			ID:   user.ID,
			Name: user.Name,
			Role: user.Role,
			Area: user.Area,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Area:      user.Area,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
