package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/upk-it/helpdesk/internal/auth"
	"github.com/upk-it/helpdesk/internal/domain"
	"github.com/upk-it/helpdesk/internal/repository"
	apperrors "github.com/upk-it/helpdesk/pkg/util"
)

// UserService covers admin account management and self-service profile
// edits. Role checks for the admin surface live in the route guards.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// List returns all accounts, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ListResolvers returns resolver and admin accounts for assignment
// dropdowns, ordered by name.
func (s *UserService) ListResolvers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListByRoles(ctx, domain.RoleResolver, domain.RoleAdmin)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// UserCreateInput describes an admin-created account.
type UserCreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Area     *string
}

// Create registers an account with a unique email and hashed password.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, apperrors.NewValidationError("Faltan campos obligatorios", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("Rol inválido", nil)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewValidationError("Ya existe un usuario con ese correo", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	area := input.Area
	if area != nil && strings.TrimSpace(*area) == "" {
		area = nil
	}
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Area:         area,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UserUpdateInput describes a partial admin edit. AreaSet distinguishes
// clearing the area from leaving it alone.
type UserUpdateInput struct {
	Name          *string
	AreaSet       bool
	Area          *string
	Role          *domain.Role
	IsActive      *bool
	ResetPassword bool
	NewPassword   string
}

// AdminUpdate applies a partial edit, optionally resetting the password.
func (s *UserService) AdminUpdate(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	changed := input.Name != nil || input.AreaSet || input.Role != nil || input.IsActive != nil || input.ResetPassword
	if !changed {
		return nil, apperrors.NewValidationError("No hay cambios para aplicar", nil)
	}
	if input.Role != nil && !domain.ValidRole(*input.Role) {
		return nil, apperrors.NewValidationError("Rol inválido", nil)
	}
	if input.ResetPassword && len(input.NewPassword) < auth.MinPasswordLength {
		return nil, apperrors.NewValidationError("La nueva contraseña debe tener al menos 6 caracteres", nil)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.AreaSet {
		if input.Area != nil && strings.TrimSpace(*input.Area) != "" {
			user.Area = input.Area
		} else {
			user.Area = nil
		}
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.ResetPassword {
		hash, err := auth.HashPassword(input.NewPassword, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete hard-deletes an account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return apperrors.NewValidationError("No puedes eliminar tu propio usuario", nil)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Usuario", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

// GetProfile returns the caller's own account.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Usuario", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ProfileUpdateInput describes a self-service edit.
type ProfileUpdateInput struct {
	Name            *string
	AreaSet         bool
	Area            *string
	ChangePassword  bool
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile lets any account edit its own name/area and change its
// password after verifying the current one.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.ChangePassword {
		if input.CurrentPassword == "" || input.NewPassword == "" {
			return nil, apperrors.NewValidationError("Debes enviar contraseña actual y nueva", nil)
		}
		if err := auth.ComparePassword(user.PasswordHash, input.CurrentPassword); err != nil {
			return nil, apperrors.NewValidationError("La contraseña actual no es correcta", nil)
		}
		if len(input.NewPassword) < auth.MinPasswordLength {
			return nil, apperrors.NewValidationError("La nueva contraseña debe tener al menos 6 caracteres", nil)
		}
		hash, err := auth.HashPassword(input.NewPassword, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.AreaSet {
		if input.Area != nil && strings.TrimSpace(*input.Area) != "" {
			user.Area = input.Area
		} else {
			user.Area = nil
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteProfile hard-deletes the caller's own account.
func (s *UserService) DeleteProfile(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Usuario", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}
