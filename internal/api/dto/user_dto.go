package dto

import (
	"time"

	"github.com/upk-it/helpdesk/internal/domain"
)

// UserResponse is the account shape returned to clients. The password hash
// never leaves the service.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Area      *string     `json:"area"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ResolverResponse is the reduced shape for assignment dropdowns.
type ResolverResponse struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
	Area *string     `json:"area"`
}

// CreateUserRequest payload for admin account creation.
type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
	Area     *string     `json:"area"`
}

// UpdateUserRequest payload for admin partial edits.
type UpdateUserRequest struct {
	Name          *string        `json:"name"`
	Area          OptionalString `json:"area"`
	Role          *domain.Role   `json:"role"`
	IsActive      *bool          `json:"isActive"`
	ResetPassword bool           `json:"resetPassword"`
	NewPassword   string         `json:"newPassword"`
}

// UpdateProfileRequest payload for self-service edits.
type UpdateProfileRequest struct {
	Name            *string        `json:"name"`
	Area            OptionalString `json:"area"`
	ChangePassword  bool           `json:"changePassword"`
	CurrentPassword string         `json:"currentPassword"`
	NewPassword     string         `json:"newPassword"`
}
