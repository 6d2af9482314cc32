package domain

import "time"

// Role enumerates account roles.
type Role string

const (
	RoleRequester Role = "requester"
	RoleResolver  Role = "resolver"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether the value is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleRequester, RoleResolver, RoleAdmin:
		return true
	}
	return false
}

// User is an account that can sign in. Requesters open tickets, resolvers
// work the queue, admins manage accounts and metrics.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Area         *string
	IsActive     bool
	CreatedAt    time.Time
}

// ActorName returns the display name used for audit entries: name, then
// email, then "Sistema".
func (u *User) ActorName() string {
	if u == nil {
		return "Sistema"
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Sistema"
}
