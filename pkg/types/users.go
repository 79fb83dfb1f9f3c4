package types

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the coarse authorization level of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole normalizes raw into a Role. Empty input defaults to RoleUser.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, raw)
	}
}

// UserStatus tracks whether an account can be used.
type UserStatus string

const (
	StatusActive      UserStatus = "ACTIVE"
	StatusInactive    UserStatus = "INACTIVE"
	StatusDeactivated UserStatus = "DEACTIVATED"
	StatusSuspended   UserStatus = "SUSPENDED"
)

// ParseUserStatus normalizes raw into a UserStatus. Empty input defaults to StatusActive.
func ParseUserStatus(raw string) (UserStatus, error) {
	switch UserStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	case StatusDeactivated:
		return StatusDeactivated, nil
	case StatusSuspended:
		return StatusSuspended, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, raw)
	}
}

// User is the directory record. PasswordHash never leaves the service.
type User struct {
	ID            uuid.UUID
	Username      string
	Email         string
	PasswordHash  string
	Name          string
	Role          Role
	Status        UserStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeactivatedAt *time.Time
	DeactivatedBy uuid.UUID
	ContactCount  int
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserView is the public representation of a user.
type UserView struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          Role       `json:"role"`
	Status        UserStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeactivatedAt *time.Time `json:"deactivatedAt"`
	DeactivatedBy *uuid.UUID `json:"deactivatedBy"`
	ContactCount  int        `json:"contactCount"`
}

// View strips credentials from the user.
func (u User) View() UserView {
	view := UserView{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		Status:        u.Status,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
		DeactivatedAt: u.DeactivatedAt,
		ContactCount:  u.ContactCount,
	}
	if view.Status == "" {
		view.Status = StatusActive
	}
	if u.DeactivatedBy != uuid.Nil {
		by := u.DeactivatedBy
		view.DeactivatedBy = &by
	}
	return view
}

// UserPatch carries optional user fields. Nil pointers leave values untouched.
type UserPatch struct {
	Username *string
	Email    *string
	Name     *string
	Role     *Role
	Status   *UserStatus
}

// UserFilter narrows directory listings.
type UserFilter struct {
	Role Role
}

// UserStats summarizes the directory by role.
type UserStats struct {
	TotalUsers    int `json:"totalUsers"`
	AdminUsers    int `json:"adminUsers"`
	NonAdminUsers int `json:"nonAdminUsers"`
}

// UserRepository persists directory records.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) (*User, error)
	UpdateUser(ctx context.Context, user User) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]User, error)
	PageUsers(ctx context.Context, filter UserFilter, page PageSpec) (Page[User], error)
	UserStats(ctx context.Context) (UserStats, error)
}

// UserDirectory is the narrow lookup surface the audit trail depends on.
type UserDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	MustGet(ctx context.Context, id uuid.UUID) (*User, error)
}
