package model

import (
	"time"
)

type UserRole string

const (
	RoleClient       UserRole = "client"
	RoleVeterinarian UserRole = "veterinarian"
	RoleReceptionist UserRole = "receptionist"
	RoleAdmin        UserRole = "admin"
)

// IsStaff reports whether the role grants clinic-personnel access.
// Clients only ever see their own records.
func (r UserRole) IsStaff() bool {
	return r == RoleVeterinarian || r == RoleReceptionist || r == RoleAdmin
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleClient, RoleVeterinarian, RoleReceptionist, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID               int64      `db:"id" json:"id"`
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	FirstName        string     `db:"first_name" json:"first_name"`
	LastName         string     `db:"last_name" json:"last_name"`
	Role             UserRole   `db:"role" json:"role"`
	Active           bool       `db:"active" json:"active"`
	LoginAttempts    int        `db:"login_attempts" json:"-"`
	LastLoginAttempt *time.Time `db:"last_login_attempt" json:"-"`
	LastLoginAt      *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         *User  `json:"user"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	Active    *bool   `json:"active"`
}

// RefreshToken is a stored refresh credential; logout deletes it,
// expiry is enforced on lookup.
type RefreshToken struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
