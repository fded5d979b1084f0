package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the authorisation level of an account.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleStaff  Role = "STAFF"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// ParseRole accepts role names case-insensitively.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// User is a domain entity representing a registered account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsVerified   bool
	Bio          *string
	Phone        *string
	CreatedAt    time.Time
}

// PublicUser is the projection of User that may leave the service.
// It never carries the password hash.
type PublicUser struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	IsVerified bool      `json:"isVerified"`
	Bio        string    `json:"bio"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u User) Public() PublicUser {
	p := PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	return p
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
