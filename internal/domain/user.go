package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for authentication.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("access denied for this role")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Role gates access to the admin and staff panels.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User represents a portal account. Accounts are created out-of-band by the
// seed command; there is no signup endpoint. PasswordHash is never serialized.
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

// PasswordHasher handles password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenClaims is the identity a verified session token asserts.
type TokenClaims struct {
	UserID int64
	Role   Role
}

// TokenIssuer issues signed session tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns its claims. The role
// embedded at issuance is trusted for the token lifetime; the user record is
// not consulted again.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// AuthService defines the login business logic.
type AuthService interface {
	Login(ctx context.Context, email, password string, claimedRole Role) (token string, user *User, err error)
}
