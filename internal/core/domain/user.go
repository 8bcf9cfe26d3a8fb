package domain

import (
	"errors"
	"time"
)

// Role classifies what a user is allowed to do.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether the role is one of the known members.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Status represents the lifecycle state of an account.
// The only transition is ACTIVE → BLOCKED; there is no unblock.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusBlocked Status = "BLOCKED"
)

var ErrEmailExists = errors.New("user with this email already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid password")
var ErrAccountBlocked = errors.New("account is blocked")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidInput = errors.New("invalid input")

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	BirthDate    time.Time `json:"birthDate"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity carries the claims of an authenticated caller for the duration
// of a single request. It is never persisted.
type Identity struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanActOn reports whether the identity may operate on the target user:
// admins on anyone, everyone else only on themselves.
func (i Identity) CanActOn(targetID string) bool {
	return i.IsAdmin() || i.UserID == targetID
}
