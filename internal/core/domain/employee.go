package domain

import (
	"errors"
	"time"
)

// Employee roles. RoleArtist is the lowest-privilege role and the default
// applied when a joined role field is missing.
const (
	RoleArtist  = "artist"
	RolePiercer = "piercer"
	RoleManager = "manager"
)

var ErrEmployeeNotFound = errors.New("employee not found")
var ErrEmployeeExists = errors.New("employee already exists")

// ErrInvalidCredentials covers every rejected PIN check: nonexistent
// employee, wrong PIN, and inactive employee are indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrVerificationUnavailable means the PIN could not be checked at all.
// It is never collapsed into a plain "wrong PIN" rejection.
var ErrVerificationUnavailable = errors.New("pin verification unavailable")

// ValidRole reports whether r is a known employee role.
func ValidRole(r string) bool {
	switch r {
	case RoleArtist, RolePiercer, RoleManager:
		return true
	}
	return false
}

// Employee models a staff member who can operate a terminal.
// The PIN is stored only as a bcrypt hash and never serialized.
type Employee struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	PINHash     string    `json:"-"`
	Role        string    `json:"role"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
