package domain

import (
	"errors"
	"time"
)

// UnknownDisplayName is the sentinel used when a bound employee's display
// name cannot be read at resolution time.
const UnknownDisplayName = "(unknown)"

var ErrBindingNotFound = errors.New("identity binding not found")

// ErrBindingDenied is an access-control rejection on bind or read. It is a
// configuration problem requiring administrative intervention, not a retry.
var ErrBindingDenied = errors.New("identity binding denied")

var ErrSessionUnavailable = errors.New("anonymous session unavailable")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")

// BindOutcome describes how a bind attempt concluded. All three outcomes are
// success: the stored link is first-bind-wins and a conflicting second bind
// is a silent no-op. The distinction exists for logging and metrics only.
type BindOutcome string

const (
	BindCreated             BindOutcome = "created"
	BindAlreadyBound        BindOutcome = "already_bound"
	BindAlreadyBoundToOther BindOutcome = "already_bound_other"
)

// IdentityBinding is the durable one-to-one link from an anonymous session
// user to an employee. Unique on SessionUserID; never updated, only deleted
// by administrative action outside this service.
type IdentityBinding struct {
	SessionUserID string    `json:"session_user_id"`
	EmployeeID    string    `json:"employee_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// ResolvedIdentity is derived by joining a binding with its employee at
// resolution time. It is never persisted.
type ResolvedIdentity struct {
	EmployeeID  string `json:"employee_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}
