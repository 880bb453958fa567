package ports

import (
	"context"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

// IdentityService is the identity-binding core: PIN verification, session
// binding, and identity resolution.
type IdentityService interface {
	// VerifyPIN reports whether pin is the active employee's credential.
	// Nonexistent employee, wrong PIN, and inactive employee all produce a
	// uniform (false, nil). A store failure produces (false,
	// domain.ErrVerificationUnavailable) so the caller can tell "wrong PIN"
	// from "could not check".
	VerifyPIN(ctx context.Context, employeeID, pin string) (bool, error)

	// Bind links the session user to the employee. Callable only after a
	// successful VerifyPIN in the same logical flow; trust is established by
	// caller sequencing, the binder does not re-check the PIN. An existing
	// link makes the call a successful no-op (first bind wins); the outcome
	// reports which case occurred.
	Bind(ctx context.Context, sessionUserID, employeeID string) (domain.BindOutcome, error)

	// Resolve returns the identity bound to the session user, or (nil, nil)
	// when there is no binding or the bound employee is filtered out by
	// access control (deactivated or unreadable). Read-only and stable
	// across repeated calls.
	Resolve(ctx context.Context, sessionUserID string) (*domain.ResolvedIdentity, error)
}
