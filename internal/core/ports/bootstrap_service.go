package ports

import (
	"context"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

// TerminalState is the bootstrap state machine position.
type TerminalState string

const (
	StateUnauthenticated TerminalState = "unauthenticated"
	StateAnonymousOnly   TerminalState = "anonymous_only"
	StateBoundLoggedIn   TerminalState = "bound_logged_in"
)

// BootstrapResult reports where the terminal landed after a bootstrap step.
// Identity is nil unless State is StateBoundLoggedIn.
type BootstrapResult struct {
	State    TerminalState          `json:"state"`
	Session  SessionHandle          `json:"session"`
	Identity *domain.ResolvedIdentity `json:"identity,omitempty"`
}

// BootstrapService orchestrates the session handshake:
// Unauthenticated → AnonymousOnly → BoundLoggedIn.
type BootstrapService interface {
	// Start establishes (or resumes) the anonymous session and attempts
	// resolution. A surviving binding skips the login flow entirely and
	// lands in StateBoundLoggedIn; otherwise StateAnonymousOnly.
	Start(ctx context.Context, priorToken string) (*BootstrapResult, error)
	// Login runs verify → bind → resolve for an already-established session.
	// A rejected PIN returns domain.ErrInvalidCredentials and leaves the
	// state machine in StateAnonymousOnly; retries are unlimited.
	Login(ctx context.Context, sessionUserID, employeeID, pin string) (*BootstrapResult, error)
	// Logout invalidates the anonymous session. The identity binding is
	// deliberately left behind: a fresh session gets a fresh session user id
	// and the old row is orphaned, not reused.
	Logout(ctx context.Context, token string) error
}
