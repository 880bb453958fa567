package ports

import (
	"context"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

// BindingRepository defines persistence for session-to-employee links.
type BindingRepository interface {
	// InsertIfAbsent attempts to create the unique link. When a link for the
	// same session user already exists the call returns (false, nil) and the
	// stored link is left untouched, even if it targets another employee.
	// The backend's uniqueness constraint is the only arbiter here.
	InsertIfAbsent(ctx context.Context, b *domain.IdentityBinding) (created bool, err error)
	// Find returns the link for a session user, or domain.ErrBindingNotFound.
	Find(ctx context.Context, sessionUserID string) (*domain.IdentityBinding, error)
}
