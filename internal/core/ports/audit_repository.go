package ports

import (
	"context"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	Insert(ctx context.Context, e *domain.AuditEvent) error
}
