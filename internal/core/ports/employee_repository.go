package ports

import (
	"context"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

// EmployeeRepository defines persistence operations for employee records.
// The stored PIN hash never crosses the API boundary; it is read here only
// so the verifier can compare it inside the trust boundary.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	// Deactivate flips the active flag off. Bindings to the employee are left
	// in place; resolution filters them out from the next call on.
	Deactivate(ctx context.Context, id string) error
}
