package ports

import (
	"context"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

// CreateEmployeeInput carries the data needed to register an employee.
// The PIN arrives in plaintext exactly once and is hashed before storage.
type CreateEmployeeInput struct {
	DisplayName string
	PIN         string
	Role        string
}

// EmployeeService exposes administrative operations on employees. Routes
// using it sit behind the manager role gate.
type EmployeeService interface {
	Create(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error)
	Deactivate(ctx context.Context, id string) error
}
