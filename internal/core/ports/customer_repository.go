package ports

import (
	"context"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

// ListCustomersFilter carries query parameters for listing customers.
type ListCustomersFilter struct {
	Search string // optional: case-insensitive name prefix
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by the service)
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	// List returns a page of customers matching filter and the total count.
	List(ctx context.Context, filter ListCustomersFilter) ([]*domain.Customer, int64, error)
}
