package ports

import (
	"context"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

// CreateCustomerInput carries the data needed to register a customer.
type CreateCustomerInput struct {
	Name  string
	Phone string
	Email string
	Notes string
}

// ListCustomersResult is a page of customers plus the total match count.
type ListCustomersResult struct {
	Customers []*domain.Customer
	Total     int64
	Page      int
	Limit     int
}

// CustomerService exposes terminal operations on customers. Every call is
// made on behalf of a resolved identity; the terminal never reaches the
// store without one.
type CustomerService interface {
	Create(ctx context.Context, actor *domain.ResolvedIdentity, in CreateCustomerInput) (*domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, filter ListCustomersFilter) (*ListCustomersResult, error)
}
