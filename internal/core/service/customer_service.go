package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/api/metrics"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

const maxPageSize = 100

type customerService struct {
	repo ports.CustomerRepository
	log  zerolog.Logger
}

// NewCustomerService returns a CustomerService backed by the given repository.
func NewCustomerService(repo ports.CustomerRepository, log zerolog.Logger) ports.CustomerService {
	return &customerService{repo: repo, log: log}
}

func (s *customerService) Create(ctx context.Context, actor *domain.ResolvedIdentity, in ports.CreateCustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("create customer: name is required")
	}

	customer := &domain.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Notes:     in.Notes,
		CreatedBy: actor.EmployeeID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		s.log.Error().Err(err).Msg("failed to create customer")
		return nil, fmt.Errorf("create customer: %w", err)
	}

	metrics.CustomersCreatedTotal.Inc()
	s.log.Info().Str("customer_id", customer.ID).Str("created_by", actor.EmployeeID).Msg("customer created")
	return customer, nil
}

func (s *customerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, filter ports.ListCustomersFilter) (*ports.ListCustomersResult, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)

	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	return &ports.ListCustomersResult{
		Customers: customers,
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}, nil
}

// clampPage normalizes paging inputs: 1-based page, limit capped at
// maxPageSize with a sane default.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
