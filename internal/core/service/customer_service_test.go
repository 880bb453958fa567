package service

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

type stubCustomerRepo struct {
	customers map[string]*domain.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[string]*domain.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	clone := *c
	r.customers[c.ID] = &clone
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) List(_ context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	matched := make([]*domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if filter.Search != "" && !strings.HasPrefix(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

var testActor = &domain.ResolvedIdentity{EmployeeID: "Luna-id", DisplayName: "Luna", Role: domain.RoleArtist}

func TestCustomerService_Create(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, zerolog.Nop())

	customer, err := svc.Create(context.Background(), testActor, ports.CreateCustomerInput{
		Name:  "  Iris Vale ",
		Phone: "555-0141",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if customer.ID == "" {
		t.Fatalf("expected generated id")
	}
	if customer.Name != "Iris Vale" {
		t.Fatalf("expected trimmed name, got %q", customer.Name)
	}
	if customer.CreatedBy != "Luna-id" {
		t.Fatalf("expected acting employee stamped, got %q", customer.CreatedBy)
	}
}

func TestCustomerService_Create_EmptyName(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), testActor, ports.CreateCustomerInput{Name: "   "}); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestCustomerService_List_SearchPrefix(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, zerolog.Nop())

	for _, name := range []string{"Iris Vale", "Ivan Reyes", "Noor Haddad"} {
		if _, err := svc.Create(context.Background(), testActor, ports.CreateCustomerInput{Name: name}); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	result, err := svc.List(context.Background(), ports.ListCustomersFilter{Search: "i"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", result.Total)
	}
	for _, c := range result.Customers {
		if !strings.HasPrefix(strings.ToLower(c.Name), "i") {
			t.Fatalf("unexpected match: %s", c.Name)
		}
	}
}

func TestCustomerService_List_ClampsPaging(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, zerolog.Nop())

	result, err := svc.List(context.Background(), ports.ListCustomersFilter{Page: -3, Limit: 5000})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if result.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", result.Page)
	}
	if result.Limit != maxPageSize {
		t.Fatalf("expected limit capped at %d, got %d", maxPageSize, result.Limit)
	}
}
