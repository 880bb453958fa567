package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

var errStoreDown = errors.New("store down")

type stubEmployeeRepo struct {
	employees map[string]*domain.Employee
	failing   bool
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	if r.failing {
		return nil, errStoreDown
	}
	for _, existing := range r.employees {
		if existing.DisplayName == e.DisplayName {
			return nil, domain.ErrEmployeeExists
		}
	}
	clone := *e
	r.employees[e.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	if r.failing {
		return nil, errStoreDown
	}
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) Deactivate(_ context.Context, id string) error {
	if r.failing {
		return errStoreDown
	}
	e, ok := r.employees[id]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	e.Active = false
	return nil
}

type stubBindingRepo struct {
	bindings map[string]*domain.IdentityBinding
	failing  bool
}

func newStubBindingRepo() *stubBindingRepo {
	return &stubBindingRepo{bindings: make(map[string]*domain.IdentityBinding)}
}

func (r *stubBindingRepo) InsertIfAbsent(_ context.Context, b *domain.IdentityBinding) (bool, error) {
	if r.failing {
		return false, errStoreDown
	}
	if _, exists := r.bindings[b.SessionUserID]; exists {
		return false, nil
	}
	clone := *b
	r.bindings[b.SessionUserID] = &clone
	return true, nil
}

func (r *stubBindingRepo) Find(_ context.Context, sessionUserID string) (*domain.IdentityBinding, error) {
	if r.failing {
		return nil, errStoreDown
	}
	b, ok := r.bindings[sessionUserID]
	if !ok {
		return nil, domain.ErrBindingNotFound
	}
	clone := *b
	return &clone, nil
}

func mustHash(t *testing.T, pin string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	return string(hash)
}

func seedLuna(t *testing.T, repo *stubEmployeeRepo) *domain.Employee {
	t.Helper()
	luna := &domain.Employee{
		ID:          "Luna-id",
		DisplayName: "Luna",
		PINHash:     mustHash(t, "4471"),
		Role:        domain.RoleArtist,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	repo.employees[luna.ID] = luna
	return luna
}

func TestIdentityService_VerifyPIN_Success(t *testing.T) {
	employees := newStubEmployeeRepo()
	seedLuna(t, employees)
	svc := NewIdentityService(employees, newStubBindingRepo(), zerolog.Nop())

	ok, err := svc.VerifyPIN(context.Background(), "Luna-id", "4471")
	if err != nil {
		t.Fatalf("VerifyPIN error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for correct pin")
	}
}

func TestIdentityService_VerifyPIN_UniformFalse(t *testing.T) {
	employees := newStubEmployeeRepo()
	seedLuna(t, employees)
	employees.employees["Max-id"] = &domain.Employee{
		ID:          "Max-id",
		DisplayName: "Max",
		PINHash:     mustHash(t, "9002"),
		Role:        domain.RoleArtist,
		Active:      false,
	}
	svc := NewIdentityService(employees, newStubBindingRepo(), zerolog.Nop())

	cases := []struct {
		name       string
		employeeID string
		pin        string
	}{
		{"nonexistent employee", "ghost-id", "4471"},
		{"wrong pin on active employee", "Luna-id", "0000"},
		{"correct pin on inactive employee", "Max-id", "9002"},
		{"empty pin", "Luna-id", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := svc.VerifyPIN(context.Background(), tc.employeeID, tc.pin)
			if err != nil {
				t.Fatalf("expected plain false, got error: %v", err)
			}
			if ok {
				t.Fatalf("expected false")
			}
		})
	}
}

func TestIdentityService_VerifyPIN_Unavailable(t *testing.T) {
	employees := newStubEmployeeRepo()
	employees.failing = true
	svc := NewIdentityService(employees, newStubBindingRepo(), zerolog.Nop())

	ok, err := svc.VerifyPIN(context.Background(), "Luna-id", "4471")
	if ok {
		t.Fatalf("expected false on store failure")
	}
	if !errors.Is(err, domain.ErrVerificationUnavailable) {
		t.Fatalf("expected ErrVerificationUnavailable, got %v", err)
	}
}

func TestIdentityService_Bind_Creates(t *testing.T) {
	bindings := newStubBindingRepo()
	svc := NewIdentityService(newStubEmployeeRepo(), bindings, zerolog.Nop())

	outcome, err := svc.Bind(context.Background(), "su-1", "Luna-id")
	if err != nil {
		t.Fatalf("Bind error: %v", err)
	}
	if outcome != domain.BindCreated {
		t.Fatalf("expected BindCreated, got %s", outcome)
	}
	if b := bindings.bindings["su-1"]; b == nil || b.EmployeeID != "Luna-id" {
		t.Fatalf("binding not stored: %+v", b)
	}
}

func TestIdentityService_Bind_Idempotent(t *testing.T) {
	bindings := newStubBindingRepo()
	svc := NewIdentityService(newStubEmployeeRepo(), bindings, zerolog.Nop())

	if _, err := svc.Bind(context.Background(), "su-1", "Luna-id"); err != nil {
		t.Fatalf("first bind: %v", err)
	}
	outcome, err := svc.Bind(context.Background(), "su-1", "Luna-id")
	if err != nil {
		t.Fatalf("second bind must not error: %v", err)
	}
	if outcome != domain.BindAlreadyBound {
		t.Fatalf("expected BindAlreadyBound, got %s", outcome)
	}
	if len(bindings.bindings) != 1 {
		t.Fatalf("expected exactly one binding, got %d", len(bindings.bindings))
	}
}

func TestIdentityService_Bind_FirstWins(t *testing.T) {
	bindings := newStubBindingRepo()
	svc := NewIdentityService(newStubEmployeeRepo(), bindings, zerolog.Nop())

	if _, err := svc.Bind(context.Background(), "su-1", "Luna-id"); err != nil {
		t.Fatalf("first bind: %v", err)
	}
	outcome, err := svc.Bind(context.Background(), "su-1", "Max-id")
	if err != nil {
		t.Fatalf("conflicting bind must not error: %v", err)
	}
	if outcome != domain.BindAlreadyBoundToOther {
		t.Fatalf("expected BindAlreadyBoundToOther, got %s", outcome)
	}
	if got := bindings.bindings["su-1"].EmployeeID; got != "Luna-id" {
		t.Fatalf("existing link must stay untouched, got %s", got)
	}
}

func TestIdentityService_Resolve_NoBinding(t *testing.T) {
	svc := NewIdentityService(newStubEmployeeRepo(), newStubBindingRepo(), zerolog.Nop())

	identity, err := svc.Resolve(context.Background(), "su-unknown")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if identity != nil {
		t.Fatalf("expected no identity, got %+v", identity)
	}
}

func TestIdentityService_Resolve_Success_Stable(t *testing.T) {
	employees := newStubEmployeeRepo()
	seedLuna(t, employees)
	bindings := newStubBindingRepo()
	svc := NewIdentityService(employees, bindings, zerolog.Nop())

	if _, err := svc.Bind(context.Background(), "su-1", "Luna-id"); err != nil {
		t.Fatalf("bind: %v", err)
	}

	first, err := svc.Resolve(context.Background(), "su-1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if first == nil {
		t.Fatalf("expected identity")
	}
	if first.EmployeeID != "Luna-id" || first.DisplayName != "Luna" || first.Role != domain.RoleArtist {
		t.Fatalf("unexpected identity: %+v", first)
	}

	second, err := svc.Resolve(context.Background(), "su-1")
	if err != nil {
		t.Fatalf("second Resolve error: %v", err)
	}
	if *first != *second {
		t.Fatalf("resolution not stable: %+v vs %+v", first, second)
	}
}

func TestIdentityService_Resolve_DeactivatedEmployee(t *testing.T) {
	employees := newStubEmployeeRepo()
	luna := seedLuna(t, employees)
	bindings := newStubBindingRepo()
	svc := NewIdentityService(employees, bindings, zerolog.Nop())

	if _, err := svc.Bind(context.Background(), "su-1", luna.ID); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if id, _ := svc.Resolve(context.Background(), "su-1"); id == nil {
		t.Fatalf("expected identity before deactivation")
	}

	luna.Active = false

	identity, err := svc.Resolve(context.Background(), "su-1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if identity != nil {
		t.Fatalf("expected no identity after deactivation, got %+v", identity)
	}
}

func TestIdentityService_Resolve_Defaults(t *testing.T) {
	employees := newStubEmployeeRepo()
	employees.employees["bare-id"] = &domain.Employee{
		ID:     "bare-id",
		Active: true,
	}
	bindings := newStubBindingRepo()
	svc := NewIdentityService(employees, bindings, zerolog.Nop())

	if _, err := svc.Bind(context.Background(), "su-1", "bare-id"); err != nil {
		t.Fatalf("bind: %v", err)
	}

	identity, err := svc.Resolve(context.Background(), "su-1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if identity == nil {
		t.Fatalf("resolution must not fail on missing display metadata")
	}
	if identity.DisplayName != domain.UnknownDisplayName {
		t.Fatalf("expected sentinel display name, got %q", identity.DisplayName)
	}
	if identity.Role != domain.RoleArtist {
		t.Fatalf("expected lowest-privilege default role, got %q", identity.Role)
	}
}
