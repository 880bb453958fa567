package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

const minPINLength = 4

type employeeService struct {
	repo ports.EmployeeRepository
	log  zerolog.Logger
}

// NewEmployeeService returns an EmployeeService backed by the given
// repository.
func NewEmployeeService(repo ports.EmployeeRepository, log zerolog.Logger) ports.EmployeeService {
	return &employeeService{repo: repo, log: log}
}

// Create registers an employee. The PIN is hashed with bcrypt before the
// record leaves this function; the plaintext is never stored or logged.
func (s *employeeService) Create(ctx context.Context, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		return nil, fmt.Errorf("create employee: display name is required")
	}
	if len(in.PIN) < minPINLength {
		return nil, fmt.Errorf("create employee: pin must be at least %d characters", minPINLength)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleArtist
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("create employee: unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Employee{
		ID:          uuid.NewString(),
		DisplayName: name,
		PINHash:     string(hash),
		Role:        role,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("employee_id", created.ID).Str("role", created.Role).Msg("employee created")
	return created, nil
}

// Deactivate turns the employee off. Existing bindings stay in place;
// resolution filters them out from the next call on, so an open terminal
// session is not retroactively invalidated.
func (s *employeeService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("employee_id", id).Msg("employee deactivated")
	return nil
}
