package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/api/metrics"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

type identityService struct {
	employees ports.EmployeeRepository
	bindings  ports.BindingRepository
	log       zerolog.Logger
}

// NewIdentityService returns an IdentityService backed by the given
// repositories.
func NewIdentityService(employees ports.EmployeeRepository, bindings ports.BindingRepository, log zerolog.Logger) ports.IdentityService {
	return &identityService{employees: employees, bindings: bindings, log: log}
}

// VerifyPIN checks the PIN against the stored bcrypt hash. The comparison
// runs entirely on this side of the trust boundary; only the boolean leaves.
// Nonexistent, wrong-PIN, and inactive cases are indistinguishable to the
// caller. The PIN itself is never logged.
func (s *identityService) VerifyPIN(ctx context.Context, employeeID, pin string) (bool, error) {
	if employeeID == "" || pin == "" {
		metrics.PINChecksTotal.WithLabelValues("rejected").Inc()
		return false, nil
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			metrics.PINChecksTotal.WithLabelValues("rejected").Inc()
			return false, nil
		}
		s.log.Error().Err(err).Msg("pin check: employee lookup failed")
		metrics.PINChecksTotal.WithLabelValues("unavailable").Inc()
		return false, domain.ErrVerificationUnavailable
	}

	if !emp.Active {
		metrics.PINChecksTotal.WithLabelValues("rejected").Inc()
		return false, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(emp.PINHash), []byte(pin)) != nil {
		metrics.PINChecksTotal.WithLabelValues("rejected").Inc()
		return false, nil
	}

	metrics.PINChecksTotal.WithLabelValues("ok").Inc()
	return true, nil
}

// Bind creates the unique session→employee link. A conflicting insert means
// a link already exists; first bind wins and the call succeeds without
// touching the stored row.
func (s *identityService) Bind(ctx context.Context, sessionUserID, employeeID string) (domain.BindOutcome, error) {
	created, err := s.bindings.InsertIfAbsent(ctx, &domain.IdentityBinding{
		SessionUserID: sessionUserID,
		EmployeeID:    employeeID,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrBindingDenied) {
			return "", err
		}
		return "", fmt.Errorf("bind identity: %w", err)
	}

	outcome := domain.BindCreated
	if !created {
		outcome = domain.BindAlreadyBound
		existing, findErr := s.bindings.Find(ctx, sessionUserID)
		if findErr == nil && existing.EmployeeID != employeeID {
			outcome = domain.BindAlreadyBoundToOther
			s.log.Warn().
				Str("session_user_id", sessionUserID).
				Str("requested_employee_id", employeeID).
				Str("bound_employee_id", existing.EmployeeID).
				Msg("bind requested for a session already bound to another employee; existing link kept")
		}
	}

	metrics.BindingsTotal.WithLabelValues(string(outcome)).Inc()
	return outcome, nil
}

// Resolve joins the binding with its employee. Missing binding and filtered
// employee both resolve to no identity, not an error. Missing display
// metadata falls back to defaults so resolution never fails on cosmetics.
func (s *identityService) Resolve(ctx context.Context, sessionUserID string) (*domain.ResolvedIdentity, error) {
	b, err := s.bindings.Find(ctx, sessionUserID)
	if err != nil {
		if errors.Is(err, domain.ErrBindingNotFound) {
			metrics.ResolutionsTotal.WithLabelValues("none").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	emp, err := s.employees.FindByID(ctx, b.EmployeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			// Bound employee filtered out (deleted or unreadable): no identity.
			metrics.ResolutionsTotal.WithLabelValues("none").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	if !emp.Active {
		metrics.ResolutionsTotal.WithLabelValues("none").Inc()
		return nil, nil
	}

	identity := &domain.ResolvedIdentity{
		EmployeeID:  b.EmployeeID,
		DisplayName: emp.DisplayName,
		Role:        emp.Role,
	}
	if identity.DisplayName == "" {
		identity.DisplayName = domain.UnknownDisplayName
	}
	if identity.Role == "" {
		identity.Role = domain.RoleArtist
	}

	metrics.ResolutionsTotal.WithLabelValues("identity").Inc()
	return identity, nil
}
