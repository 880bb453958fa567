package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

// AuditSink abstracts the async audit pipeline (queue.Dispatcher). Enqueue
// must not block the login path beyond channel buffering.
type AuditSink interface {
	Enqueue(e domain.AuditEvent)
}

type bootstrapService struct {
	sessions ports.SessionProvider
	identity ports.IdentityService
	audit    AuditSink
	log      zerolog.Logger
}

// NewBootstrapService returns the handshake orchestrator.
func NewBootstrapService(sessions ports.SessionProvider, identity ports.IdentityService, audit AuditSink, log zerolog.Logger) ports.BootstrapService {
	return &bootstrapService{sessions: sessions, identity: identity, audit: audit, log: log}
}

// Start establishes the anonymous session and consults the resolver. A
// surviving binding is the "remember me" shortcut: the terminal opens as
// BoundLoggedIn without any login flow. Idempotent across reloads.
func (s *bootstrapService) Start(ctx context.Context, priorToken string) (*ports.BootstrapResult, error) {
	handle, err := s.sessions.CreateOrResume(ctx, priorToken)
	if err != nil {
		s.log.Error().Err(err).Msg("bootstrap: could not establish anonymous session")
		return nil, domain.ErrSessionUnavailable
	}

	identity, err := s.identity.Resolve(ctx, handle.SessionUserID)
	if err != nil {
		return nil, fmt.Errorf("bootstrap start: %w", err)
	}

	result := &ports.BootstrapResult{State: ports.StateAnonymousOnly, Session: handle}
	if identity != nil {
		result.State = ports.StateBoundLoggedIn
		result.Identity = identity
	}
	return result, nil
}

// Login runs the explicit handshake: verify → bind → resolve. The binder is
// only ever called after a true verification in this same flow; trust comes
// from that sequencing, not from a re-check inside Bind.
func (s *bootstrapService) Login(ctx context.Context, sessionUserID, employeeID, pin string) (*ports.BootstrapResult, error) {
	ok, err := s.identity.VerifyPIN(ctx, employeeID, pin)
	if err != nil {
		// "Could not check" is not "wrong PIN": surface the unavailable kind.
		return nil, err
	}
	if !ok {
		s.emit(domain.AuditEvent{
			SessionUserID: sessionUserID,
			Kind:          domain.AuditLoginFailed,
			At:            time.Now().UTC(),
		})
		return nil, domain.ErrInvalidCredentials
	}

	outcome, err := s.identity.Bind(ctx, sessionUserID, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrBindingDenied) {
			return nil, err
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if outcome == domain.BindCreated {
		s.emit(domain.AuditEvent{
			SessionUserID: sessionUserID,
			EmployeeID:    employeeID,
			Kind:          domain.AuditBound,
			At:            time.Now().UTC(),
		})
	}

	identity, err := s.identity.Resolve(ctx, sessionUserID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if identity == nil {
		// Bound target filtered out between verify and resolve (deactivated,
		// or a first-wins link to an employee no longer readable).
		s.log.Warn().
			Str("session_user_id", sessionUserID).
			Str("employee_id", employeeID).
			Str("bind_outcome", string(outcome)).
			Msg("login: binding present but identity did not resolve")
		return nil, domain.ErrNotAuthenticated
	}

	s.emit(domain.AuditEvent{
		SessionUserID: sessionUserID,
		EmployeeID:    identity.EmployeeID,
		Kind:          domain.AuditLoginSucceeded,
		At:            time.Now().UTC(),
	})

	return &ports.BootstrapResult{
		State:    ports.StateBoundLoggedIn,
		Identity: identity,
	}, nil
}

// Logout invalidates the anonymous session. The binding row survives so the
// same person can rebind a fresh session later; a different person on the
// same device gets a new session user id and the old row stays orphaned.
func (s *bootstrapService) Logout(ctx context.Context, token string) error {
	sessionUserID, lookupErr := s.sessions.Lookup(ctx, token)

	if err := s.sessions.Invalidate(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if lookupErr == nil {
		s.emit(domain.AuditEvent{
			SessionUserID: sessionUserID,
			Kind:          domain.AuditLogout,
			At:            time.Now().UTC(),
		})
	}
	return nil
}

func (s *bootstrapService) emit(e domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Enqueue(e)
	}
}
