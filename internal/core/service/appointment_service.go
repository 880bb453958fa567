package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/api/metrics"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

const defaultDurationMin = 60

type appointmentService struct {
	repo      ports.AppointmentRepository
	customers ports.CustomerRepository
	log       zerolog.Logger
}

// NewAppointmentService returns an AppointmentService backed by the given
// repositories. The customer repository is consulted on create so an
// appointment can never reference a customer that does not exist.
func NewAppointmentService(repo ports.AppointmentRepository, customers ports.CustomerRepository, log zerolog.Logger) ports.AppointmentService {
	return &appointmentService{repo: repo, customers: customers, log: log}
}

func (s *appointmentService) Create(ctx context.Context, actor *domain.ResolvedIdentity, in ports.CreateAppointmentInput) (*domain.AppointmentSession, error) {
	if _, err := s.customers.FindByID(ctx, in.CustomerID); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	now := time.Now().UTC()
	scheduledAt := in.ScheduledAt
	if scheduledAt.IsZero() {
		scheduledAt = defaultSlot(now)
	}
	duration := in.DurationMin
	if duration <= 0 {
		duration = defaultDurationMin
	}

	appt := &domain.AppointmentSession{
		ID:          uuid.NewString(),
		CustomerID:  in.CustomerID,
		EmployeeID:  actor.EmployeeID,
		ScheduledAt: scheduledAt.UTC(),
		DurationMin: duration,
		ServiceDesc: in.ServiceDesc,
		Notes:       in.Notes,
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		s.log.Error().Err(err).Msg("failed to create appointment")
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	metrics.AppointmentsCreatedTotal.Inc()
	s.log.Info().
		Str("appointment_id", appt.ID).
		Str("customer_id", appt.CustomerID).
		Str("employee_id", appt.EmployeeID).
		Time("scheduled_at", appt.ScheduledAt).
		Msg("appointment created")
	return appt, nil
}

func (s *appointmentService) Get(ctx context.Context, id string) (*domain.AppointmentSession, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *appointmentService) List(ctx context.Context, filter ports.ListAppointmentsFilter) (*ports.ListAppointmentsResult, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)

	appts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return &ports.ListAppointmentsResult{
		Appointments: appts,
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}, nil
}

// defaultSlot is today's standard opening slot: 10:00 UTC.
func defaultSlot(from time.Time) time.Time {
	return time.Date(from.Year(), from.Month(), from.Day(), 10, 0, 0, 0, time.UTC)
}
