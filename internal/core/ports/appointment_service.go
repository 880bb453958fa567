package ports

import (
	"context"
	"time"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

// CreateAppointmentInput carries the data needed to schedule an appointment.
// A zero ScheduledAt defaults to today's standard opening slot.
type CreateAppointmentInput struct {
	CustomerID  string
	ScheduledAt time.Time
	DurationMin int
	ServiceDesc string
	Notes       string
}

// ListAppointmentsResult is a page of appointments plus the total count.
type ListAppointmentsResult struct {
	Appointments []*domain.AppointmentSession
	Total        int64
	Page         int
	Limit        int
}

// AppointmentService exposes terminal operations on appointment sessions.
type AppointmentService interface {
	Create(ctx context.Context, actor *domain.ResolvedIdentity, in CreateAppointmentInput) (*domain.AppointmentSession, error)
	Get(ctx context.Context, id string) (*domain.AppointmentSession, error)
	List(ctx context.Context, filter ListAppointmentsFilter) (*ListAppointmentsResult, error)
}
