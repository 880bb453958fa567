package ports

import (
	"context"
	"time"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

// ListAppointmentsFilter carries query parameters for listing appointments.
type ListAppointmentsFilter struct {
	Day        time.Time // optional: scheduled within this calendar day (UTC)
	EmployeeID string    // optional: scoped to one employee
	Page       int       // 1-based
	Limit      int       // max rows per page (capped at 100 by the service)
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.AppointmentSession) error
	FindByID(ctx context.Context, id string) (*domain.AppointmentSession, error)
	List(ctx context.Context, filter ListAppointmentsFilter) ([]*domain.AppointmentSession, int64, error)
}
