package domain

import (
	"errors"
	"time"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentSession is a scheduled slot between a customer and an employee.
type AppointmentSession struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	EmployeeID  string    `json:"employee_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	DurationMin int       `json:"duration_min"`
	ServiceDesc string    `json:"service_desc,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
