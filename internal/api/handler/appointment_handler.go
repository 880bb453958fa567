package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointment sessions.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type createAppointmentRequest struct {
	CustomerID  string `json:"customer_id" validate:"required"`
	ScheduledAt string `json:"scheduled_at,omitempty"` // RFC 3339; empty = today's default slot
	DurationMin int    `json:"duration_min,omitempty" validate:"omitempty,min=15,max=480"`
	ServiceDesc string `json:"service_desc,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type listAppointmentsResponse struct {
	Appointments []*domain.AppointmentSession `json:"appointments"`
	Total        int64                        `json:"total"`
	Page         int                          `json:"page"`
	Limit        int                          `json:"limit"`
}

// Create handles POST /v1/appointments.
//
// @Summary      Schedule an appointment session
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAppointmentRequest  true  "Appointment details"
// @Success      201   {object}  domain.AppointmentSession
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	var scheduledAt time.Time
	if req.ScheduledAt != "" {
		scheduledAt, err = time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "scheduled_at must be RFC 3339")
		}
	}

	appt, err := h.service.Create(c.Request().Context(), actor, ports.CreateAppointmentInput{
		CustomerID:  req.CustomerID,
		ScheduledAt: scheduledAt,
		DurationMin: req.DurationMin,
		ServiceDesc: req.ServiceDesc,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, appt)
}

// Get handles GET /v1/appointments/:id.
//
// @Summary      Get an appointment by id
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment id"
// @Success      200  {object}  domain.AppointmentSession
// @Failure      404  {object}  map[string]string
// @Router       /v1/appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	appt, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appt)
}

// List handles GET /v1/appointments.
//
// @Summary      List appointment sessions
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        day          query     string  false  "Calendar day (YYYY-MM-DD, UTC)"
// @Param        employee_id  query     string  false  "Scope to one employee"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200          {object}  listAppointmentsResponse
// @Router       /v1/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	var day time.Time
	if raw := c.QueryParam("day"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "day must be YYYY-MM-DD")
		}
		day = parsed
	}

	result, err := h.service.List(c.Request().Context(), ports.ListAppointmentsFilter{
		Day:        day,
		EmployeeID: c.QueryParam("employee_id"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listAppointmentsResponse{
		Appointments: result.Appointments,
		Total:        result.Total,
		Page:         result.Page,
		Limit:        result.Limit,
	})
}
