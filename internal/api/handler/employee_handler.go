package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

// EmployeeHandler handles administrative employee operations. Routes using
// it sit behind the manager role gate.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

type createEmployeeRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	PIN         string `json:"pin" validate:"required,min=4"`
	Role        string `json:"role,omitempty" validate:"omitempty,oneof=artist piercer manager"`
}

// Create handles POST /v1/employees.
//
// @Summary      Register a new employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee details"
// @Success      201   {object}  domain.Employee
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	emp, err := h.service.Create(c.Request().Context(), ports.CreateEmployeeInput{
		DisplayName: req.DisplayName,
		PIN:         req.PIN,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, emp)
}

// Deactivate handles DELETE /v1/employees/:id.
//
// @Summary      Deactivate an employee
// @Tags         employees
// @Security     BearerAuth
// @Param        id  path  string  true  "Employee id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/employees/{id} [delete]
func (h *EmployeeHandler) Deactivate(c echo.Context) error {
	if err := h.service.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
