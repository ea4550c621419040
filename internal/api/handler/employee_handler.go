package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
	"github.com/devtrack/bug-tracking-system/internal/core/ports"
)

// EmployeeHandler handles the Administrator-only account surface. The role
// gate is the RequireRoles middleware on the route group.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List handles GET /api/employees.
//
// @Summary      List all employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   employeeResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.service.ListEmployees(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/employees/:id.
//
// @Summary      Get an employee by id
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Employee id"
// @Success      200  {object}  employeeResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	e, err := h.service.GetEmployee(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(e))
}

// Create handles POST /api/employees.
//
// @Summary      Create an employee account
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      employeeRequest  true  "Account details"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}

	created, err := h.service.CreateEmployee(c.Request().Context(), toEmployeeInput(req))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/employees/%d", created.ID))
	return c.JSON(http.StatusCreated, toEmployeeResponse(created))
}

// Update handles PUT /api/employees/:id.
//
// @Summary      Update an employee account
// @Tags         employees
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int              true  "Employee id"
// @Param        body  body  employeeRequest  true  "Account details"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateEmployee(c.Request().Context(), id, toEmployeeInput(req)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/employees/:id.
//
// @Summary      Delete an employee account
// @Description  Refused with 400 when the account is the last Administrator
// @Description  or is still referenced by bugs.
// @Tags         employees
// @Security     BearerAuth
// @Param        id  path  int  true  "Employee id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteEmployee(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toEmployeeInput(req employeeRequest) ports.EmployeeInput {
	return ports.EmployeeInput{
		ID:        req.EmployeeID,
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
}

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		EmployeeID: e.ID,
		Username:   e.Username,
		Email:      e.Email,
		Role:       e.Role,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		CreatedAt:  e.CreatedAt.UTC(),
		UpdatedAt:  e.UpdatedAt.UTC(),
	}
}
