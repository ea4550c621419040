package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/devtrack/bug-tracking-system/internal/core/ports"
)

// BugHandler handles HTTP requests for bug operations. Authorization beyond
// "is authenticated" lives in the service's decision engine, not here.
type BugHandler struct {
	service ports.BugService
}

func NewBugHandler(service ports.BugService) *BugHandler {
	return &BugHandler{service: service}
}

// List handles GET /api/bugs.
//
// @Summary      List all bugs
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bugResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/bugs [get]
func (h *BugHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	details, err := h.service.ListBugs(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	out := make([]bugResponse, 0, len(details))
	for i := range details {
		out = append(out, toBugResponse(&details[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/bugs/:id.
//
// @Summary      Get a bug by id
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Bug id"
// @Success      200  {object}  bugResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bugs/{id} [get]
func (h *BugHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetBug(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBugResponse(detail))
}

// Create handles POST /api/bugs.
//
// @Summary      Report a new bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bugRequest  true  "Bug details"
// @Success      201   {object}  bugResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/bugs [post]
func (h *BugHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req bugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.service.CreateBug(c.Request().Context(), caller, toBugInput(req))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/bugs/%d", detail.ID))
	return c.JSON(http.StatusCreated, toBugResponse(detail))
}

// Update handles PUT /api/bugs/:id.
//
// @Summary      Update a bug
// @Description  Applies the role-based transition rules: administrators may
// @Description  change anything, testers may edit their own still-modifiable
// @Description  bugs, programmers may take/release assignment and move status.
// @Tags         bugs
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int         true  "Bug id"
// @Param        body  body  bugRequest  true  "Desired bug state"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/bugs/{id} [put]
func (h *BugHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req bugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateBug(c.Request().Context(), caller, id, toBugInput(req)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/bugs/:id.
//
// @Summary      Delete a bug
// @Tags         bugs
// @Security     BearerAuth
// @Param        id  path  int  true  "Bug id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bugs/{id} [delete]
func (h *BugHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteBug(c.Request().Context(), caller, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
