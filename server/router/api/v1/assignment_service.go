package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/LuisDeAnda17/concept-backend-sub002/server/internal/errors"
	"github.com/LuisDeAnda17/concept-backend-sub002/server/service/dayindex"
	"github.com/LuisDeAnda17/concept-backend-sub002/store"
)

type createAssignmentRequest struct {
	Group string `json:"group"`
	Name  string `json:"name"`
	Due   string `json:"due"`
}

type moveAssignmentRequest struct {
	Due string `json:"due"`
}

type assignmentResponse struct {
	UID      string `json:"uid"`
	GroupUID string `json:"group"`
	Name     string `json:"name"`
	Due      string `json:"due"`
}

func convertAssignment(assignment *store.Assignment) *assignmentResponse {
	return &assignmentResponse{
		UID:      assignment.UID,
		GroupUID: assignment.GroupUID,
		Name:     assignment.Name,
		Due:      time.Unix(assignment.DueTs, 0).UTC().Format(time.RFC3339),
	}
}

// parseInstant parses an RFC 3339 instant from a request body field.
func parseInstant(raw, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("%s must be a valid RFC 3339 instant", field)
	}
	return t, nil
}

func (s *APIV1Service) createAssignment(c echo.Context) error {
	var body createAssignmentRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	due, err := parseInstant(body.Due, "due")
	if err != nil {
		return errorResponse(c, err)
	}

	assignment, err := s.DayIndex.CreateAssignment(c.Request().Context(), &dayindex.CreateAssignmentRequest{
		GroupUID: body.Group,
		Name:     body.Name,
		Due:      due,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, convertAssignment(assignment))
}

func (s *APIV1Service) getAssignment(c echo.Context) error {
	assignment, err := s.DayIndex.GetAssignment(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertAssignment(assignment))
}

func (s *APIV1Service) bindAssignment(c echo.Context) error {
	if err := s.DayIndex.BindAssignment(c.Request().Context(), ownerKey(c), c.Param("uid")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) unbindAssignment(c echo.Context) error {
	if err := s.DayIndex.UnbindAssignment(c.Request().Context(), ownerKey(c), c.Param("uid")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) moveAssignment(c echo.Context) error {
	var body moveAssignmentRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	due, err := parseInstant(body.Due, "due")
	if err != nil {
		return errorResponse(c, err)
	}

	assignment, err := s.DayIndex.MoveAssignment(c.Request().Context(), ownerKey(c), c.Param("uid"), due)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertAssignment(assignment))
}

func (s *APIV1Service) deleteAssignment(c echo.Context) error {
	if err := s.DayIndex.DeleteAssignment(c.Request().Context(), c.Param("uid")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
