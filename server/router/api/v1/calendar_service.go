package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/LuisDeAnda17/concept-backend-sub002/server/internal/errors"
	"github.com/LuisDeAnda17/concept-backend-sub002/server/timezone"
	"github.com/LuisDeAnda17/concept-backend-sub002/store"
)

type calendarResponse struct {
	UID       string `json:"uid"`
	Owner     string `json:"owner"`
	CreatedAt string `json:"createdAt"`
}

func convertCalendar(calendar *store.Calendar) *calendarResponse {
	return &calendarResponse{
		UID:       calendar.UID,
		Owner:     calendar.Owner,
		CreatedAt: time.Unix(calendar.CreatedTs, 0).UTC().Format(time.RFC3339),
	}
}

func (s *APIV1Service) createCalendar(c echo.Context) error {
	calendar, err := s.DayIndex.CreateCalendar(c.Request().Context(), ownerKey(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, convertCalendar(calendar))
}

func (s *APIV1Service) getMyCalendar(c echo.Context) error {
	calendar, err := s.DayIndex.GetCalendarByOwner(c.Request().Context(), ownerKey(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertCalendar(calendar))
}

// dayParam parses the :date path parameter, accepting either a bare day
// key (2006-01-02) or a full RFC 3339 instant.
func dayParam(c echo.Context) (time.Time, error) {
	raw := c.Param("date")
	if key, err := timezone.ParseDayKey(raw); err == nil {
		return key.Time(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid date %q", raw)
	}
	return t, nil
}

func (s *APIV1Service) queryDayAssignments(c echo.Context) error {
	at, err := dayParam(c)
	if err != nil {
		return errorResponse(c, err)
	}
	assignments, err := s.DayIndex.QueryDayAssignments(c.Request().Context(), c.Param("calendarUID"), at)
	if err != nil {
		return errorResponse(c, err)
	}

	response := make([]*assignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		response = append(response, convertAssignment(assignment))
	}
	return c.JSON(http.StatusOK, response)
}

func (s *APIV1Service) queryDayOfficeHours(c echo.Context) error {
	at, err := dayParam(c)
	if err != nil {
		return errorResponse(c, err)
	}
	blocks, err := s.DayIndex.QueryDayOfficeHours(c.Request().Context(), c.Param("calendarUID"), at)
	if err != nil {
		return errorResponse(c, err)
	}

	response := make([]*officeHoursResponse, 0, len(blocks))
	for _, block := range blocks {
		response = append(response, convertOfficeHours(block))
	}
	return c.JSON(http.StatusOK, response)
}
