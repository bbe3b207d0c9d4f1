package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/LuisDeAnda17/concept-backend-sub002/server/internal/errors"
	"github.com/LuisDeAnda17/concept-backend-sub002/server/service/dayindex"
	"github.com/LuisDeAnda17/concept-backend-sub002/store"
)

type createOfficeHoursRequest struct {
	Group        string `json:"group"`
	Start        string `json:"start"`
	DurationSecs int64  `json:"durationSecs"`
}

type moveOfficeHoursRequest struct {
	Start        string `json:"start"`
	DurationSecs *int64 `json:"durationSecs,omitempty"`
}

type officeHoursResponse struct {
	UID          string `json:"uid"`
	GroupUID     string `json:"group"`
	Start        string `json:"start"`
	DurationSecs int64  `json:"durationSecs"`
}

func convertOfficeHours(officeHours *store.OfficeHours) *officeHoursResponse {
	return &officeHoursResponse{
		UID:          officeHours.UID,
		GroupUID:     officeHours.GroupUID,
		Start:        time.Unix(officeHours.StartTs, 0).UTC().Format(time.RFC3339),
		DurationSecs: officeHours.DurationSecs,
	}
}

func (s *APIV1Service) createOfficeHours(c echo.Context) error {
	var body createOfficeHoursRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	start, err := parseInstant(body.Start, "start")
	if err != nil {
		return errorResponse(c, err)
	}
	if body.DurationSecs < 0 {
		return errorResponse(c, apperrors.InvalidInput("durationSecs must be non-negative"))
	}

	officeHours, err := s.DayIndex.CreateOfficeHours(c.Request().Context(), &dayindex.CreateOfficeHoursRequest{
		GroupUID: body.Group,
		Start:    start,
		Duration: time.Duration(body.DurationSecs) * time.Second,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, convertOfficeHours(officeHours))
}

func (s *APIV1Service) getOfficeHours(c echo.Context) error {
	officeHours, err := s.DayIndex.GetOfficeHours(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertOfficeHours(officeHours))
}

func (s *APIV1Service) bindOfficeHours(c echo.Context) error {
	if err := s.DayIndex.BindOfficeHours(c.Request().Context(), ownerKey(c), c.Param("uid")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) unbindOfficeHours(c echo.Context) error {
	if err := s.DayIndex.UnbindOfficeHours(c.Request().Context(), ownerKey(c), c.Param("uid")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) moveOfficeHours(c echo.Context) error {
	var body moveOfficeHoursRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	start, err := parseInstant(body.Start, "start")
	if err != nil {
		return errorResponse(c, err)
	}

	var duration *time.Duration
	if body.DurationSecs != nil {
		d := time.Duration(*body.DurationSecs) * time.Second
		duration = &d
	}

	officeHours, err := s.DayIndex.MoveOfficeHours(c.Request().Context(), ownerKey(c), c.Param("uid"), start, duration)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertOfficeHours(officeHours))
}

func (s *APIV1Service) deleteOfficeHours(c echo.Context) error {
	if err := s.DayIndex.DeleteOfficeHours(c.Request().Context(), c.Param("uid")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
