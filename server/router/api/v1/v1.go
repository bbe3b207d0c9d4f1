// Package v1 is the HTTP glue between external callers and the day-index
// operations. Handlers validate and translate; every scheduling decision
// lives in the dayindex service.
package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/LuisDeAnda17/concept-backend-sub002/internal/profile"
	"github.com/LuisDeAnda17/concept-backend-sub002/server/auth"
	apperrors "github.com/LuisDeAnda17/concept-backend-sub002/server/internal/errors"
	"github.com/LuisDeAnda17/concept-backend-sub002/server/internal/observability"
	"github.com/LuisDeAnda17/concept-backend-sub002/server/middleware"
	"github.com/LuisDeAnda17/concept-backend-sub002/server/service/dayindex"
	"github.com/LuisDeAnda17/concept-backend-sub002/store"
)

const ownerContextKey = "owner"

type APIV1Service struct {
	Profile       *profile.Profile
	Store         *store.Store
	DayIndex      dayindex.Service
	Authenticator auth.Authenticator

	rateLimiter *middleware.RateLimiter
}

// NewAPIV1Service creates the v1 API service.
func NewAPIV1Service(profile *profile.Profile, store *store.Store, dayIndex dayindex.Service, authenticator auth.Authenticator) *APIV1Service {
	return &APIV1Service{
		Profile:       profile,
		Store:         store,
		DayIndex:      dayIndex,
		Authenticator: authenticator,
		rateLimiter:   middleware.NewRateLimiter(),
	}
}

// RegisterRoutes registers all v1 routes on the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1", s.authMiddleware, s.requestLogger, s.rateLimiter.Middleware(ownerKey))

	g.POST("/calendars", s.createCalendar)
	g.GET("/calendars/me", s.getMyCalendar)
	g.GET("/calendars/:calendarUID/days/:date/assignments", s.queryDayAssignments)
	g.GET("/calendars/:calendarUID/days/:date/office-hours", s.queryDayOfficeHours)

	g.POST("/assignments", s.createAssignment)
	g.GET("/assignments/:uid", s.getAssignment)
	g.POST("/assignments/:uid/bind", s.bindAssignment)
	g.POST("/assignments/:uid/unbind", s.unbindAssignment)
	g.POST("/assignments/:uid/move", s.moveAssignment)
	g.DELETE("/assignments/:uid", s.deleteAssignment)

	g.POST("/office-hours", s.createOfficeHours)
	g.GET("/office-hours/:uid", s.getOfficeHours)
	g.POST("/office-hours/:uid/bind", s.bindOfficeHours)
	g.POST("/office-hours/:uid/unbind", s.unbindOfficeHours)
	g.POST("/office-hours/:uid/move", s.moveOfficeHours)
	g.DELETE("/office-hours/:uid", s.deleteOfficeHours)
}

// authMiddleware resolves the bearer token to an owner identity and stores
// it on the request context.
func (s *APIV1Service) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token := strings.TrimPrefix(header, "Bearer ")
		owner, err := s.Authenticator.Authenticate(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
		}
		c.Set(ownerContextKey, owner)
		return next(c)
	}
}

func ownerKey(c echo.Context) string {
	owner, _ := c.Get(ownerContextKey).(string)
	return owner
}

// requestLogger attaches a request-scoped logging context and logs every
// request on completion with its outcome and elapsed time.
func (s *APIV1Service) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		operation := c.Request().Method + " " + c.Path()
		reqCtx := observability.NewRequestContext(slog.Default(), operation, ownerKey(c))
		ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)
		c.SetRequest(c.Request().WithContext(ctx))

		err := next(c)
		if err != nil {
			reqCtx.Error("request failed", err,
				slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
			return err
		}
		reqCtx.Info("request completed",
			slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
		return nil
	}
}

// errorResponse maps a service error to an HTTP response, hiding internal
// detail for unclassified errors.
func errorResponse(c echo.Context, err error) error {
	code := apperrors.GetCodeFromError(err, "")
	switch code {
	case apperrors.ErrCodeInvalidInput:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperrors.ErrCodeNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperrors.ErrCodeAlreadyExists:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case apperrors.ErrCodeUnauthenticated:
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		slog.Error("internal error", "path", c.Path(), "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
