package store

import (
	"context"
)

// Calendar is the object representing a per-owner calendar. At most one
// calendar exists per owning identity; the owner column is UNIQUE and
// duplicate creation is rejected, not merged.
type Calendar struct {
	ID        int32
	UID       string
	Owner     string
	CreatedTs int64
}

// FindCalendar is the find condition for calendar.
type FindCalendar struct {
	ID    *int32
	UID   *string
	Owner *string
}

// CreateCalendar creates a new calendar.
func (s *Store) CreateCalendar(ctx context.Context, create *Calendar) (*Calendar, error) {
	return s.driver.CreateCalendar(ctx, create)
}

// ListCalendars lists calendars with filter.
func (s *Store) ListCalendars(ctx context.Context, find *FindCalendar) ([]*Calendar, error) {
	return s.driver.ListCalendars(ctx, find)
}

// GetCalendar gets a single calendar, or nil if none matches.
func (s *Store) GetCalendar(ctx context.Context, find *FindCalendar) (*Calendar, error) {
	list, err := s.driver.ListCalendars(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
