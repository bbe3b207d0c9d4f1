package store

import (
	"context"
	"time"
)

// OfficeHours is the object representing an office-hours block.
type OfficeHours struct {
	ID           int32
	UID          string
	GroupUID     string
	StartTs      int64
	DurationSecs int64
	CreatedTs    int64
	UpdatedTs    int64
}

// FindOfficeHours is the find condition for office hours.
type FindOfficeHours struct {
	ID       *int32
	UID      *string
	GroupUID *string
}

// UpdateOfficeHours is the update request for office hours.
type UpdateOfficeHours struct {
	ID           int32
	StartTs      *int64
	DurationSecs *int64
	UpdatedTs    *int64
}

// DeleteOfficeHours is the delete request for office hours.
type DeleteOfficeHours struct {
	ID int32
}

// CreateOfficeHours creates a new office-hours block.
func (s *Store) CreateOfficeHours(ctx context.Context, create *OfficeHours) (*OfficeHours, error) {
	return s.driver.CreateOfficeHours(ctx, create)
}

// ListOfficeHours lists office-hours blocks with filter.
func (s *Store) ListOfficeHours(ctx context.Context, find *FindOfficeHours) ([]*OfficeHours, error) {
	return s.driver.ListOfficeHours(ctx, find)
}

// GetOfficeHours gets a single office-hours block, or nil if none matches.
func (s *Store) GetOfficeHours(ctx context.Context, find *FindOfficeHours) (*OfficeHours, error) {
	list, err := s.driver.ListOfficeHours(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateOfficeHours updates an office-hours block.
func (s *Store) UpdateOfficeHours(ctx context.Context, update *UpdateOfficeHours) error {
	return s.driver.UpdateOfficeHours(ctx, update)
}

// DeleteOfficeHours deletes an office-hours block.
func (s *Store) DeleteOfficeHours(ctx context.Context, delete *DeleteOfficeHours) error {
	return s.driver.DeleteOfficeHours(ctx, delete)
}

// ParseStartTime parses the office-hours start instant to time.Time.
func (o *OfficeHours) ParseStartTime() time.Time {
	return time.Unix(o.StartTs, 0)
}

// GetDuration returns the duration of the office-hours block.
func (o *OfficeHours) GetDuration() time.Duration {
	return time.Duration(o.DurationSecs) * time.Second
}

// EndTs returns the instant the office-hours block ends.
func (o *OfficeHours) EndTs() int64 {
	return o.StartTs + o.DurationSecs
}
