package store

import (
	"context"
	"time"
)

// Assignment is the object representing an assignment.
type Assignment struct {
	ID        int32
	UID       string
	GroupUID  string
	Name      string
	DueTs     int64
	CreatedTs int64
	UpdatedTs int64
}

// FindAssignment is the find condition for assignment.
type FindAssignment struct {
	ID       *int32
	UID      *string
	GroupUID *string
}

// UpdateAssignment is the update request for assignment.
type UpdateAssignment struct {
	ID        int32
	Name      *string
	DueTs     *int64
	UpdatedTs *int64
}

// DeleteAssignment is the delete request for assignment.
type DeleteAssignment struct {
	ID int32
}

// CreateAssignment creates a new assignment.
func (s *Store) CreateAssignment(ctx context.Context, create *Assignment) (*Assignment, error) {
	return s.driver.CreateAssignment(ctx, create)
}

// ListAssignments lists assignments with filter.
func (s *Store) ListAssignments(ctx context.Context, find *FindAssignment) ([]*Assignment, error) {
	return s.driver.ListAssignments(ctx, find)
}

// GetAssignment gets a single assignment, or nil if none matches.
func (s *Store) GetAssignment(ctx context.Context, find *FindAssignment) (*Assignment, error) {
	list, err := s.driver.ListAssignments(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateAssignment updates an assignment.
func (s *Store) UpdateAssignment(ctx context.Context, update *UpdateAssignment) error {
	return s.driver.UpdateAssignment(ctx, update)
}

// DeleteAssignment deletes an assignment.
func (s *Store) DeleteAssignment(ctx context.Context, delete *DeleteAssignment) error {
	return s.driver.DeleteAssignment(ctx, delete)
}

// ParseDueTime parses the assignment due instant to time.Time.
func (a *Assignment) ParseDueTime() time.Time {
	return time.Unix(a.DueTs, 0)
}
