package store

import (
	"github.com/pkg/errors"
)

// ItemKind discriminates the two kinds of indexed items.
type ItemKind string

const (
	// AssignmentItem is an assignment reference in a day bucket.
	AssignmentItem ItemKind = "assignment"
	// OfficeHoursItem is an office-hours reference in a day bucket.
	OfficeHoursItem ItemKind = "office_hours"
)

// Sentinel errors returned by drivers. Callers check them with errors.Is.
var (
	// ErrNotFound is returned when a targeted row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a uniqueness constraint rejects a write.
	ErrAlreadyExists = errors.New("already exists")
)
