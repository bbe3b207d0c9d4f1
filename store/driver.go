package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Assignment registry methods.
	CreateAssignment(ctx context.Context, create *Assignment) (*Assignment, error)
	ListAssignments(ctx context.Context, find *FindAssignment) ([]*Assignment, error)
	UpdateAssignment(ctx context.Context, update *UpdateAssignment) error
	DeleteAssignment(ctx context.Context, delete *DeleteAssignment) error

	// OfficeHours registry methods.
	CreateOfficeHours(ctx context.Context, create *OfficeHours) (*OfficeHours, error)
	ListOfficeHours(ctx context.Context, find *FindOfficeHours) ([]*OfficeHours, error)
	UpdateOfficeHours(ctx context.Context, update *UpdateOfficeHours) error
	DeleteOfficeHours(ctx context.Context, delete *DeleteOfficeHours) error

	// Calendar registry methods.
	CreateCalendar(ctx context.Context, create *Calendar) (*Calendar, error)
	ListCalendars(ctx context.Context, find *FindCalendar) ([]*Calendar, error)

	// CalendarDay bucket methods.
	UpsertCalendarDay(ctx context.Context, upsert *CalendarDay) (*CalendarDay, error)
	ListCalendarDays(ctx context.Context, find *FindCalendarDay) ([]*CalendarDay, error)
	// PruneCalendarDays removes buckets whose member sets are both empty.
	// Housekeeping only; correctness never depends on it.
	PruneCalendarDays(ctx context.Context) (int64, error)

	// Day-bucket membership methods. A membership row is keyed on the item
	// reference itself, so an item can appear in at most one bucket and a
	// re-applied upsert is safe.
	UpsertDayItem(ctx context.Context, upsert *DayItem) error
	RemoveDayItem(ctx context.Context, remove *RemoveDayItem) error
	ListDayItems(ctx context.Context, find *FindDayItem) ([]*DayItem, error)
	// DeleteItemRefs clears every bucket reference to the item. Used by the
	// cascading item delete; removing zero rows is not an error.
	DeleteItemRefs(ctx context.Context, kind ItemKind, itemUID string) error
}
