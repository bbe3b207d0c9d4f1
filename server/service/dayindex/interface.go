package dayindex

import (
	"context"
	"time"

	"github.com/LuisDeAnda17/concept-backend-sub002/store"
)

// Service defines the core business logic interface for the day-bucket
// index and its reconciliation operations. Callers pass an already
// authenticated owner; no operation performs authorization itself.
type Service interface {
	// CreateCalendar creates the calendar for an owner. Each owner has at
	// most one calendar; a duplicate creation is rejected with
	// ALREADY_EXISTS, not merged.
	CreateCalendar(ctx context.Context, owner string) (*store.Calendar, error)

	// GetCalendarByOwner returns the owner's calendar.
	GetCalendarByOwner(ctx context.Context, owner string) (*store.Calendar, error)

	// CreateAssignment creates an assignment in its registry. No calendar
	// effect until the assignment is bound.
	CreateAssignment(ctx context.Context, create *CreateAssignmentRequest) (*store.Assignment, error)

	// GetAssignment returns an assignment by uid.
	GetAssignment(ctx context.Context, uid string) (*store.Assignment, error)

	// CreateOfficeHours creates an office-hours block in its registry.
	CreateOfficeHours(ctx context.Context, create *CreateOfficeHoursRequest) (*store.OfficeHours, error)

	// GetOfficeHours returns an office-hours block by uid.
	GetOfficeHours(ctx context.Context, uid string) (*store.OfficeHours, error)

	// BindAssignment inserts the assignment into the bucket matching its
	// current due instant on the owner's calendar. Re-binding an already
	// bound assignment is a no-op.
	BindAssignment(ctx context.Context, owner, assignmentUID string) error

	// UnbindAssignment removes the assignment from the bucket implied by
	// its current due instant. Errors with NOT_FOUND if the reference was
	// not present in that bucket.
	UnbindAssignment(ctx context.Context, owner, assignmentUID string) error

	// MoveAssignment updates the assignment's due instant and, when the
	// normalized day changes, relocates its bucket membership. A same-day
	// move only touches the registry.
	MoveAssignment(ctx context.Context, owner, assignmentUID string, newDue time.Time) (*store.Assignment, error)

	// DeleteAssignment removes the assignment from its registry and clears
	// its reference from every bucket.
	DeleteAssignment(ctx context.Context, assignmentUID string) error

	// BindOfficeHours, UnbindOfficeHours, MoveOfficeHours and
	// DeleteOfficeHours are the office-hours counterparts. MoveOfficeHours
	// additionally updates the duration unconditionally, whether or not
	// the day changed.
	BindOfficeHours(ctx context.Context, owner, officeHoursUID string) error
	UnbindOfficeHours(ctx context.Context, owner, officeHoursUID string) error
	MoveOfficeHours(ctx context.Context, owner, officeHoursUID string, newStart time.Time, newDuration *time.Duration) (*store.OfficeHours, error)
	DeleteOfficeHours(ctx context.Context, officeHoursUID string) error

	// QueryDayAssignments returns the hydrated assignments scheduled on the
	// calendar day containing the given instant. An empty day yields an
	// empty slice, not an error. Order is not guaranteed.
	QueryDayAssignments(ctx context.Context, calendarUID string, at time.Time) ([]*store.Assignment, error)

	// QueryDayOfficeHours is the office-hours counterpart of QueryDayAssignments.
	QueryDayOfficeHours(ctx context.Context, calendarUID string, at time.Time) ([]*store.OfficeHours, error)
}

// CreateAssignmentRequest represents the request to create an assignment.
type CreateAssignmentRequest struct {
	GroupUID string
	Name     string
	Due      time.Time
}

// CreateOfficeHoursRequest represents the request to create an office-hours block.
type CreateOfficeHoursRequest struct {
	GroupUID string
	Start    time.Time
	Duration time.Duration
}

// Store is the interface for store operations needed by the day-index
// service. *store.Store satisfies it; tests use an in-memory mock.
type Store interface {
	CreateAssignment(ctx context.Context, create *store.Assignment) (*store.Assignment, error)
	GetAssignment(ctx context.Context, find *store.FindAssignment) (*store.Assignment, error)
	UpdateAssignment(ctx context.Context, update *store.UpdateAssignment) error
	DeleteAssignment(ctx context.Context, delete *store.DeleteAssignment) error

	CreateOfficeHours(ctx context.Context, create *store.OfficeHours) (*store.OfficeHours, error)
	GetOfficeHours(ctx context.Context, find *store.FindOfficeHours) (*store.OfficeHours, error)
	UpdateOfficeHours(ctx context.Context, update *store.UpdateOfficeHours) error
	DeleteOfficeHours(ctx context.Context, delete *store.DeleteOfficeHours) error

	CreateCalendar(ctx context.Context, create *store.Calendar) (*store.Calendar, error)
	GetCalendar(ctx context.Context, find *store.FindCalendar) (*store.Calendar, error)

	UpsertCalendarDay(ctx context.Context, upsert *store.CalendarDay) (*store.CalendarDay, error)
	PruneCalendarDays(ctx context.Context) (int64, error)

	UpsertDayItem(ctx context.Context, upsert *store.DayItem) error
	RemoveDayItem(ctx context.Context, remove *store.RemoveDayItem) error
	ListDayItems(ctx context.Context, find *store.FindDayItem) ([]*store.DayItem, error)
	DeleteItemRefs(ctx context.Context, kind store.ItemKind, itemUID string) error
}
