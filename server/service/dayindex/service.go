// Package dayindex maintains the day-granularity schedule index: the
// derived mapping from (calendar, calendar day) to the set of assignment
// and office-hours references scheduled that day.
//
// The item registries stay the source of truth for item data; this
// service owns and exclusively mutates the index. Every mutating verb
// applies the registry write before the index write, so a crash between
// the two leaves the index stale relative to the registry rather than the
// reverse. Mutations on one item are serialized with a lock keyed on the
// item uid; there is no cross-item transaction.
package dayindex

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/LuisDeAnda17/concept-backend-sub002/internal/util"
	apperrors "github.com/LuisDeAnda17/concept-backend-sub002/server/internal/errors"
	"github.com/LuisDeAnda17/concept-backend-sub002/server/timezone"
	"github.com/LuisDeAnda17/concept-backend-sub002/store"
)

type service struct {
	store Store
	locks *keyedMutex
}

// NewService creates a new day-index service.
func NewService(store *store.Store) Service {
	return &service{
		store: store,
		locks: newKeyedMutex(),
	}
}

// CreateCalendar creates the single calendar for an owner.
func (s *service) CreateCalendar(ctx context.Context, owner string) (*store.Calendar, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, apperrors.InvalidInput("owner is required")
	}

	existing, err := s.store.GetCalendar(ctx, &store.FindCalendar{Owner: &owner})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("calendar already exists for owner %s", owner)
	}

	created, err := s.store.CreateCalendar(ctx, &store.Calendar{
		UID:   shortuuid.New(),
		Owner: owner,
	})
	if err != nil {
		// The UNIQUE constraint is the backstop for a concurrent create.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExists("calendar already exists for owner %s", owner)
		}
		return nil, err
	}
	return created, nil
}

// GetCalendarByOwner returns the owner's calendar.
func (s *service) GetCalendarByOwner(ctx context.Context, owner string) (*store.Calendar, error) {
	return s.calendarForOwner(ctx, owner)
}

// CreateAssignment creates an assignment. Validation runs before any
// storage write; the calendar is untouched until a later bind.
func (s *service) CreateAssignment(ctx context.Context, create *CreateAssignmentRequest) (*store.Assignment, error) {
	name := strings.TrimSpace(create.Name)
	if name == "" {
		return nil, apperrors.InvalidInput("assignment name is required")
	}
	if err := validateInstant(create.Due, "due instant"); err != nil {
		return nil, err
	}

	return s.store.CreateAssignment(ctx, &store.Assignment{
		UID:      util.GenUUID(),
		GroupUID: create.GroupUID,
		Name:     name,
		DueTs:    create.Due.Unix(),
	})
}

// GetAssignment returns an assignment by uid.
func (s *service) GetAssignment(ctx context.Context, uid string) (*store.Assignment, error) {
	return s.assignmentByUID(ctx, uid)
}

// CreateOfficeHours creates an office-hours block.
func (s *service) CreateOfficeHours(ctx context.Context, create *CreateOfficeHoursRequest) (*store.OfficeHours, error) {
	if err := validateInstant(create.Start, "start instant"); err != nil {
		return nil, err
	}
	if create.Duration < 0 {
		return nil, apperrors.InvalidInput("duration must be non-negative")
	}

	return s.store.CreateOfficeHours(ctx, &store.OfficeHours{
		UID:          util.GenUUID(),
		GroupUID:     create.GroupUID,
		StartTs:      create.Start.Unix(),
		DurationSecs: int64(create.Duration / time.Second),
	})
}

// GetOfficeHours returns an office-hours block by uid.
func (s *service) GetOfficeHours(ctx context.Context, uid string) (*store.OfficeHours, error) {
	return s.officeHoursByUID(ctx, uid)
}

// BindAssignment inserts the assignment into the bucket of its current due
// day on the owner's calendar. Re-binding is a no-op by construction: the
// membership upsert targets the same row and day.
func (s *service) BindAssignment(ctx context.Context, owner, assignmentUID string) error {
	unlock := s.locks.Lock(assignmentUID)
	defer unlock()

	calendar, err := s.calendarForOwner(ctx, owner)
	if err != nil {
		return err
	}
	assignment, err := s.assignmentByUID(ctx, assignmentUID)
	if err != nil {
		return err
	}

	return s.bindItem(ctx, calendar, store.AssignmentItem, assignment.UID, assignment.DueTs)
}

// UnbindAssignment removes the assignment from the bucket implied by its
// current due instant.
func (s *service) UnbindAssignment(ctx context.Context, owner, assignmentUID string) error {
	unlock := s.locks.Lock(assignmentUID)
	defer unlock()

	calendar, err := s.calendarForOwner(ctx, owner)
	if err != nil {
		return err
	}
	assignment, err := s.assignmentByUID(ctx, assignmentUID)
	if err != nil {
		return err
	}

	return s.unbindItem(ctx, calendar, store.AssignmentItem, assignment.UID, assignment.DueTs)
}

// MoveAssignment updates the due instant and relocates bucket membership
// when the normalized day changes. No policy restricts the new instant to
// the future; any valid instant is accepted.
func (s *service) MoveAssignment(ctx context.Context, owner, assignmentUID string, newDue time.Time) (*store.Assignment, error) {
	if err := validateInstant(newDue, "due instant"); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(assignmentUID)
	defer unlock()

	start := time.Now()
	defer func() {
		slog.Debug("assignment move",
			"assignment", assignmentUID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}()

	calendar, err := s.calendarForOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	assignment, err := s.assignmentByUID(ctx, assignmentUID)
	if err != nil {
		return nil, err
	}

	oldDayKey := timezone.NormalizeDayTs(assignment.DueTs)
	newDueTs := newDue.Unix()
	newDayKey := timezone.NormalizeDayTs(newDueTs)

	// Registry first: the source of truth must never trail the index.
	now := time.Now().Unix()
	if err := s.store.UpdateAssignment(ctx, &store.UpdateAssignment{
		ID:        assignment.ID,
		DueTs:     &newDueTs,
		UpdatedTs: &now,
	}); err != nil {
		return nil, err
	}
	assignment.DueTs = newDueTs
	assignment.UpdatedTs = now

	if oldDayKey != newDayKey {
		if err := s.relocateItem(ctx, calendar, store.AssignmentItem, assignment.UID, newDayKey); err != nil {
			return nil, err
		}
	}

	return assignment, nil
}

// DeleteAssignment removes the assignment from its registry and cascades
// the removal of its bucket reference.
func (s *service) DeleteAssignment(ctx context.Context, assignmentUID string) error {
	unlock := s.locks.Lock(assignmentUID)
	defer unlock()

	assignment, err := s.assignmentByUID(ctx, assignmentUID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteAssignment(ctx, &store.DeleteAssignment{ID: assignment.ID}); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("assignment %s not found", assignmentUID)
		}
		return err
	}

	return s.clearItemRefs(ctx, store.AssignmentItem, assignment.UID)
}

// BindOfficeHours inserts the office-hours block into the bucket of its
// current start day on the owner's calendar.
func (s *service) BindOfficeHours(ctx context.Context, owner, officeHoursUID string) error {
	unlock := s.locks.Lock(officeHoursUID)
	defer unlock()

	calendar, err := s.calendarForOwner(ctx, owner)
	if err != nil {
		return err
	}
	officeHours, err := s.officeHoursByUID(ctx, officeHoursUID)
	if err != nil {
		return err
	}

	return s.bindItem(ctx, calendar, store.OfficeHoursItem, officeHours.UID, officeHours.StartTs)
}

// UnbindOfficeHours removes the office-hours block from the bucket implied
// by its current start instant.
func (s *service) UnbindOfficeHours(ctx context.Context, owner, officeHoursUID string) error {
	unlock := s.locks.Lock(officeHoursUID)
	defer unlock()

	calendar, err := s.calendarForOwner(ctx, owner)
	if err != nil {
		return err
	}
	officeHours, err := s.officeHoursByUID(ctx, officeHoursUID)
	if err != nil {
		return err
	}

	return s.unbindItem(ctx, calendar, store.OfficeHoursItem, officeHours.UID, officeHours.StartTs)
}

// MoveOfficeHours updates the start instant and, when given, the duration.
// The duration update applies unconditionally, whether or not the day
// changed.
func (s *service) MoveOfficeHours(ctx context.Context, owner, officeHoursUID string, newStart time.Time, newDuration *time.Duration) (*store.OfficeHours, error) {
	if err := validateInstant(newStart, "start instant"); err != nil {
		return nil, err
	}
	if newDuration != nil && *newDuration < 0 {
		return nil, apperrors.InvalidInput("duration must be non-negative")
	}

	unlock := s.locks.Lock(officeHoursUID)
	defer unlock()

	start := time.Now()
	defer func() {
		slog.Debug("office hours move",
			"office_hours", officeHoursUID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}()

	calendar, err := s.calendarForOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	officeHours, err := s.officeHoursByUID(ctx, officeHoursUID)
	if err != nil {
		return nil, err
	}

	oldDayKey := timezone.NormalizeDayTs(officeHours.StartTs)
	newStartTs := newStart.Unix()
	newDayKey := timezone.NormalizeDayTs(newStartTs)

	now := time.Now().Unix()
	update := &store.UpdateOfficeHours{
		ID:        officeHours.ID,
		StartTs:   &newStartTs,
		UpdatedTs: &now,
	}
	if newDuration != nil {
		durationSecs := int64(*newDuration / time.Second)
		update.DurationSecs = &durationSecs
		officeHours.DurationSecs = durationSecs
	}
	if err := s.store.UpdateOfficeHours(ctx, update); err != nil {
		return nil, err
	}
	officeHours.StartTs = newStartTs
	officeHours.UpdatedTs = now

	if oldDayKey != newDayKey {
		if err := s.relocateItem(ctx, calendar, store.OfficeHoursItem, officeHours.UID, newDayKey); err != nil {
			return nil, err
		}
	}

	return officeHours, nil
}

// DeleteOfficeHours removes the office-hours block from its registry and
// cascades the removal of its bucket reference.
func (s *service) DeleteOfficeHours(ctx context.Context, officeHoursUID string) error {
	unlock := s.locks.Lock(officeHoursUID)
	defer unlock()

	officeHours, err := s.officeHoursByUID(ctx, officeHoursUID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteOfficeHours(ctx, &store.DeleteOfficeHours{ID: officeHours.ID}); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("office hours %s not found", officeHoursUID)
		}
		return err
	}

	return s.clearItemRefs(ctx, store.OfficeHoursItem, officeHours.UID)
}

// QueryDayAssignments returns the assignments scheduled on the day of the
// given instant. Reads only the index, then hydrates each reference from
// the registry.
func (s *service) QueryDayAssignments(ctx context.Context, calendarUID string, at time.Time) ([]*store.Assignment, error) {
	refs, err := s.dayRefs(ctx, calendarUID, store.AssignmentItem, at)
	if err != nil {
		return nil, err
	}

	assignments := make([]*store.Assignment, 0, len(refs))
	for _, ref := range refs {
		uid := ref.ItemUID
		assignment, err := s.store.GetAssignment(ctx, &store.FindAssignment{UID: &uid})
		if err != nil {
			return nil, err
		}
		if assignment == nil {
			// A reference without a registry record is the transient
			// half-applied state; skip it rather than failing the query.
			s.warnInconsistent(store.AssignmentItem, uid)
			continue
		}
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

// QueryDayOfficeHours returns the office-hours blocks scheduled on the day
// of the given instant.
func (s *service) QueryDayOfficeHours(ctx context.Context, calendarUID string, at time.Time) ([]*store.OfficeHours, error) {
	refs, err := s.dayRefs(ctx, calendarUID, store.OfficeHoursItem, at)
	if err != nil {
		return nil, err
	}

	blocks := make([]*store.OfficeHours, 0, len(refs))
	for _, ref := range refs {
		uid := ref.ItemUID
		officeHours, err := s.store.GetOfficeHours(ctx, &store.FindOfficeHours{UID: &uid})
		if err != nil {
			return nil, err
		}
		if officeHours == nil {
			s.warnInconsistent(store.OfficeHoursItem, uid)
			continue
		}
		blocks = append(blocks, officeHours)
	}
	return blocks, nil
}

// Helper functions

func validateInstant(t time.Time, what string) error {
	if t.IsZero() || t.Unix() <= 0 {
		return apperrors.InvalidInput("%s must be a valid instant", what)
	}
	return nil
}

func (s *service) calendarForOwner(ctx context.Context, owner string) (*store.Calendar, error) {
	calendar, err := s.store.GetCalendar(ctx, &store.FindCalendar{Owner: &owner})
	if err != nil {
		return nil, err
	}
	if calendar == nil {
		return nil, apperrors.NotFound("no calendar for owner %s", owner)
	}
	return calendar, nil
}

func (s *service) assignmentByUID(ctx context.Context, uid string) (*store.Assignment, error) {
	assignment, err := s.store.GetAssignment(ctx, &store.FindAssignment{UID: &uid})
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperrors.NotFound("assignment %s not found", uid)
	}
	return assignment, nil
}

func (s *service) officeHoursByUID(ctx context.Context, uid string) (*store.OfficeHours, error) {
	officeHours, err := s.store.GetOfficeHours(ctx, &store.FindOfficeHours{UID: &uid})
	if err != nil {
		return nil, err
	}
	if officeHours == nil {
		return nil, apperrors.NotFound("office hours %s not found", uid)
	}
	return officeHours, nil
}

// bindItem inserts the item reference into the bucket of the day implied
// by ts, creating the bucket lazily.
func (s *service) bindItem(ctx context.Context, calendar *store.Calendar, kind store.ItemKind, itemUID string, ts int64) error {
	dayKey := timezone.NormalizeDayTs(ts)

	if _, err := s.store.UpsertCalendarDay(ctx, &store.CalendarDay{
		CalendarUID: calendar.UID,
		DayKey:      dayKey.String(),
	}); err != nil {
		return err
	}

	return s.store.UpsertDayItem(ctx, &store.DayItem{
		ItemKind:    kind,
		ItemUID:     itemUID,
		CalendarUID: calendar.UID,
		DayKey:      dayKey.String(),
	})
}

// unbindItem removes the item reference from the bucket of the day implied
// by ts, the item's current timestamp in its registry. The caller never
// supplies the day; the index must match the registry (or the removal
// reports NOT_FOUND).
func (s *service) unbindItem(ctx context.Context, calendar *store.Calendar, kind store.ItemKind, itemUID string, ts int64) error {
	dayKey := timezone.NormalizeDayTs(ts)

	err := s.store.RemoveDayItem(ctx, &store.RemoveDayItem{
		ItemKind:    kind,
		ItemUID:     itemUID,
		CalendarUID: calendar.UID,
		DayKey:      dayKey.String(),
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("%s %s is not scheduled on %s", kind, itemUID, dayKey)
		}
		return err
	}

	s.pruneBuckets(ctx)
	return nil
}

// relocateItem moves a bound item's membership to the new day. An unbound
// item stays unbound: a move never transitions an item into the index.
func (s *service) relocateItem(ctx context.Context, calendar *store.Calendar, kind store.ItemKind, itemUID string, newDayKey timezone.DayKey) error {
	memberships, err := s.store.ListDayItems(ctx, &store.FindDayItem{
		ItemKind: &kind,
		ItemUID:  &itemUID,
	})
	if err != nil {
		return err
	}
	if len(memberships) == 0 || memberships[0].CalendarUID != calendar.UID {
		return nil
	}

	if _, err := s.store.UpsertCalendarDay(ctx, &store.CalendarDay{
		CalendarUID: calendar.UID,
		DayKey:      newDayKey.String(),
	}); err != nil {
		return err
	}

	// Single upsert: the membership row is keyed on the item, so this both
	// pulls the reference from the old bucket and adds it to the new one.
	if err := s.store.UpsertDayItem(ctx, &store.DayItem{
		ItemKind:    kind,
		ItemUID:     itemUID,
		CalendarUID: calendar.UID,
		DayKey:      newDayKey.String(),
	}); err != nil {
		return err
	}

	s.pruneBuckets(ctx)
	return nil
}

// clearItemRefs removes every bucket reference to a deleted item.
func (s *service) clearItemRefs(ctx context.Context, kind store.ItemKind, itemUID string) error {
	if err := s.store.DeleteItemRefs(ctx, kind, itemUID); err != nil {
		return err
	}
	s.pruneBuckets(ctx)
	return nil
}

// pruneBuckets removes empty bucket rows. Housekeeping: failures are
// logged, never surfaced.
func (s *service) pruneBuckets(ctx context.Context) {
	if _, err := s.store.PruneCalendarDays(ctx); err != nil {
		slog.Warn("failed to prune empty calendar days", "error", err)
	}
}

// dayRefs lists the index references of one kind for the day of the given
// instant.
func (s *service) dayRefs(ctx context.Context, calendarUID string, kind store.ItemKind, at time.Time) ([]*store.DayItem, error) {
	dayKey := timezone.NormalizeDay(at).String()
	return s.store.ListDayItems(ctx, &store.FindDayItem{
		ItemKind:    &kind,
		CalendarUID: &calendarUID,
		DayKey:      &dayKey,
	})
}

func (s *service) warnInconsistent(kind store.ItemKind, itemUID string) {
	slog.Warn("index reference missing from registry",
		"error_code", string(apperrors.ErrCodeInconsistent),
		"item_kind", string(kind),
		"item_uid", itemUID,
	)
}
