package store

import (
	"context"
	"fmt"
)

// CalendarDay is the derived per-day bucket for one calendar. Its identity
// is computed deterministically from (calendar uid, day key) so lookups and
// idempotent upserts can target it without an index scan. Buckets are
// created lazily on first insertion and may be pruned once empty.
type CalendarDay struct {
	UID         string
	CalendarUID string
	DayKey      string
	CreatedTs   int64
}

// CalendarDayUID derives the bucket identity for a calendar and day key.
func CalendarDayUID(calendarUID, dayKey string) string {
	return fmt.Sprintf("%s/%s", calendarUID, dayKey)
}

// FindCalendarDay is the find condition for calendar day.
type FindCalendarDay struct {
	UID         *string
	CalendarUID *string
	DayKey      *string
}

// DayItem is a bucket membership row: one item reference scheduled on one
// calendar day. The row is keyed on (kind, item uid), so an item holds at
// most one current bucket membership and a move is a single upsert that
// reassigns the day columns.
type DayItem struct {
	ItemKind    ItemKind
	ItemUID     string
	CalendarUID string
	DayKey      string
}

// CalendarDayUID returns the identity of the bucket this membership lives in.
func (d *DayItem) CalendarDayUID() string {
	return CalendarDayUID(d.CalendarUID, d.DayKey)
}

// FindDayItem is the find condition for bucket memberships.
type FindDayItem struct {
	ItemKind    *ItemKind
	ItemUID     *string
	CalendarUID *string
	DayKey      *string
}

// RemoveDayItem is the removal request for one bucket membership. The
// expected day columns distinguish "removed from this bucket" from a stale
// or never-bound reference: removal only matches the row if the item is
// currently in that exact bucket.
type RemoveDayItem struct {
	ItemKind    ItemKind
	ItemUID     string
	CalendarUID string
	DayKey      string
}

// UpsertCalendarDay ensures the bucket row exists.
func (s *Store) UpsertCalendarDay(ctx context.Context, upsert *CalendarDay) (*CalendarDay, error) {
	return s.driver.UpsertCalendarDay(ctx, upsert)
}

// ListCalendarDays lists bucket rows with filter.
func (s *Store) ListCalendarDays(ctx context.Context, find *FindCalendarDay) ([]*CalendarDay, error) {
	return s.driver.ListCalendarDays(ctx, find)
}

// PruneCalendarDays removes bucket rows with no remaining memberships.
func (s *Store) PruneCalendarDays(ctx context.Context) (int64, error) {
	return s.driver.PruneCalendarDays(ctx)
}

// UpsertDayItem inserts or reassigns a bucket membership.
func (s *Store) UpsertDayItem(ctx context.Context, upsert *DayItem) error {
	return s.driver.UpsertDayItem(ctx, upsert)
}

// RemoveDayItem removes a bucket membership. Returns ErrNotFound if the
// item was not present in the named bucket.
func (s *Store) RemoveDayItem(ctx context.Context, remove *RemoveDayItem) error {
	return s.driver.RemoveDayItem(ctx, remove)
}

// ListDayItems lists bucket memberships with filter.
func (s *Store) ListDayItems(ctx context.Context, find *FindDayItem) ([]*DayItem, error) {
	return s.driver.ListDayItems(ctx, find)
}

// DeleteItemRefs clears every bucket reference to an item.
func (s *Store) DeleteItemRefs(ctx context.Context, kind ItemKind, itemUID string) error {
	return s.driver.DeleteItemRefs(ctx, kind, itemUID)
}
