package dayindex

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	apperrors "github.com/LuisDeAnda17/concept-backend-sub002/server/internal/errors"
	"github.com/LuisDeAnda17/concept-backend-sub002/server/timezone"
	"github.com/LuisDeAnda17/concept-backend-sub002/store"
)

// mockStore is an in-memory Store for exercising the service without a
// database. Maps are keyed the way the SQL drivers key their rows.
type mockStore struct {
	nextID       int32
	assignments  map[string]*store.Assignment // by uid
	officeHours  map[string]*store.OfficeHours
	calendars    map[string]*store.Calendar // by owner
	calendarDays map[string]*store.CalendarDay
	dayItems     map[string]*store.DayItem // by kind/uid
}

func newMockStore() *mockStore {
	return &mockStore{
		assignments:  make(map[string]*store.Assignment),
		officeHours:  make(map[string]*store.OfficeHours),
		calendars:    make(map[string]*store.Calendar),
		calendarDays: make(map[string]*store.CalendarDay),
		dayItems:     make(map[string]*store.DayItem),
	}
}

func dayItemKey(kind store.ItemKind, itemUID string) string {
	return string(kind) + "/" + itemUID
}

func (m *mockStore) CreateAssignment(_ context.Context, create *store.Assignment) (*store.Assignment, error) {
	m.nextID++
	create.ID = m.nextID
	create.CreatedTs = time.Now().Unix()
	create.UpdatedTs = create.CreatedTs
	m.assignments[create.UID] = create
	return create, nil
}

func (m *mockStore) GetAssignment(_ context.Context, find *store.FindAssignment) (*store.Assignment, error) {
	if find.UID != nil {
		if a, ok := m.assignments[*find.UID]; ok {
			copied := *a
			return &copied, nil
		}
		return nil, nil
	}
	for _, a := range m.assignments {
		if find.ID != nil && a.ID == *find.ID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockStore) UpdateAssignment(_ context.Context, update *store.UpdateAssignment) error {
	for _, a := range m.assignments {
		if a.ID == update.ID {
			if update.Name != nil {
				a.Name = *update.Name
			}
			if update.DueTs != nil {
				a.DueTs = *update.DueTs
			}
			if update.UpdatedTs != nil {
				a.UpdatedTs = *update.UpdatedTs
			}
			return nil
		}
	}
	return errors.Wrap(store.ErrNotFound, "assignment")
}

func (m *mockStore) DeleteAssignment(_ context.Context, del *store.DeleteAssignment) error {
	for uid, a := range m.assignments {
		if a.ID == del.ID {
			delete(m.assignments, uid)
			return nil
		}
	}
	return errors.Wrap(store.ErrNotFound, "assignment")
}

func (m *mockStore) CreateOfficeHours(_ context.Context, create *store.OfficeHours) (*store.OfficeHours, error) {
	m.nextID++
	create.ID = m.nextID
	create.CreatedTs = time.Now().Unix()
	create.UpdatedTs = create.CreatedTs
	m.officeHours[create.UID] = create
	return create, nil
}

func (m *mockStore) GetOfficeHours(_ context.Context, find *store.FindOfficeHours) (*store.OfficeHours, error) {
	if find.UID != nil {
		if o, ok := m.officeHours[*find.UID]; ok {
			copied := *o
			return &copied, nil
		}
		return nil, nil
	}
	for _, o := range m.officeHours {
		if find.ID != nil && o.ID == *find.ID {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockStore) UpdateOfficeHours(_ context.Context, update *store.UpdateOfficeHours) error {
	for _, o := range m.officeHours {
		if o.ID == update.ID {
			if update.StartTs != nil {
				o.StartTs = *update.StartTs
			}
			if update.DurationSecs != nil {
				o.DurationSecs = *update.DurationSecs
			}
			if update.UpdatedTs != nil {
				o.UpdatedTs = *update.UpdatedTs
			}
			return nil
		}
	}
	return errors.Wrap(store.ErrNotFound, "office hours")
}

func (m *mockStore) DeleteOfficeHours(_ context.Context, del *store.DeleteOfficeHours) error {
	for uid, o := range m.officeHours {
		if o.ID == del.ID {
			delete(m.officeHours, uid)
			return nil
		}
	}
	return errors.Wrap(store.ErrNotFound, "office hours")
}

func (m *mockStore) CreateCalendar(_ context.Context, create *store.Calendar) (*store.Calendar, error) {
	if _, ok := m.calendars[create.Owner]; ok {
		return nil, errors.Wrap(store.ErrAlreadyExists, "calendar")
	}
	m.nextID++
	create.ID = m.nextID
	create.CreatedTs = time.Now().Unix()
	m.calendars[create.Owner] = create
	return create, nil
}

func (m *mockStore) GetCalendar(_ context.Context, find *store.FindCalendar) (*store.Calendar, error) {
	if find.Owner != nil {
		if c, ok := m.calendars[*find.Owner]; ok {
			copied := *c
			return &copied, nil
		}
		return nil, nil
	}
	for _, c := range m.calendars {
		if find.UID != nil && c.UID == *find.UID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockStore) UpsertCalendarDay(_ context.Context, upsert *store.CalendarDay) (*store.CalendarDay, error) {
	uid := store.CalendarDayUID(upsert.CalendarUID, upsert.DayKey)
	if existing, ok := m.calendarDays[uid]; ok {
		return existing, nil
	}
	upsert.UID = uid
	upsert.CreatedTs = time.Now().Unix()
	m.calendarDays[uid] = upsert
	return upsert, nil
}

func (m *mockStore) PruneCalendarDays(_ context.Context) (int64, error) {
	var pruned int64
	for uid, day := range m.calendarDays {
		occupied := false
		for _, item := range m.dayItems {
			if item.CalendarUID == day.CalendarUID && item.DayKey == day.DayKey {
				occupied = true
				break
			}
		}
		if !occupied {
			delete(m.calendarDays, uid)
			pruned++
		}
	}
	return pruned, nil
}

func (m *mockStore) UpsertDayItem(_ context.Context, upsert *store.DayItem) error {
	copied := *upsert
	m.dayItems[dayItemKey(upsert.ItemKind, upsert.ItemUID)] = &copied
	return nil
}

func (m *mockStore) RemoveDayItem(_ context.Context, remove *store.RemoveDayItem) error {
	key := dayItemKey(remove.ItemKind, remove.ItemUID)
	existing, ok := m.dayItems[key]
	if !ok || existing.CalendarUID != remove.CalendarUID || existing.DayKey != remove.DayKey {
		return errors.Wrap(store.ErrNotFound, "day item")
	}
	delete(m.dayItems, key)
	return nil
}

func (m *mockStore) ListDayItems(_ context.Context, find *store.FindDayItem) ([]*store.DayItem, error) {
	var list []*store.DayItem
	for _, item := range m.dayItems {
		if find.ItemKind != nil && item.ItemKind != *find.ItemKind {
			continue
		}
		if find.ItemUID != nil && item.ItemUID != *find.ItemUID {
			continue
		}
		if find.CalendarUID != nil && item.CalendarUID != *find.CalendarUID {
			continue
		}
		if find.DayKey != nil && item.DayKey != *find.DayKey {
			continue
		}
		copied := *item
		list = append(list, &copied)
	}
	return list, nil
}

func (m *mockStore) DeleteItemRefs(_ context.Context, kind store.ItemKind, itemUID string) error {
	delete(m.dayItems, dayItemKey(kind, itemUID))
	return nil
}

func newTestService() (*service, *mockStore) {
	mock := newMockStore()
	return &service{store: mock, locks: newKeyedMutex()}, mock
}

func mustInstant(t *testing.T, value string) time.Time {
	t.Helper()
	instant, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return instant
}

func TestCreateCalendar(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	calendar, err := svc.CreateCalendar(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, calendar.UID)
	require.Equal(t, "u1", calendar.Owner)

	// One calendar per owner: the duplicate is rejected, not merged.
	_, err = svc.CreateCalendar(ctx, "u1")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeAlreadyExists))

	got, err := svc.GetCalendarByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, calendar.UID, got.UID)

	_, err = svc.CreateCalendar(ctx, "  ")
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
}

func TestCreateAssignmentValidation(t *testing.T) {
	ctx := context.Background()
	svc, mock := newTestService()

	_, err := svc.CreateAssignment(ctx, &CreateAssignmentRequest{
		Name: "",
		Due:  mustInstant(t, "2024-04-01T10:00:00Z"),
	})
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))

	_, err = svc.CreateAssignment(ctx, &CreateAssignmentRequest{Name: "Essay"})
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
	require.Empty(t, mock.assignments)

	assignment, err := svc.CreateAssignment(ctx, &CreateAssignmentRequest{
		GroupUID: "cs101",
		Name:     "Essay",
		Due:      mustInstant(t, "2024-04-01T10:00:00Z"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, assignment.UID)
	// Creation alone has no calendar effect.
	require.Empty(t, mock.dayItems)
}

func TestCreateOfficeHoursRejectsNegativeDuration(t *testing.T) {
	ctx := context.Background()
	svc, mock := newTestService()

	_, err := svc.CreateOfficeHours(ctx, &CreateOfficeHoursRequest{
		Start:    mustInstant(t, "2024-04-02T15:00:00Z"),
		Duration: -time.Hour,
	})
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
	// Rejected before any write.
	require.Empty(t, mock.officeHours)
}

func TestBindAssignment(t *testing.T) {
	ctx := context.Background()
	svc, mock := newTestService()

	calendar, err := svc.CreateCalendar(ctx, "u1")
	require.NoError(t, err)
	assignment, err := svc.CreateAssignment(ctx, &CreateAssignmentRequest{
		Name: "Essay 1",
		Due:  mustInstant(t, "2024-04-01T10:00:00Z"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.BindAssignment(ctx, "u1", assignment.UID))

	day := mustInstant(t, "2024-04-01T23:59:00Z")
	scheduled, err := svc.QueryDayAssignments(ctx, calendar.UID, day)
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	require.Equal(t, assignment.UID, scheduled[0].UID)

	// Binding again is idempotent: still exactly one reference.
	require.NoError(t, svc.BindAssignment(ctx, "u1", assignment.UID))
	scheduled, err = svc.QueryDayAssignments(ctx, calendar.UID, day)
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	require.Len(t, mock.dayItems, 1)

	err = svc.BindAssignment(ctx, "u1", "missing")
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	err = svc.BindAssignment(ctx, "nobody", assignment.UID)
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func TestUnbindAssignment(t *testing.T) {
	ctx := context.Background()
	svc, mock := newTestService()

	calendar, err := svc.CreateCalendar(ctx, "u1")
	require.NoError(t, err)
	assignment, err := svc.CreateAssignment(ctx, &CreateAssignmentRequest{
		Name: "Essay 1",
		Due:  mustInstant(t, "2024-04-01T10:00:00Z"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.BindAssignment(ctx, "u1", assignment.UID))

	require.NoError(t, svc.UnbindAssignment(ctx, "u1", assignment.UID))
	scheduled, err := svc.QueryDayAssignments(ctx, calendar.UID, mustInstant(t, "2024-04-01T00:00:00Z"))
	require.NoError(t, err)
	require.Empty(t, scheduled)
	// The emptied bucket is pruned.
	require.Empty(t, mock.calendarDays)

	// Unbinding an unbound item reports not found.
	err = svc.UnbindAssignment(ctx, "u1", assignment.UID)
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func TestMoveAssignmentAcrossDays(t *testing.T) {
	ctx := context.Background()
	svc, mock := newTestService()

	calendar, err := svc.CreateCalendar(ctx, "u1")
	require.NoError(t, err)
	assignment, err := svc.CreateAssignment(ctx, &CreateAssignmentRequest{
		Name: "Essay 1",
		Due:  mustInstant(t, "2024-04-01T10:00:00Z"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.BindAssignment(ctx, "u1", assignment.UID))

	newDue := mustInstant(t, "2024-04-05T14:30:00Z")
	moved, err := svc.MoveAssignment(ctx, "u1", assignment.UID, newDue)
	require.NoError(t, err)
	require.Equal(t, newDue.Unix(), moved.DueTs)

	// Gone from the old day, present on the new one.
	old, err := svc.QueryDayAssignments(ctx, calendar.UID, mustInstant(t, "2024-04-01T12:00:00Z"))
	require.NoError(t, err)
	require.Empty(t, old)
	fresh, err := svc.QueryDayAssignments(ctx, calendar.UID, newDue)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	require.Equal(t, assignment.UID, fresh[0].UID)

	// Exactly one membership row and one surviving bucket.
	require.Len(t, mock.dayItems, 1)
	require.Len(t, mock.calendarDays, 1)
}

func TestMoveAssignmentSameDay(t *testing.T) {
	ctx := context.Background()
	svc, mock := newTestService()

	_, err := svc.CreateCalendar(ctx, "u1")
	require.NoError(t, err)
	assignment, err := svc.CreateAssignment(ctx, &CreateAssignmentRequest{
		Name: "Essay 1",
		Due:  mustInstant(t, "2024-04-01T10:00:00Z"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.BindAssignment(ctx, "u1", assignment.UID))

	before := *mock.dayItems[dayItemKey(store.AssignmentItem, assignment.UID)]

	// Same calendar day, different hour: registry updates, index untouched.
	moved, err := svc.MoveAssignment(ctx, "u1", assignment.UID, mustInstant(t, "2024-04-01T18:00:00Z"))
	require.NoError(t, err)
	require.Equal(t, mustInstant(t, "2024-04-01T18:00:00Z").Unix(), moved.DueTs)

	after := mock.dayItems[dayItemKey(store.AssignmentItem, assignment.UID)]
	require.Equal(t, before, *after)
	require.Len(t, mock.dayItems, 1)
}

func TestMoveUnboundAssignmentStaysUnbound(t *testing.T) {
	ctx := context.Background()
	svc, mock := newTestService()

	_, err := svc.CreateCalendar(ctx, "u1")
	require.NoError(t, err)
	assignment, err := svc.CreateAssignment(ctx, &CreateAssignmentRequest{
		Name: "Essay 1",
		Due:  mustInstant(t, "2024-04-01T10:00:00Z"),
	})
	require.NoError(t, err)

	newDue := mustInstant(t, "2024-04-07T09:00:00Z")
	moved, err := svc.MoveAssignment(ctx, "u1", assignment.UID, newDue)
	require.NoError(t, err)
	require.Equal(t, newDue.Unix(), moved.DueTs)
	// A move never transitions an item into the index.
	require.Empty(t, mock.dayItems)
}

func TestDeleteAssignmentCascades(t *testing.T) {
	ctx := context.Background()
	svc, mock := newTestService()

	calendar, err := svc.CreateCalendar(ctx, "u1")
	require.NoError(t, err)
	assignment, err := svc.CreateAssignment(ctx, &CreateAssignmentRequest{
		Name: "Essay 1",
		Due:  mustInstant(t, "2024-04-01T10:00:00Z"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.BindAssignment(ctx, "u1", assignment.UID))

	require.NoError(t, svc.DeleteAssignment(ctx, assignment.UID))

	_, err = svc.GetAssignment(ctx, assignment.UID)
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	scheduled, err := svc.QueryDayAssignments(ctx, calendar.UID, mustInstant(t, "2024-04-01T00:00:00Z"))
	require.NoError(t, err)
	require.Empty(t, scheduled)
	require.Empty(t, mock.dayItems)
	require.Empty(t, mock.calendarDays)
}

func TestOfficeHoursLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, mock := newTestService()

	calendar, err := svc.CreateCalendar(ctx, "u1")
	require.NoError(t, err)
	block, err := svc.CreateOfficeHours(ctx, &CreateOfficeHoursRequest{
		GroupUID: "cs101",
		Start:    mustInstant(t, "2024-04-02T15:00:00Z"),
		Duration: time.Hour,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3600, block.DurationSecs)

	require.NoError(t, svc.BindOfficeHours(ctx, "u1", block.UID))
	scheduled, err := svc.QueryDayOfficeHours(ctx, calendar.UID, mustInstant(t, "2024-04-02T08:00:00Z"))
	require.NoError(t, err)
	require.Len(t, scheduled, 1)

	// Move to another day and shorten the session in one call.
	newDuration := 30 * time.Minute
	moved, err := svc.MoveOfficeHours(ctx, "u1", block.UID, mustInstant(t, "2024-04-09T15:00:00Z"), &newDuration)
	require.NoError(t, err)
	require.EqualValues(t, 1800, moved.DurationSecs)

	old, err := svc.QueryDayOfficeHours(ctx, calendar.UID, mustInstant(t, "2024-04-02T08:00:00Z"))
	require.NoError(t, err)
	require.Empty(t, old)
	fresh, err := svc.QueryDayOfficeHours(ctx, calendar.UID, mustInstant(t, "2024-04-09T08:00:00Z"))
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	require.EqualValues(t, 1800, fresh[0].DurationSecs)

	require.NoError(t, svc.UnbindOfficeHours(ctx, "u1", block.UID))
	require.NoError(t, svc.DeleteOfficeHours(ctx, block.UID))
	require.Empty(t, mock.officeHours)
	require.Empty(t, mock.dayItems)
}

func TestMoveOfficeHoursDurationAppliesOnSameDay(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.CreateCalendar(ctx, "u1")
	require.NoError(t, err)
	block, err := svc.CreateOfficeHours(ctx, &CreateOfficeHoursRequest{
		Start:    mustInstant(t, "2024-04-02T15:00:00Z"),
		Duration: time.Hour,
	})
	require.NoError(t, err)
	require.NoError(t, svc.BindOfficeHours(ctx, "u1", block.UID))

	// Same day, new duration: the duration still updates.
	newDuration := 2 * time.Hour
	moved, err := svc.MoveOfficeHours(ctx, "u1", block.UID, mustInstant(t, "2024-04-02T16:00:00Z"), &newDuration)
	require.NoError(t, err)
	require.EqualValues(t, 7200, moved.DurationSecs)
}

func TestQueryEmptyDay(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	calendar, err := svc.CreateCalendar(ctx, "u1")
	require.NoError(t, err)

	scheduled, err := svc.QueryDayAssignments(ctx, calendar.UID, mustInstant(t, "2030-01-01T00:00:00Z"))
	require.NoError(t, err)
	require.NotNil(t, scheduled)
	require.Empty(t, scheduled)

	blocks, err := svc.QueryDayOfficeHours(ctx, calendar.UID, mustInstant(t, "2030-01-01T00:00:00Z"))
	require.NoError(t, err)
	require.Empty(t, blocks)
}

func TestQuerySkipsDanglingReference(t *testing.T) {
	ctx := context.Background()
	svc, mock := newTestService()

	calendar, err := svc.CreateCalendar(ctx, "u1")
	require.NoError(t, err)

	// Plant an index reference whose registry record is gone.
	dayKey := timezone.NormalizeDay(mustInstant(t, "2024-04-01T10:00:00Z"))
	require.NoError(t, mock.UpsertDayItem(ctx, &store.DayItem{
		ItemKind:    store.AssignmentItem,
		ItemUID:     "ghost",
		CalendarUID: calendar.UID,
		DayKey:      dayKey.String(),
	}))

	scheduled, err := svc.QueryDayAssignments(ctx, calendar.UID, mustInstant(t, "2024-04-01T10:00:00Z"))
	require.NoError(t, err)
	require.Empty(t, scheduled)
}

func TestCalendarsIsolateOwners(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	calendarA, err := svc.CreateCalendar(ctx, "alice")
	require.NoError(t, err)
	calendarB, err := svc.CreateCalendar(ctx, "bob")
	require.NoError(t, err)

	assignment, err := svc.CreateAssignment(ctx, &CreateAssignmentRequest{
		Name: "Problem set",
		Due:  mustInstant(t, "2024-04-03T10:00:00Z"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.BindAssignment(ctx, "alice", assignment.UID))

	at := mustInstant(t, "2024-04-03T10:00:00Z")
	onA, err := svc.QueryDayAssignments(ctx, calendarA.UID, at)
	require.NoError(t, err)
	require.Len(t, onA, 1)
	onB, err := svc.QueryDayAssignments(ctx, calendarB.UID, at)
	require.NoError(t, err)
	require.Empty(t, onB)
}
