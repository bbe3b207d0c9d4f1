package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCalendarDayUID(t *testing.T) {
	require.Equal(t, "cal-1/2024-04-01", CalendarDayUID("cal-1", "2024-04-01"))

	item := &DayItem{
		ItemKind:    AssignmentItem,
		ItemUID:     "a1",
		CalendarUID: "cal-1",
		DayKey:      "2024-04-01",
	}
	require.Equal(t, "cal-1/2024-04-01", item.CalendarDayUID())
}

func TestAssignmentParseDueTime(t *testing.T) {
	due := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	assignment := &Assignment{DueTs: due.Unix()}
	require.True(t, assignment.ParseDueTime().Equal(due))
}

func TestOfficeHoursDuration(t *testing.T) {
	block := &OfficeHours{
		StartTs:      time.Date(2024, 4, 2, 15, 0, 0, 0, time.UTC).Unix(),
		DurationSecs: 3600,
	}
	require.Equal(t, time.Hour, block.GetDuration())
	require.Equal(t, block.StartTs+3600, block.EndTs())
}
