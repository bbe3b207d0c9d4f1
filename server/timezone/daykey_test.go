package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDay(t *testing.T) {
	morning := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 4, 1, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	require.Equal(t, DayKey("2024-04-01"), NormalizeDay(morning))
	require.Equal(t, NormalizeDay(morning), NormalizeDay(evening))
	require.NotEqual(t, NormalizeDay(evening), NormalizeDay(nextDay))
}

func TestNormalizeDayReducesToUTC(t *testing.T) {
	// 23:00 in UTC-5 is 04:00 the next day in UTC; the key follows the UTC date.
	loc := time.FixedZone("UTC-5", -5*60*60)
	lateEvening := time.Date(2024, 4, 1, 23, 0, 0, 0, loc)
	require.Equal(t, DayKey("2024-04-02"), NormalizeDay(lateEvening))

	// Same instant expressed in different zones yields the same key.
	require.Equal(t, NormalizeDay(lateEvening), NormalizeDay(lateEvening.UTC()))
}

func TestNormalizeDayIsPure(t *testing.T) {
	instant := time.Date(2024, 4, 5, 14, 30, 0, 0, time.UTC)
	first := NormalizeDay(instant)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, NormalizeDay(instant))
	}
}

func TestNormalizeDayTs(t *testing.T) {
	instant := time.Date(2024, 4, 5, 14, 30, 0, 0, time.UTC)
	require.Equal(t, NormalizeDay(instant), NormalizeDayTs(instant.Unix()))
}

func TestParseDayKey(t *testing.T) {
	key, err := ParseDayKey("2024-04-01")
	require.NoError(t, err)
	require.Equal(t, DayKey("2024-04-01"), key)

	for _, invalid := range []string{"", "2024-13-01", "20240401", "2024-04-01T10:00:00Z", "not-a-day"} {
		_, err := ParseDayKey(invalid)
		require.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestDayKeyTime(t *testing.T) {
	key := DayKey("2024-04-01")
	require.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), key.Time())
	require.True(t, DayKey("garbage").Time().IsZero())
}
