package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthRangeUsesWIBCalendar(t *testing.T) {
	t.Parallel()

	// 2026-02-28 20:00 UTC is already March 1st in WIB.
	start, end := MonthRange(time.Date(2026, 2, 28, 20, 0, 0, 0, time.UTC))

	assert.Equal(t, "2026-03-01 00:00:00", start.Format(SavedAtLayout))
	assert.Equal(t, "2026-03-31 23:59:59", end.Format(SavedAtLayout))
}

func TestTrailingWeek(t *testing.T) {
	t.Parallel()

	start, end := TrailingWeek(time.Date(2026, 3, 3, 10, 0, 0, 0, WIB))

	assert.Equal(t, "2026-02-25 00:00:00", start.Format(SavedAtLayout))
	assert.Equal(t, "2026-03-03 23:59:59", end.Format(SavedAtLayout))
}

func TestFillDays(t *testing.T) {
	t.Parallel()

	start, end := TrailingWeek(time.Date(2026, 3, 3, 10, 0, 0, 0, WIB))
	filled := FillDays(start, end, []DailyTotal{
		{Day: time.Date(2026, 2, 26, 0, 0, 0, 0, WIB), Total: 10_000},
		{Day: time.Date(2026, 3, 3, 0, 0, 0, 0, WIB), Total: 5_000},
	})

	require.Len(t, filled, 7)
	assert.Equal(t, "25/02", filled[0].Label())
	assert.Equal(t, int64(0), filled[0].Total)
	assert.Equal(t, int64(10_000), filled[1].Total)
	assert.Equal(t, "03/03", filled[6].Label())
	assert.Equal(t, int64(5_000), filled[6].Total)
}
