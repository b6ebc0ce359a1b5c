package domain

import "time"

const (
	DayLabelLayout = "02/01"
	weekLength     = 7
)

type DailyTotal struct {
	Day   time.Time
	Total int64
}

func (d DailyTotal) Label() string {
	return d.Day.Format(DayLabelLayout)
}

type Summary struct {
	Month      time.Time
	MonthTotal int64
	Days       []DailyTotal
	Week       []DailyTotal
}

func MonthRange(at time.Time) (time.Time, time.Time) {
	local := at.In(WIB)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, WIB)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// TrailingWeek covers the day of at and the six days before it.
func TrailingWeek(at time.Time) (time.Time, time.Time) {
	local := at.In(WIB)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, WIB)
	start := today.AddDate(0, 0, -(weekLength - 1))
	end := today.AddDate(0, 0, 1).Add(-time.Second)
	return start, end
}

func FillDays(from time.Time, to time.Time, totals []DailyTotal) []DailyTotal {
	byDay := make(map[string]int64, len(totals))
	for _, total := range totals {
		byDay[total.Day.In(WIB).Format(DateLayout)] += total.Total
	}

	start := dayStart(from)
	last := dayStart(to)
	var filled []DailyTotal
	for day := start; !day.After(last); day = day.AddDate(0, 0, 1) {
		filled = append(filled, DailyTotal{Day: day, Total: byDay[day.Format(DateLayout)]})
	}

	return filled
}

func dayStart(at time.Time) time.Time {
	local := at.In(WIB)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, WIB)
}
