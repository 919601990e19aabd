package analytics

import (
	"time"

	"retailpulse/internal/models"
)

const (
	PeriodCurrentMonth = "current_month"
	PeriodLast3Months  = "last_3_months"
	PeriodLast6Months  = "last_6_months"

	DefaultPeriod = PeriodCurrentMonth
)

// periods maps a period key to how many whole months before the current one
// the range starts. Every range ends at the end of the current month.
var periods = map[string]int{
	PeriodCurrentMonth: 0,
	PeriodLast3Months:  3,
	PeriodLast6Months:  6,
}

// PeriodKeys lists the recognised keys in a stable order.
func PeriodKeys() []string {
	return []string{PeriodCurrentMonth, PeriodLast3Months, PeriodLast6Months}
}

// ResolvePeriod returns the date bounds for key relative to now. Unknown keys
// resolve to the default period; ok reports whether key was recognised.
func ResolvePeriod(key string, now time.Time) (r models.DateRange, ok bool) {
	monthsBack, ok := periods[key]
	if !ok {
		monthsBack = periods[DefaultPeriod]
	}

	y, m, _ := now.Date()
	loc := now.Location()
	r.Start = time.Date(y, m-time.Month(monthsBack), 1, 0, 0, 0, 0, loc)
	r.End = time.Date(y, m+1, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	return r, ok
}

// NormalizePeriod maps unknown keys onto the default.
func NormalizePeriod(key string) string {
	if _, ok := periods[key]; ok {
		return key
	}
	return DefaultPeriod
}

// AddMonths moves t by n calendar months, clamping the day to the last valid
// day of the target month (Mar 31 - 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
