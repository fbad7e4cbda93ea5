package progress

import (
	"math"
	"time"
)

// ISODate is the wire format for calendar days. The engine treats dates as
// abstract days: no timezone, no time-of-day component.
const ISODate = "2006-01-02"

func parseISO(date string) (time.Time, bool) {
	t, err := time.ParseInLocation(ISODate, date, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ShiftDate moves an ISO date by delta days, calendar-correct across month
// and year boundaries. Malformed input is returned unchanged.
func ShiftDate(date string, delta int) string {
	t, ok := parseISO(date)
	if !ok {
		return date
	}
	return t.AddDate(0, 0, delta).Format(ISODate)
}

// WeekStart returns the Monday of the week containing date.
func WeekStart(date string) string {
	t, ok := parseISO(date)
	if !ok {
		return date
	}
	shift := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -shift).Format(ISODate)
}

// WeekEnd returns the Sunday of the week containing date.
func WeekEnd(date string) string {
	return ShiftDate(WeekStart(date), 6)
}

// DaysBetween returns end minus start in whole days.
func DaysBetween(start, end string) int {
	s, okS := parseISO(start)
	e, okE := parseISO(end)
	if !okS || !okE {
		return 0
	}
	return int(e.Sub(s).Hours() / 24)
}

// EnumerateDates lists every date from start to end inclusive, in order.
func EnumerateDates(start, end string) []string {
	s, okS := parseISO(start)
	e, okE := parseISO(end)
	if !okS || !okE || s.After(e) {
		return nil
	}

	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(ISODate))
	}
	return dates
}

// EnumerateWeekStarts lists the Monday of every week intersecting
// [start, end], stepping 7 days from the first.
func EnumerateWeekStarts(start, end string) []string {
	first := WeekStart(start)
	s, okS := parseISO(first)
	e, okE := parseISO(end)
	if !okS || !okE || s.After(e) {
		return nil
	}

	var weeks []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 7) {
		weeks = append(weeks, d.Format(ISODate))
	}
	return weeks
}

func dayLabel(date string) string {
	t, ok := parseISO(date)
	if !ok {
		return date
	}
	return t.Format("Mon 2 Jan")
}

// round1 rounds CU values and percentages for display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round3 keeps internal ratios at 3 decimals.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
