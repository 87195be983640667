// Package timeutil holds the duration arithmetic and calendar-window
// helpers shared by the session tracker, reports and invoices.
package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Minutes returns the whole minutes elapsed between start and end,
// truncated toward zero. A negative result means end precedes start;
// validation of that is the caller's concern.
func Minutes(start, end time.Time) int {
	return int(end.Sub(start).Minutes())
}

// MinutesToHours converts minutes to decimal hours rounded to 2 places.
func MinutesToHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}

// BillableHours computes (total - break) minutes as decimal hours.
// Negative or zero results are returned as-is; they mark invalid
// sessions and are flagged upstream.
func BillableHours(totalMinutes, breakMinutes int) float64 {
	return MinutesToHours(totalMinutes - breakMinutes)
}

// HoursString renders decimal hours without trailing zeros (7.5, 8, 2.25).
func HoursString(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// FormatMinutes renders minutes as prose, e.g. "2 hours 15 minutes".
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%d %s %d %s", hours, plural(hours, "hour"), mins, plural(mins, "minute"))
	case hours > 0:
		return fmt.Sprintf("%d %s", hours, plural(hours, "hour"))
	default:
		return fmt.Sprintf("%d %s", mins, plural(mins, "minute"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// FormatClock renders a wall-clock time like "3:45 PM".
func FormatClock(t time.Time) string {
	return t.Local().Format("3:04 PM")
}

// FormatLongDate renders "Monday, January 2, 2006".
func FormatLongDate(t time.Time) string {
	return t.Local().Format("Monday, January 2, 2006")
}

// FormatShortDate renders "Monday Jan 2, 2006".
func FormatShortDate(t time.Time) string {
	return t.Local().Format("Monday Jan 2, 2006")
}

// ISODate renders "2006-01-02".
func ISODate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// FilenameDate renders "2006_01_02", used for generated file names.
func FilenameDate(t time.Time) string {
	return t.Local().Format("2006_01_02")
}

// DayBounds returns the local calendar-day window containing t as a
// half-open interval [start, end).
func DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.Local()
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return start, start.AddDate(0, 0, 1)
}

// WeekBounds returns the local calendar-week window containing t as a
// half-open interval [start, end), where weekStart names the first day
// of the week.
func WeekBounds(t time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	dayStart, _ := DayBounds(t)
	offset := (int(dayStart.Weekday()) - int(weekStart) + 7) % 7
	start := dayStart.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	al, bl := a.Local(), b.Local()
	return al.Year() == bl.Year() && al.Month() == bl.Month() && al.Day() == bl.Day()
}
