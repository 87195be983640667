package timeutil

import (
	"testing"
	"time"
)

func TestMinutes(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		end  time.Time
		want int
	}{
		{start.Add(90 * time.Minute), 90},
		{start.Add(59 * time.Second), 0},
		{start.Add(61 * time.Second), 1},
		{start.Add(90*time.Minute + 59*time.Second), 90},
		{start, 0},
		{start.Add(-30 * time.Minute), -30},
	}
	for _, c := range cases {
		if got := Minutes(start, c.end); got != c.want {
			t.Errorf("Minutes(start, %v) = %d, want %d", c.end, got, c.want)
		}
	}
}

func TestMinutesToHours(t *testing.T) {
	cases := []struct {
		minutes int
		want    float64
	}{
		{60, 1},
		{90, 1.5},
		{0, 0},
		{1, 0.02},
		{50, 0.83},
		{100, 1.67},
		{480, 8},
		{125, 2.08},
	}
	for _, c := range cases {
		if got := MinutesToHours(c.minutes); got != c.want {
			t.Errorf("MinutesToHours(%d) = %v, want %v", c.minutes, got, c.want)
		}
	}
}

func TestMinutesToHoursMonotonic(t *testing.T) {
	prev := MinutesToHours(0)
	for m := 1; m <= 600; m++ {
		h := MinutesToHours(m)
		if h < prev {
			t.Fatalf("MinutesToHours decreased at %d: %v < %v", m, h, prev)
		}
		prev = h
	}
}

func TestBillableHours(t *testing.T) {
	cases := []struct {
		total, brk int
		want       float64
	}{
		{480, 60, 7},
		{90, 30, 1},
		{60, 60, 0},
		{30, 60, -0.5},
	}
	for _, c := range cases {
		if got := BillableHours(c.total, c.brk); got != c.want {
			t.Errorf("BillableHours(%d, %d) = %v, want %v", c.total, c.brk, got, c.want)
		}
	}
}

func TestHoursString(t *testing.T) {
	cases := []struct {
		h    float64
		want string
	}{
		{7.5, "7.5"},
		{8, "8"},
		{2.25, "2.25"},
		{0, "0"},
	}
	for _, c := range cases {
		if got := HoursString(c.h); got != c.want {
			t.Errorf("HoursString(%v) = %q, want %q", c.h, got, c.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{135, "2 hours 15 minutes"},
		{61, "1 hour 1 minute"},
		{120, "2 hours"},
		{45, "45 minutes"},
		{1, "1 minute"},
		{0, "0 minutes"},
	}
	for _, c := range cases {
		if got := FormatMinutes(c.minutes); got != c.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2026, 3, 2, 15, 30, 45, 0, time.Local)
	start, end := DayBounds(at)

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("start not at midnight: %v", start)
	}
	if !start.Before(at) || !at.Before(end) {
		t.Fatalf("at %v outside [%v, %v)", at, start, end)
	}
	if got := end.Sub(start); got != 24*time.Hour {
		t.Fatalf("day length %v, want 24h", got)
	}
}

func TestDayBoundsMidnight(t *testing.T) {
	at := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	start, end := DayBounds(at)
	if !start.Equal(at) {
		t.Fatalf("midnight should be its own day start, got %v", start)
	}
	if end.Day() != 3 {
		t.Fatalf("end should be next day, got %v", end)
	}
}

func TestWeekBoundsSunday(t *testing.T) {
	// 2026-03-04 is a Wednesday
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	start, end := WeekBounds(at, time.Sunday)

	if start.Weekday() != time.Sunday {
		t.Fatalf("week start is %v, want Sunday", start.Weekday())
	}
	if start.Day() != 1 || start.Month() != time.March {
		t.Fatalf("week start %v, want March 1", start)
	}
	if got := end.Sub(start); got != 7*24*time.Hour {
		t.Fatalf("week length %v, want 168h", got)
	}
}

func TestWeekBoundsMonday(t *testing.T) {
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	start, _ := WeekBounds(at, time.Monday)

	if start.Weekday() != time.Monday {
		t.Fatalf("week start is %v, want Monday", start.Weekday())
	}
	if start.Day() != 2 {
		t.Fatalf("week start %v, want March 2", start)
	}
}

func TestWeekBoundsOnWeekStart(t *testing.T) {
	// A Sunday stays in its own week.
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	start, _ := WeekBounds(at, time.Sunday)
	if start.Day() != 1 {
		t.Fatalf("Sunday should start its own week, got %v", start)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	b := time.Date(2026, 3, 2, 23, 59, 59, 0, time.Local)
	c := time.Date(2026, 3, 3, 0, 0, 0, 0, time.Local)

	if !SameDay(a, b) {
		t.Error("same calendar day should match")
	}
	if SameDay(b, c) {
		t.Error("adjacent days should not match")
	}
}

func TestFormatDates(t *testing.T) {
	at := time.Date(2026, 3, 2, 15, 4, 0, 0, time.Local)

	if got := FormatClock(at); got != "3:04 PM" {
		t.Errorf("FormatClock = %q", got)
	}
	if got := FormatLongDate(at); got != "Monday, March 2, 2026" {
		t.Errorf("FormatLongDate = %q", got)
	}
	if got := FormatShortDate(at); got != "Monday Mar 2, 2026" {
		t.Errorf("FormatShortDate = %q", got)
	}
	if got := ISODate(at); got != "2026-03-02" {
		t.Errorf("ISODate = %q", got)
	}
	if got := FilenameDate(at); got != "2026_03_02" {
		t.Errorf("FilenameDate = %q", got)
	}
}
