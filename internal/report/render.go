// Package report turns stored tasks and time entries into the four
// plain-text report formats. Renderers are pure: they take snapshots
// of already-queried collections and return a single string, exact
// wording preserved for downstream copy/paste.
package report

import (
	"fmt"
	"strings"
	"time"

	"worklog/internal/store"
	"worklog/internal/timeutil"
)

// HoursData feeds the hours-completed report for one day.
type HoursData struct {
	Date       time.Time
	Entries    []store.TimeEntry
	TotalHours float64
}

// RenderHours lists each session of the day with its billable span.
func RenderHours(d HoursData) string {
	header := fmt.Sprintf("Hours Completed (%s)", timeutil.FormatShortDate(d.Date))
	if len(d.Entries) == 0 {
		return header + "\nNo hours logged for this day."
	}

	lines := []string{header}
	for _, e := range d.Entries {
		start := timeutil.FormatClock(e.ClockIn)
		end, duration := "In Progress", "In Progress"
		if e.ClockOut != nil {
			end = timeutil.FormatClock(*e.ClockOut)
			duration = timeutil.HoursString(timeutil.MinutesToHours(e.TotalDuration-e.BreakDuration)) + " hours"
		}
		lines = append(lines, fmt.Sprintf("%s - %s (%s)", start, end, duration))
	}
	lines = append(lines, fmt.Sprintf("Total Hours: %.1f Hours", d.TotalHours))
	return strings.Join(lines, "\n")
}

// ProgressData feeds the daily-standup progress tracker.
type ProgressData struct {
	PreviousDay []store.Task // completed yesterday
	Today       []store.Task // planned for today, any status
	Blocked     []store.Task // blocked, regardless of date
}

// RenderProgress emits the three standup sections. Today's list is
// narrowed to todo and in-progress tasks here.
func RenderProgress(d ProgressData) string {
	var lines []string

	lines = append(lines, "Previous Day's Progress")
	if len(d.PreviousDay) == 0 {
		lines = append(lines, "- No tasks completed")
	} else {
		for _, t := range d.PreviousDay {
			lines = append(lines, "- "+t.Description)
		}
	}

	lines = append(lines, "", "To Do:")
	var todo []store.Task
	for _, t := range d.Today {
		if t.Status == store.TaskTodo || t.Status == store.TaskInProgress {
			todo = append(todo, t)
		}
	}
	if len(todo) == 0 {
		lines = append(lines, "- No tasks planned")
	} else {
		for _, t := range todo {
			lines = append(lines, "- "+t.Description)
		}
	}

	lines = append(lines, "", "Blocker:")
	if len(d.Blocked) == 0 {
		lines = append(lines, "- None")
	} else {
		for _, t := range d.Blocked {
			line := "- " + t.Description
			if t.BlockerReason != "" {
				line += " - " + t.BlockerReason
			}
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

// DailyData feeds the end-of-day report.
type DailyData struct {
	Date           time.Time
	Completed      []store.Task
	WithChallenges []store.Task // completed tasks that recorded challenges
	Tomorrow       []store.Task
}

// RenderDaily emits the lettered end-of-day sections.
func RenderDaily(d DailyData) string {
	lines := []string{"Daily Report", timeutil.FormatLongDate(d.Date), ""}

	lines = append(lines, "A. Task Completed.")
	if len(d.Completed) == 0 {
		lines = append(lines, "- No tasks completed")
	} else {
		for _, t := range d.Completed {
			lines = append(lines, "- "+t.Description)
		}
	}
	lines = append(lines, "")

	lines = append(lines, "B. Challenges Encountered.")
	if len(d.WithChallenges) == 0 {
		lines = append(lines, "- None")
	} else {
		for _, t := range d.WithChallenges {
			for _, challenge := range t.Challenges {
				lines = append(lines, "- "+challenge)
			}
		}
	}
	lines = append(lines, "")

	lines = append(lines, "C. Goals for the Next Day.")
	if len(d.Tomorrow) == 0 {
		lines = append(lines, "- No goals set")
	} else {
		for _, t := range d.Tomorrow {
			lines = append(lines, "- "+t.Description)
		}
	}

	return strings.Join(lines, "\n")
}

// WeeklyData feeds the weekly report. WeekEnd is the last day of the
// week, inclusive.
type WeeklyData struct {
	WeekStart  time.Time
	WeekEnd    time.Time
	Planned    []store.Task
	Completed  []store.Task
	InProgress []store.Task
	NextWeek   []store.Task
}

// RenderWeekly emits objectives, deliverables, carry-overs and the
// next week's action plan.
func RenderWeekly(d WeeklyData) string {
	lines := []string{
		"Weekly Report",
		fmt.Sprintf("Week %s → %s", timeutil.ISODate(d.WeekStart), timeutil.ISODate(d.WeekEnd)),
		"",
	}

	lines = append(lines, "Objectives (Planned)")
	if len(d.Planned) == 0 {
		lines = append(lines, "- No objectives planned")
	} else {
		for _, t := range d.Planned {
			lines = append(lines, "- "+t.Description)
		}
	}
	lines = append(lines, "")

	lines = append(lines, "Deliverables (Completed)")
	if len(d.Completed) == 0 {
		lines = append(lines, "- No tasks completed this week")
	} else {
		for _, t := range d.Completed {
			lines = append(lines, "- ✅ "+t.Description)
		}
	}
	lines = append(lines, "")

	lines = append(lines, "In-Progress / Not Completed")
	if len(d.InProgress) == 0 {
		lines = append(lines, "- None")
	} else {
		for _, t := range d.InProgress {
			line := "- 🔄 " + t.Description
			if t.CompletionPercentage > 0 {
				line += fmt.Sprintf(" (%d%% complete)", t.CompletionPercentage)
			}
			lines = append(lines, line)
		}
	}
	lines = append(lines, "")

	lines = append(lines, "Action Plan for Next Week")
	if len(d.NextWeek) == 0 {
		lines = append(lines, "- Continue with current objectives")
	} else {
		for _, t := range d.NextWeek {
			lines = append(lines, "- "+t.Description)
		}
	}

	return strings.Join(lines, "\n")
}
