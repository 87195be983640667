package report

import (
	"fmt"
	"time"

	"worklog/internal/store"
	"worklog/internal/timeutil"
)

// MinWeeklyTasks is the planned-task floor for the weekly report.
const MinWeeklyTasks = 5

// MinTasksError rejects a weekly report whose week has too few planned
// tasks. No report text is produced alongside it.
type MinTasksError struct {
	Count int
}

func (e *MinTasksError) Error() string {
	return fmt.Sprintf("Minimum %d tasks required for weekly report. Currently: %d tasks", MinWeeklyTasks, e.Count)
}

// Builder assembles report inputs from the store and renders them.
// Queries use local calendar-day windows; the week window starts on
// the configured weekday.
type Builder struct {
	store     *store.Store
	userID    string
	weekStart time.Weekday
}

func NewBuilder(s *store.Store, userID string, weekStart time.Weekday) *Builder {
	return &Builder{store: s, userID: userID, weekStart: weekStart}
}

// Hours renders the hours-completed report for date's calendar day.
func (b *Builder) Hours(date time.Time) (string, error) {
	dayStart, dayEnd := timeutil.DayBounds(date)
	entries, err := b.store.EntriesInRange(b.userID, dayStart, dayEnd)
	if err != nil {
		return "", err
	}

	total := 0.0
	for _, e := range entries {
		total += e.BillableHours
	}
	return RenderHours(HoursData{Date: date, Entries: entries, TotalHours: total}), nil
}

// ProgressTracker renders the standup report for date.
func (b *Builder) ProgressTracker(date time.Time) (string, error) {
	ydayStart, ydayEnd := timeutil.DayBounds(date.AddDate(0, 0, -1))
	previous, err := b.store.TasksCompletedBetween(b.userID, ydayStart, ydayEnd)
	if err != nil {
		return "", err
	}

	dayStart, dayEnd := timeutil.DayBounds(date)
	today, err := b.store.TasksPlannedBetween(b.userID, dayStart, dayEnd)
	if err != nil {
		return "", err
	}

	blocked, err := b.store.TasksByStatus(b.userID, store.TaskBlocked)
	if err != nil {
		return "", err
	}

	return RenderProgress(ProgressData{PreviousDay: previous, Today: today, Blocked: blocked}), nil
}

// Daily renders the end-of-day report for date.
func (b *Builder) Daily(date time.Time) (string, error) {
	dayStart, dayEnd := timeutil.DayBounds(date)
	completed, err := b.store.TasksCompletedBetween(b.userID, dayStart, dayEnd)
	if err != nil {
		return "", err
	}

	var withChallenges []store.Task
	for _, t := range completed {
		if len(t.Challenges) > 0 {
			withChallenges = append(withChallenges, t)
		}
	}

	tomorrowStart, tomorrowEnd := timeutil.DayBounds(date.AddDate(0, 0, 1))
	tomorrow, err := b.store.TasksPlannedBetween(b.userID, tomorrowStart, tomorrowEnd)
	if err != nil {
		return "", err
	}

	return RenderDaily(DailyData{
		Date:           date,
		Completed:      completed,
		WithChallenges: withChallenges,
		Tomorrow:       tomorrow,
	}), nil
}

// Weekly renders the weekly report for the calendar week containing
// date. Fewer than MinWeeklyTasks planned tasks in the week is a
// validation failure and suppresses the report entirely.
func (b *Builder) Weekly(date time.Time) (string, error) {
	weekStart, weekEnd := timeutil.WeekBounds(date, b.weekStart)

	planned, err := b.store.TasksPlannedBetween(b.userID, weekStart, weekEnd)
	if err != nil {
		return "", err
	}
	if len(planned) < MinWeeklyTasks {
		return "", &MinTasksError{Count: len(planned)}
	}

	completed, err := b.store.TasksCompletedBetween(b.userID, weekStart, weekEnd)
	if err != nil {
		return "", err
	}

	var inProgress []store.Task
	for _, t := range planned {
		if t.Status == store.TaskInProgress ||
			(t.Status == store.TaskTodo && t.CompletionPercentage > 0) {
			inProgress = append(inProgress, t)
		}
	}

	nextWeek, err := b.store.TasksPlannedBetween(b.userID, weekEnd, weekEnd.AddDate(0, 0, 7))
	if err != nil {
		return "", err
	}
	if len(nextWeek) == 0 {
		// Carry-overs double as next week's plan when nothing is scheduled.
		nextWeek = inProgress
	}

	return RenderWeekly(WeeklyData{
		WeekStart:  weekStart,
		WeekEnd:    weekEnd.AddDate(0, 0, -1),
		Planned:    planned,
		Completed:  completed,
		InProgress: inProgress,
		NextWeek:   nextWeek,
	}), nil
}
