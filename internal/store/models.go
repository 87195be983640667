package store

import (
	"fmt"
	"time"
)

// Time entry statuses.
const (
	EntryActive    = "active"
	EntryCompleted = "completed"
)

// Task statuses.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
	TaskBlocked    = "blocked"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// TaskCategories lists the recognized task categories in display order.
var TaskCategories = []string{
	"Development",
	"DevOps / Deployment",
	"Bug Fix",
	"Code Review",
	"Meeting",
	"Documentation",
	"Testing",
	"Research",
	"Ad-hoc / Unplanned",
	"Other",
}

// Invoice allocation modes.
const (
	ModeStandard = "standard"
	ModeCustom   = "custom"
)

// Invoice statuses. The store only ever creates invoices at draft;
// later states are advanced by workflows outside this program.
const (
	InvoiceDraft     = "draft"
	InvoiceGenerated = "generated"
	InvoiceSent      = "sent"
	InvoicePaid      = "paid"
)

// Break is one rest period inside a time entry. EndTime is nil while
// the break is still running.
type Break struct {
	ID        int64
	EntryID   int64
	StartTime time.Time
	EndTime   *time.Time
	Duration  int // minutes
}

// TimeEntry is one clock-in session. ClockOut is nil while active;
// durations and billable hours are computed at clock-out.
type TimeEntry struct {
	ID            int64
	UserID        string
	ClockIn       time.Time
	ClockOut      *time.Time
	Breaks        []Break
	TotalDuration int // minutes
	BreakDuration int // minutes
	BillableHours float64
	Status        string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OpenBreak returns the break with no end time, or nil. At most one
// break per entry may be open at a time.
func (e *TimeEntry) OpenBreak() *Break {
	for i := range e.Breaks {
		if e.Breaks[i].EndTime == nil {
			return &e.Breaks[i]
		}
	}
	return nil
}

// BreakMinutes sums the durations of finished breaks. Open breaks
// contribute nothing.
func (e *TimeEntry) BreakMinutes() int {
	total := 0
	for _, b := range e.Breaks {
		if b.EndTime != nil {
			total += b.Duration
		}
	}
	return total
}

// Validate reports human-readable problems with the entry's times.
func (e *TimeEntry) Validate() []string {
	var errs []string
	if e.ClockIn.IsZero() {
		errs = append(errs, "Clock in time is required")
	}
	if e.ClockOut != nil && !e.ClockIn.IsZero() && e.ClockOut.Before(e.ClockIn) {
		errs = append(errs, "Clock out time must be after clock in time")
	}
	for i, b := range e.Breaks {
		if b.EndTime != nil && b.EndTime.Before(b.StartTime) {
			errs = append(errs, fmt.Sprintf("Break %d: End time must be after start time", i+1))
		}
	}
	return errs
}

// Task is a discrete work item moving through todo, in-progress,
// completed and blocked.
type Task struct {
	ID                   int64
	UserID               string
	Description          string
	EnhancedDescription  string
	Category             string
	TicketNumber         string
	Status               string
	CompletionPercentage int
	Priority             string
	BlockerReason        string
	TimeEntryID          *int64
	PlannedFor           time.Time // calendar date
	CompletedOn          *time.Time
	Challenges           []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
}

// Invoice records one generated payout/share split over a period.
type Invoice struct {
	ID             int64
	UserID         string
	Number         string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	InvoiceDate    time.Time
	TotalHours     float64
	PayoutHours    float64
	ShareHours     float64
	HourlyRate     float64
	PayoutAmount   float64
	ShareAmount    float64
	TotalAmount    float64
	AllocationMode string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCustomSplit reports whether the payout hours were user-specified
// rather than derived from the standard 80-hour threshold.
func (inv *Invoice) IsCustomSplit() bool {
	return inv.AllocationMode == ModeCustom
}

type Setting struct {
	Key   string
	Value string
}

// DailyHours is one day's summed billable hours, used by the reports chart.
type DailyHours struct {
	Date  string // "2006-01-02"
	Hours float64
}
