// Package session drives the clock-in / break / clock-out lifecycle.
//
// There is no in-memory state: the current position in the lifecycle is
// always re-derived by querying the store for an active entry. That
// makes the invariants (one active session, one open break) check-then-
// act, which is only safe with a single writer.
package session

import (
	"errors"
	"fmt"
	"time"

	"worklog/internal/store"
	"worklog/internal/timeutil"
)

// State-conflict errors. These surface to the user verbatim and leave
// persisted state untouched.
var (
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNoActiveSession  = errors.New("no active session")
	ErrBreakInProgress  = errors.New("break already in progress")
	ErrNoActiveBreak    = errors.New("no active break")
)

// Tracker operates the session lifecycle for one user.
type Tracker struct {
	store  *store.Store
	userID string
	now    func() time.Time
}

func New(s *store.Store, userID string) *Tracker {
	return &Tracker{store: s, userID: userID, now: time.Now}
}

// Active returns the running entry, or nil when clocked out.
func (t *Tracker) Active() (*store.TimeEntry, error) {
	return t.store.ActiveEntry(t.userID)
}

// ClockIn opens a new session. Fails with ErrAlreadyClockedIn when one
// is already running.
func (t *Tracker) ClockIn() (*store.TimeEntry, error) {
	active, err := t.store.ActiveEntry(t.userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrAlreadyClockedIn
	}
	return t.store.CreateEntry(t.userID, t.now())
}

// StartBreak opens a break on the running session.
func (t *Tracker) StartBreak() (*store.TimeEntry, error) {
	active, err := t.store.ActiveEntry(t.userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, ErrNoActiveSession
	}
	if active.OpenBreak() != nil {
		return nil, ErrBreakInProgress
	}
	if _, err := t.store.AddBreak(active.ID, t.now()); err != nil {
		return nil, err
	}
	return t.store.GetEntry(active.ID)
}

// EndBreak closes the open break and records its duration.
func (t *Tracker) EndBreak() (*store.TimeEntry, error) {
	active, err := t.store.ActiveEntry(t.userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, ErrNoActiveSession
	}
	open := active.OpenBreak()
	if open == nil {
		return nil, ErrNoActiveBreak
	}

	now := t.now()
	minutes := timeutil.Minutes(open.StartTime, now)
	if err := t.store.CloseBreak(open.ID, now, minutes); err != nil {
		return nil, err
	}
	if err := t.store.UpdateBreakTotal(active.ID, active.BreakMinutes()+minutes); err != nil {
		return nil, err
	}
	return t.store.GetEntry(active.ID)
}

// ClockOut ends the running session. An open break is closed at the
// clock-out instant before totals are computed.
func (t *Tracker) ClockOut() (*store.TimeEntry, error) {
	active, err := t.store.ActiveEntry(t.userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, ErrNoActiveSession
	}

	now := t.now()
	breakMinutes := active.BreakMinutes()
	if open := active.OpenBreak(); open != nil {
		minutes := timeutil.Minutes(open.StartTime, now)
		if err := t.store.CloseBreak(open.ID, now, minutes); err != nil {
			return nil, err
		}
		breakMinutes += minutes
	}

	totalMinutes := timeutil.Minutes(active.ClockIn, now)
	billable := timeutil.BillableHours(totalMinutes, breakMinutes)

	completed := *active
	completed.ClockOut = &now
	if msgs := completed.Validate(); len(msgs) > 0 {
		return nil, fmt.Errorf("invalid session: %s", msgs[0])
	}

	if err := t.store.CompleteEntry(active.ID, now, totalMinutes, breakMinutes, billable); err != nil {
		return nil, err
	}
	return t.store.GetEntry(active.ID)
}
