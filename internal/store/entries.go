package store

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateEntry inserts a new active session that started at clockIn.
func (s *Store) CreateEntry(userID string, clockIn time.Time) (*TimeEntry, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO time_entries (user_id, clock_in, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		userID, clockIn.UTC().Format(time.RFC3339), EntryActive, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetEntry(id)
}

// GetEntry loads an entry with its breaks.
func (s *Store) GetEntry(id int64) (*TimeEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, clock_in, clock_out, total_duration, break_duration, billable_hours, status, notes, created_at, updated_at
		 FROM time_entries WHERE id = ?`, id,
	)
	e, err := scanEntry(row)
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	if err := s.loadBreaks(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ActiveEntry returns the user's running session, or nil when clocked out.
func (s *Store) ActiveEntry(userID string) (*TimeEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, clock_in, clock_out, total_duration, break_duration, billable_hours, status, notes, created_at, updated_at
		 FROM time_entries WHERE user_id = ? AND status = ? ORDER BY id DESC LIMIT 1`,
		userID, EntryActive,
	)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active entry: %w", err)
	}
	if err := s.loadBreaks(e); err != nil {
		return nil, err
	}
	return e, nil
}

// AddBreak opens a new break on an entry.
func (s *Store) AddBreak(entryID int64, start time.Time) (*Break, error) {
	res, err := s.db.Exec(
		`INSERT INTO breaks (entry_id, start_time) VALUES (?, ?)`,
		entryID, start.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("add break: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Break{ID: id, EntryID: entryID, StartTime: start}, nil
}

// CloseBreak ends a break and records its duration in minutes.
func (s *Store) CloseBreak(id int64, end time.Time, minutes int) error {
	_, err := s.db.Exec(
		`UPDATE breaks SET end_time = ?, duration = ? WHERE id = ?`,
		end.UTC().Format(time.RFC3339), minutes, id,
	)
	if err != nil {
		return fmt.Errorf("close break: %w", err)
	}
	return nil
}

// CompleteEntry stamps the clock-out instant and the computed durations.
func (s *Store) CompleteEntry(id int64, clockOut time.Time, totalMinutes, breakMinutes int, billableHours float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE time_entries
		 SET clock_out = ?, total_duration = ?, break_duration = ?, billable_hours = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		clockOut.UTC().Format(time.RFC3339), totalMinutes, breakMinutes, billableHours, EntryCompleted, now, id,
	)
	if err != nil {
		return fmt.Errorf("complete entry %d: %w", id, err)
	}
	return nil
}

// UpdateBreakTotal refreshes the cached break duration on an entry.
func (s *Store) UpdateBreakTotal(id int64, breakMinutes int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE time_entries SET break_duration = ?, updated_at = ? WHERE id = ?`,
		breakMinutes, now, id,
	)
	return err
}

func (s *Store) UpdateEntryNotes(id int64, notes string) error {
	_, err := s.db.Exec(`UPDATE time_entries SET notes = ? WHERE id = ?`, notes, id)
	return err
}

// EntriesInRange lists entries whose clock-in falls in [from, to),
// oldest first, breaks included.
func (s *Store) EntriesInRange(userID string, from, to time.Time) ([]TimeEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, clock_in, clock_out, total_duration, break_duration, billable_hours, status, notes, created_at, updated_at
		 FROM time_entries
		 WHERE user_id = ? AND clock_in >= ? AND clock_in < ?
		 ORDER BY clock_in`,
		userID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("entries in range: %w", err)
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		if err := s.loadBreaks(&entries[i]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// RecentEntries lists the newest entries first.
func (s *Store) RecentEntries(userID string, limit int) ([]TimeEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, clock_in, clock_out, total_duration, break_duration, billable_hours, status, notes, created_at, updated_at
		 FROM time_entries WHERE user_id = ? ORDER BY clock_in DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent entries: %w", err)
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		if err := s.loadBreaks(&entries[i]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// DailyBillable sums billable hours per calendar day of clock-in for
// completed entries in [from, to).
func (s *Store) DailyBillable(userID string, from, to time.Time) ([]DailyHours, error) {
	rows, err := s.db.Query(
		`SELECT date(clock_in) AS day, COALESCE(SUM(billable_hours), 0)
		 FROM time_entries
		 WHERE user_id = ? AND status = ? AND clock_in >= ? AND clock_in < ?
		 GROUP BY day ORDER BY day`,
		userID, EntryCompleted, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily billable: %w", err)
	}
	defer rows.Close()

	var days []DailyHours
	for rows.Next() {
		var d DailyHours
		if err := rows.Scan(&d.Date, &d.Hours); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*TimeEntry, error) {
	e := &TimeEntry{}
	var clockIn, createdAt, updatedAt string
	var clockOut sql.NullString

	err := row.Scan(&e.ID, &e.UserID, &clockIn, &clockOut, &e.TotalDuration, &e.BreakDuration,
		&e.BillableHours, &e.Status, &e.Notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	e.ClockIn, _ = time.Parse(time.RFC3339, clockIn)
	if clockOut.Valid {
		t, _ := time.Parse(time.RFC3339, clockOut.String)
		e.ClockOut = &t
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return e, nil
}

func (s *Store) loadBreaks(e *TimeEntry) error {
	rows, err := s.db.Query(
		`SELECT id, entry_id, start_time, end_time, duration FROM breaks WHERE entry_id = ? ORDER BY id`,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("load breaks for entry %d: %w", e.ID, err)
	}
	defer rows.Close()

	e.Breaks = nil
	for rows.Next() {
		var b Break
		var start string
		var end sql.NullString
		if err := rows.Scan(&b.ID, &b.EntryID, &start, &end, &b.Duration); err != nil {
			return err
		}
		b.StartTime, _ = time.Parse(time.RFC3339, start)
		if end.Valid {
			t, _ := time.Parse(time.RFC3339, end.String)
			b.EndTime = &t
		}
		e.Breaks = append(e.Breaks, b)
	}
	return rows.Err()
}
