package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"worklog/internal/timeutil"
)

// CreateTask inserts a task and returns it with defaults applied.
// PlannedFor is stored as a calendar date.
func (s *Store) CreateTask(t *Task) (*Task, error) {
	if t.UserID == "" {
		t.UserID = DefaultUserID
	}
	if t.Status == "" {
		t.Status = TaskTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.EnhancedDescription == "" {
		t.EnhancedDescription = t.Description
	}
	if t.PlannedFor.IsZero() {
		t.PlannedFor = time.Now()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO tasks (user_id, description, enhanced_description, category, ticket_number, status,
		                    completion_percentage, priority, blocker_reason, time_entry_id, planned_for,
		                    completed_on, challenges, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Description, t.EnhancedDescription, t.Category, t.TicketNumber, t.Status,
		t.CompletionPercentage, t.Priority, t.BlockerReason, t.TimeEntryID, timeutil.ISODate(t.PlannedFor),
		timePtrStr(t.CompletedOn), strings.Join(t.Challenges, "\n"), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

func (s *Store) GetTask(id int64) (*Task, error) {
	row := s.db.QueryRow(taskSelect+` WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// ListTasks returns the user's live tasks, oldest first.
func (s *Store) ListTasks(userID string) ([]Task, error) {
	return s.queryTasks(taskSelect+` WHERE user_id = ? AND deleted_at IS NULL ORDER BY id`, userID)
}

// TasksPlannedBetween lists live tasks planned for a date in [from, to).
func (s *Store) TasksPlannedBetween(userID string, from, to time.Time) ([]Task, error) {
	return s.queryTasks(
		taskSelect+` WHERE user_id = ? AND deleted_at IS NULL AND planned_for >= ? AND planned_for < ? ORDER BY id`,
		userID, timeutil.ISODate(from), timeutil.ISODate(to),
	)
}

// TasksCompletedBetween lists live completed tasks whose completion
// instant falls in [from, to).
func (s *Store) TasksCompletedBetween(userID string, from, to time.Time) ([]Task, error) {
	return s.queryTasks(
		taskSelect+` WHERE user_id = ? AND deleted_at IS NULL AND status = ?
		 AND completed_on IS NOT NULL AND completed_on >= ? AND completed_on < ? ORDER BY id`,
		userID, TaskCompleted, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
}

// TasksByStatus lists live tasks carrying the given status.
func (s *Store) TasksByStatus(userID, status string) ([]Task, error) {
	return s.queryTasks(
		taskSelect+` WHERE user_id = ? AND deleted_at IS NULL AND status = ? ORDER BY id`,
		userID, status,
	)
}

// UpdateTask writes every editable field of the task.
func (s *Store) UpdateTask(t *Task) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE tasks SET description = ?, enhanced_description = ?, category = ?, ticket_number = ?,
		        status = ?, completion_percentage = ?, priority = ?, blocker_reason = ?, time_entry_id = ?,
		        planned_for = ?, completed_on = ?, challenges = ?, updated_at = ?
		 WHERE id = ?`,
		t.Description, t.EnhancedDescription, t.Category, t.TicketNumber,
		t.Status, t.CompletionPercentage, t.Priority, t.BlockerReason, t.TimeEntryID,
		timeutil.ISODate(t.PlannedFor), timePtrStr(t.CompletedOn), strings.Join(t.Challenges, "\n"), now,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID, err)
	}
	return nil
}

// SoftDeleteTask marks a task deleted; queries exclude it from then on.
func (s *Store) SoftDeleteTask(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`UPDATE tasks SET deleted_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

const taskSelect = `SELECT id, user_id, description, enhanced_description, category, ticket_number, status,
	completion_percentage, priority, blocker_reason, time_entry_id, planned_for, completed_on, challenges,
	created_at, updated_at, deleted_at FROM tasks`

func (s *Store) queryTasks(query string, args ...any) ([]Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func scanTask(row rowScanner) (*Task, error) {
	t := &Task{}
	var plannedFor, createdAt, updatedAt, challenges string
	var completedOn, deletedAt sql.NullString
	var timeEntryID sql.NullInt64

	err := row.Scan(&t.ID, &t.UserID, &t.Description, &t.EnhancedDescription, &t.Category, &t.TicketNumber,
		&t.Status, &t.CompletionPercentage, &t.Priority, &t.BlockerReason, &timeEntryID, &plannedFor,
		&completedOn, &challenges, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}
	if timeEntryID.Valid {
		t.TimeEntryID = &timeEntryID.Int64
	}
	t.PlannedFor, _ = time.ParseInLocation("2006-01-02", plannedFor, time.Local)
	if completedOn.Valid {
		ts, _ := time.Parse(time.RFC3339, completedOn.String)
		t.CompletedOn = &ts
	}
	if deletedAt.Valid {
		ts, _ := time.Parse(time.RFC3339, deletedAt.String)
		t.DeletedAt = &ts
	}
	if challenges != "" {
		t.Challenges = strings.Split(challenges, "\n")
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}

func timePtrStr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
