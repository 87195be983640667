// Package task manages the work-item lifecycle and list filtering.
package task

import (
	"errors"
	"strings"
	"time"

	"worklog/internal/store"
)

var ErrDescriptionRequired = errors.New("task description is required")

// FilterAll matches any value in a filter dimension.
const FilterAll = "all"

// Manager owns task mutations for one user. Status transitions are
// permissive; the only derived field is CompletedOn, stamped on the
// first transition into completed and never cleared afterwards, even
// when the task is reopened.
type Manager struct {
	store  *store.Store
	userID string
	now    func() time.Time
}

func NewManager(s *store.Store, userID string) *Manager {
	return &Manager{store: s, userID: userID, now: time.Now}
}

// Create validates and persists a new task.
func (m *Manager) Create(t *store.Task) (*store.Task, error) {
	if strings.TrimSpace(t.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	t.UserID = m.userID
	if t.Status == store.TaskCompleted && t.CompletedOn == nil {
		now := m.now()
		t.CompletedOn = &now
	}
	return m.store.CreateTask(t)
}

// List returns the user's live tasks.
func (m *Manager) List() ([]store.Task, error) {
	return m.store.ListTasks(m.userID)
}

func (m *Manager) Get(id int64) (*store.Task, error) {
	return m.store.GetTask(id)
}

// SetStatus moves a task to the given status and persists it.
func (m *Manager) SetStatus(id int64, status string) (*store.Task, error) {
	t, err := m.store.GetTask(id)
	if err != nil {
		return nil, err
	}
	t.Status = status
	m.applyCompletionStamp(t)
	if err := m.store.UpdateTask(t); err != nil {
		return nil, err
	}
	return m.store.GetTask(id)
}

// Update validates and persists edits to an existing task.
func (m *Manager) Update(t *store.Task) error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrDescriptionRequired
	}
	m.applyCompletionStamp(t)
	return m.store.UpdateTask(t)
}

// Delete soft-deletes a task; it disappears from every query.
func (m *Manager) Delete(id int64) error {
	return m.store.SoftDeleteTask(id)
}

func (m *Manager) applyCompletionStamp(t *store.Task) {
	if t.Status == store.TaskCompleted && t.CompletedOn == nil {
		now := m.now()
		t.CompletedOn = &now
	}
}

// Filter narrows a task list. Dimensions combine with AND; empty or
// "all" values match everything.
type Filter struct {
	Status   string
	Category string
	Search   string
}

// Apply returns the tasks matching the filter, preserving input order.
// Applying the same filter twice yields the same result.
func (f Filter) Apply(tasks []store.Task) []store.Task {
	var out []store.Task
	for _, t := range tasks {
		if f.matches(&t) {
			out = append(out, t)
		}
	}
	return out
}

func (f Filter) matches(t *store.Task) bool {
	if f.Status != "" && f.Status != FilterAll && t.Status != f.Status {
		return false
	}
	if f.Category != "" && f.Category != FilterAll && t.Category != f.Category {
		return false
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.EnhancedDescription), q) &&
			!strings.Contains(strings.ToLower(t.TicketNumber), q) {
			return false
		}
	}
	return true
}
