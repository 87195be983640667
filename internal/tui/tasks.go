package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"worklog/internal/store"
	"worklog/internal/task"
	"worklog/internal/timeutil"
)

var taskStatuses = []string{store.TaskTodo, store.TaskInProgress, store.TaskCompleted, store.TaskBlocked}
var taskPriorities = []string{store.PriorityLow, store.PriorityMedium, store.PriorityHigh}

type tasksModel struct {
	store   *store.Store
	manager *task.Manager
	width   int
	height  int

	tasks    []store.Task
	filtered []store.Task
	cursor   int

	filter task.Filter

	formActive bool
	form       *huh.Form
	editingID  int64

	// Form values as pointers (survive value copies)
	fDescription *string
	fEnhanced    *string
	fCategory    *string
	fTicket      *string
	fStatus      *string
	fPriority    *string
	fPercent     *string
	fBlocker     *string
	fPlannedFor  *string
	fSearch      *string
	searchActive bool
}

func newTasksModel(s *store.Store) tasksModel {
	desc, enh, cat, ticket := "", "", "", ""
	status, prio, pct, blocker := "", "", "", ""
	planned, search := "", ""
	return tasksModel{
		store:        s,
		manager:      task.NewManager(s, store.DefaultUserID),
		fDescription: &desc,
		fEnhanced:    &enh,
		fCategory:    &cat,
		fTicket:      &ticket,
		fStatus:      &status,
		fPriority:    &prio,
		fPercent:     &pct,
		fBlocker:     &blocker,
		fPlannedFor:  &planned,
		fSearch:      &search,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type tasksDataMsg struct {
	tasks []store.Task
}

func (m tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, _ := m.manager.List()
		return tasksDataMsg{tasks: tasks}
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		m.tasks = msg.tasks
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Enter):
			if t := m.selected(); t != nil {
				return m.showForm(t)
			}
			return m, nil
		case key.Matches(msg, keys.Delete):
			if t := m.selected(); t != nil {
				return m, m.deleteTask(t.ID)
			}
			return m, nil
		case key.Matches(msg, keys.Status):
			if t := m.selected(); t != nil {
				return m, m.cycleStatus(t)
			}
			return m, nil
		case key.Matches(msg, keys.Filter):
			m.filter.Status = nextChoice(m.filter.Status, taskStatuses)
			m.applyFilter()
			return m, nil
		case key.Matches(msg, keys.Left):
			m.filter.Category = prevCategory(m.filter.Category)
			m.applyFilter()
			return m, nil
		case key.Matches(msg, keys.Right):
			m.filter.Category = nextChoice(m.filter.Category, store.TaskCategories)
			m.applyFilter()
			return m, nil
		case key.Matches(msg, keys.Search):
			return m.showSearchForm()
		case key.Matches(msg, keys.Back):
			m.filter = task.Filter{}
			*m.fSearch = ""
			m.applyFilter()
			return m, nil
		}
	}
	return m, nil
}

func (m *tasksModel) applyFilter() {
	m.filtered = m.filter.Apply(m.tasks)
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

func (m *tasksModel) selected() *store.Task {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[m.cursor]
}

func (m tasksModel) deleteTask(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.manager.Delete(id); err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return taskSavedMsg{}
	}
}

// cycleStatus advances todo → in-progress → completed → blocked → todo.
func (m tasksModel) cycleStatus(t *store.Task) tea.Cmd {
	next := taskStatuses[0]
	for i, s := range taskStatuses {
		if s == t.Status {
			next = taskStatuses[(i+1)%len(taskStatuses)]
			break
		}
	}
	id := t.ID
	return func() tea.Msg {
		updated, err := m.manager.SetStatus(id, next)
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return taskSavedMsg{task: updated}
	}
}

func (m tasksModel) showSearchForm() (tasksModel, tea.Cmd) {
	*m.fSearch = m.filter.Search
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Search").Value(m.fSearch),
		),
	).WithShowHelp(false)
	m.formActive = true
	m.searchActive = true
	return m, m.form.Init()
}

func (m tasksModel) showForm(t *store.Task) (tasksModel, tea.Cmd) {
	if t != nil {
		m.editingID = t.ID
		*m.fDescription = t.Description
		*m.fEnhanced = t.EnhancedDescription
		*m.fCategory = t.Category
		*m.fTicket = t.TicketNumber
		*m.fStatus = t.Status
		*m.fPriority = t.Priority
		*m.fPercent = strconv.Itoa(t.CompletionPercentage)
		*m.fBlocker = t.BlockerReason
		*m.fPlannedFor = timeutil.ISODate(t.PlannedFor)
	} else {
		m.editingID = 0
		*m.fDescription = ""
		*m.fEnhanced = ""
		*m.fCategory = store.TaskCategories[0]
		*m.fTicket = ""
		*m.fStatus = store.TaskTodo
		*m.fPriority = store.PriorityMedium
		*m.fPercent = "0"
		*m.fBlocker = ""
		*m.fPlannedFor = timeutil.ISODate(time.Now())
	}

	var categoryOpts []huh.Option[string]
	for _, c := range store.TaskCategories {
		categoryOpts = append(categoryOpts, huh.NewOption(c, c))
	}
	var statusOpts []huh.Option[string]
	for _, s := range taskStatuses {
		statusOpts = append(statusOpts, huh.NewOption(s, s))
	}
	var priorityOpts []huh.Option[string]
	for _, p := range taskPriorities {
		priorityOpts = append(priorityOpts, huh.NewOption(p, p))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Description").Value(m.fDescription),
			huh.NewInput().Title("Enhanced description").Value(m.fEnhanced),
			huh.NewSelect[string]().Title("Category").Options(categoryOpts...).Value(m.fCategory),
			huh.NewInput().Title("Ticket number").Value(m.fTicket),
		).Title("Task"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Status").Options(statusOpts...).Value(m.fStatus),
			huh.NewSelect[string]().Title("Priority").Options(priorityOpts...).Value(m.fPriority),
			huh.NewInput().Title("Completion %").Value(m.fPercent),
			huh.NewInput().Title("Blocker reason").Value(m.fBlocker),
			huh.NewInput().Title("Planned for (YYYY-MM-DD)").Value(m.fPlannedFor),
		).Title("Progress"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	m.searchActive = false
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		if m.searchActive {
			m.filter.Search = *m.fSearch
			m.applyFilter()
			return m, nil
		}
		return m, m.saveTask()
	}

	return m, cmd
}

func (m tasksModel) saveTask() tea.Cmd {
	editingID := m.editingID
	return func() tea.Msg {
		pct, _ := strconv.Atoi(*m.fPercent)
		planned, err := time.ParseInLocation("2006-01-02", *m.fPlannedFor, time.Local)
		if err != nil {
			planned = time.Now()
		}

		if editingID == 0 {
			t := &store.Task{
				Description:          *m.fDescription,
				EnhancedDescription:  *m.fEnhanced,
				Category:             *m.fCategory,
				TicketNumber:         *m.fTicket,
				Status:               *m.fStatus,
				Priority:             *m.fPriority,
				CompletionPercentage: pct,
				BlockerReason:        *m.fBlocker,
				PlannedFor:           planned,
			}
			created, err := m.manager.Create(t)
			if err != nil {
				return statusMsg{text: err.Error(), isError: true}
			}
			return taskSavedMsg{task: created}
		}

		t, err := m.manager.Get(editingID)
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		t.Description = *m.fDescription
		t.EnhancedDescription = *m.fEnhanced
		t.Category = *m.fCategory
		t.TicketNumber = *m.fTicket
		t.Status = *m.fStatus
		t.Priority = *m.fPriority
		t.CompletionPercentage = pct
		t.BlockerReason = *m.fBlocker
		t.PlannedFor = planned
		if err := m.manager.Update(t); err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return taskSavedMsg{task: t}
	}
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Task")
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()))
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Tasks"))
	rows = append(rows, mutedStyle.Render(m.filterLine()))
	rows = append(rows, "")

	if len(m.filtered) == 0 {
		rows = append(rows, mutedStyle.Render("  No tasks — press n to create one"))
	}

	visible := min(len(m.filtered), max(5, m.height-10))
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	for i := start; i < min(len(m.filtered), start+visible); i++ {
		t := m.filtered[i]
		line := fmt.Sprintf("%s %s %s", statusBadge(t.Status), t.Description, mutedStyle.Render(t.Category))
		if t.TicketNumber != "" {
			line += " " + highlightStyle.Render("["+t.TicketNumber+"]")
		}
		if t.Status == store.TaskBlocked && t.BlockerReason != "" {
			line += " " + errorStyle.Render("⚠ "+t.BlockerReason)
		}
		if i == m.cursor {
			rows = append(rows, selectedItemStyle.Render("▸ ")+normalItemStyle.Render(line))
		} else {
			rows = append(rows, "  "+line)
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("n new · enter edit · t status · d delete · f/←/→ filters · / search · esc clear"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m tasksModel) filterLine() string {
	status, category, search := m.filter.Status, m.filter.Category, m.filter.Search
	if status == "" {
		status = task.FilterAll
	}
	if category == "" {
		category = task.FilterAll
	}
	if search == "" {
		search = "—"
	}
	return fmt.Sprintf("status: %s · category: %s · search: %s", status, category, search)
}

func statusBadge(status string) string {
	switch status {
	case store.TaskTodo:
		return mutedStyle.Render("[ ]")
	case store.TaskInProgress:
		return warningStyle.Render("[~]")
	case store.TaskCompleted:
		return successStyle.Render("[✓]")
	case store.TaskBlocked:
		return errorStyle.Render("[!]")
	}
	return "[?]"
}

// nextChoice cycles "" → values… → "" again.
func nextChoice(current string, values []string) string {
	if current == "" {
		return values[0]
	}
	for i, v := range values {
		if v == current {
			if i == len(values)-1 {
				return ""
			}
			return values[i+1]
		}
	}
	return ""
}

func prevCategory(current string) string {
	cats := store.TaskCategories
	if current == "" {
		return cats[len(cats)-1]
	}
	for i, v := range cats {
		if v == current {
			if i == 0 {
				return ""
			}
			return cats[i-1]
		}
	}
	return ""
}
