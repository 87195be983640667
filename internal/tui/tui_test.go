package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"worklog/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Helpers
// ============================================================

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Minute + 5*time.Second, "00:01:05"},
		{2*time.Hour + 30*time.Minute, "02:30:00"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, c := range cases {
		if got := formatElapsed(c.d); got != c.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	if got := formatHours(7.5); got != "7.5h" {
		t.Errorf("formatHours(7.5) = %q", got)
	}
	if got := formatHours(0); got != "0.0h" {
		t.Errorf("formatHours(0) = %q", got)
	}
}

func TestMinMax(t *testing.T) {
	if min(1, 2) != 1 || min(2, 1) != 1 {
		t.Error("min broken")
	}
	if max(1, 2) != 2 || max(2, 1) != 2 {
		t.Error("max broken")
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 views, got %d", len(viewNames))
	}
	if viewNames[viewDashboard] != "Dashboard" || viewNames[viewSettings] != "Settings" {
		t.Fatalf("view names = %v", viewNames)
	}
}

func TestStatusBadge(t *testing.T) {
	for _, status := range taskStatuses {
		if statusBadge(status) == "[?]" {
			t.Errorf("no badge for %q", status)
		}
	}
	if statusBadge("bogus") != "[?]" {
		t.Error("unknown status should fall back")
	}
}

func TestNextChoice(t *testing.T) {
	values := []string{"a", "b", "c"}
	if got := nextChoice("", values); got != "a" {
		t.Errorf("from empty = %q", got)
	}
	if got := nextChoice("a", values); got != "b" {
		t.Errorf("from a = %q", got)
	}
	if got := nextChoice("c", values); got != "" {
		t.Errorf("from last = %q, want empty", got)
	}
	if got := nextChoice("unknown", values); got != "" {
		t.Errorf("from unknown = %q, want empty", got)
	}
}

func TestPrevCategory(t *testing.T) {
	cats := store.TaskCategories
	if got := prevCategory(""); got != cats[len(cats)-1] {
		t.Errorf("from empty = %q", got)
	}
	if got := prevCategory(cats[0]); got != "" {
		t.Errorf("from first = %q, want empty", got)
	}
	if got := prevCategory(cats[2]); got != cats[1] {
		t.Errorf("from third = %q", got)
	}
}

// ============================================================
// App
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s)

	if a.activeView != viewDashboard {
		t.Fatalf("initial view = %v, want dashboard", a.activeView)
	}
	if a.Init() == nil {
		t.Fatal("Init should return a command")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s)
	for view := viewDashboard; view <= viewSettings; view++ {
		a.activeView = view
		if a.isFormActive() {
			t.Fatalf("form active by default in view %v", view)
		}
	}
}

func TestAppTabSwitching(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s)
	a.width, a.height = 100, 40

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	a = model.(App)
	if a.activeView != viewTasks {
		t.Fatalf("view = %v, want tasks", a.activeView)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = model.(App)
	if a.activeView != viewReports {
		t.Fatalf("view = %v, want reports", a.activeView)
	}
}

func TestAppQuit(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("msg = %v, want quit", msg)
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s)
	if a.View() != "Loading..." {
		t.Fatalf("zero-width view = %q", a.View())
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s)
	a.width, a.height = 120, 40

	header := a.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Errorf("header missing tab %q", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s)
	a.width, a.height = 100, 40

	model, _ := a.Update(statusMsg{text: "Settings saved"})
	a = model.(App)
	if a.status != "Settings saved" {
		t.Fatalf("status = %q", a.status)
	}
}

func TestAppExportPicker(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s)
	a.width, a.height = 100, 40

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	a = model.(App)
	if !a.exportPicking {
		t.Fatal("export picker should open")
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardClockInCommand(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s)

	msg := d.clockIn()()
	changed, ok := msg.(sessionChangedMsg)
	if !ok {
		t.Fatalf("msg = %#v, want sessionChangedMsg", msg)
	}
	if changed.entry == nil || changed.entry.Status != store.EntryActive {
		t.Fatalf("entry = %+v", changed.entry)
	}

	// Second clock-in is rejected with a status message.
	msg = d.clockIn()()
	status, ok := msg.(statusMsg)
	if !ok || !status.isError {
		t.Fatalf("msg = %#v, want error status", msg)
	}
}

func TestDashboardClockOutCommand(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s)

	d.clockIn()()
	msg := d.clockOut()()
	changed, ok := msg.(sessionChangedMsg)
	if !ok {
		t.Fatalf("msg = %#v, want sessionChangedMsg", msg)
	}
	if changed.entry.Status != store.EntryCompleted {
		t.Fatalf("status = %q", changed.entry.Status)
	}
}

func TestDashboardLoadData(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s)
	d.setSize(100, 40)

	d.clockIn()()
	msg := d.loadData()()
	data, ok := msg.(dashboardDataMsg)
	if !ok {
		t.Fatalf("msg = %#v", msg)
	}
	if data.active == nil {
		t.Fatal("active session missing from dashboard data")
	}

	d, _ = d.update(data)
	view := d.view()
	if !strings.Contains(view, "Clocked in") {
		t.Fatalf("view missing session state:\n%s", view)
	}
}

// ============================================================
// Tasks view
// ============================================================

func TestTasksFilterLine(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)

	line := m.filterLine()
	if !strings.Contains(line, "status: all") || !strings.Contains(line, "category: all") {
		t.Fatalf("filter line = %q", line)
	}
}

func TestTasksRefreshAndFilter(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)
	m.setSize(100, 40)

	s.CreateTask(&store.Task{Description: "Alpha", Status: store.TaskTodo})
	s.CreateTask(&store.Task{Description: "Beta", Status: store.TaskCompleted})

	msg := m.refresh()()
	data, ok := msg.(tasksDataMsg)
	if !ok {
		t.Fatalf("msg = %#v", msg)
	}
	m, _ = m.update(data)
	if len(m.filtered) != 2 {
		t.Fatalf("filtered = %d, want 2", len(m.filtered))
	}

	m.filter.Status = store.TaskTodo
	m.applyFilter()
	if len(m.filtered) != 1 || m.filtered[0].Description != "Alpha" {
		t.Fatalf("filtered = %+v", m.filtered)
	}
}

// ============================================================
// Reports view
// ============================================================

func TestReportsModeCycle(t *testing.T) {
	s := newTestStore(t)
	r := newReportsModel(s)

	if len(reportNames) != 4 {
		t.Fatalf("expected 4 report modes, got %d", len(reportNames))
	}

	r, _ = r.update(tea.KeyMsg{Type: tea.KeyTab})
	if r.mode != reportProgress {
		t.Fatalf("mode = %v, want progress", r.mode)
	}
	for i := 0; i < 3; i++ {
		r, _ = r.update(tea.KeyMsg{Type: tea.KeyTab})
	}
	if r.mode != reportHours {
		t.Fatalf("mode = %v, want wrapped back to hours", r.mode)
	}
}

func TestReportsRefresh(t *testing.T) {
	s := newTestStore(t)
	r := newReportsModel(s)
	r.setSize(100, 40)

	msg := r.refresh()()
	data, ok := msg.(reportsDataMsg)
	if !ok {
		t.Fatalf("msg = %#v", msg)
	}
	if !strings.Contains(data.text, "Hours Completed") {
		t.Fatalf("hours report missing:\n%s", data.text)
	}

	r, _ = r.update(data)
	if !strings.Contains(r.view(), "Hours Completed") {
		t.Fatal("view missing report text")
	}
}

func TestReportsWeeklyFailureSurfaces(t *testing.T) {
	s := newTestStore(t)
	r := newReportsModel(s)
	r.mode = reportWeekly

	msg := r.refresh()()
	data := msg.(reportsDataMsg)
	if !strings.Contains(data.failure, "Minimum 5 tasks required") {
		t.Fatalf("failure = %q", data.failure)
	}
}

// ============================================================
// Keys
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help empty")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help empty")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("help group %d empty", i)
		}
	}
}
