package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"worklog/internal/session"
	"worklog/internal/store"
	"worklog/internal/timeutil"
)

type dashboardModel struct {
	store   *store.Store
	tracker *session.Tracker
	width   int
	height  int

	active       *store.TimeEntry
	todayEntries []store.TimeEntry
	todayHours   float64
	now          time.Time
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{
		store:   s,
		tracker: session.New(s, store.DefaultUserID),
		now:     time.Now(),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	active       *store.TimeEntry
	todayEntries []store.TimeEntry
	todayHours   float64
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		active, _ := d.tracker.Active()

		dayStart, dayEnd := timeutil.DayBounds(time.Now())
		entries, _ := d.store.EntriesInRange(store.DefaultUserID, dayStart, dayEnd)

		total := 0.0
		for _, e := range entries {
			total += e.BillableHours
		}

		return dashboardDataMsg{active: active, todayEntries: entries, todayHours: total}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.active = msg.active
		d.todayEntries = msg.todayEntries
		d.todayHours = msg.todayHours
		return d, nil

	case tickMsg:
		d.now = time.Time(msg)
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.ClockIn):
			return d, d.clockIn()
		case key.Matches(msg, keys.ClockOut):
			return d, d.clockOut()
		case key.Matches(msg, keys.Break):
			return d, d.toggleBreak()
		}
	}
	return d, nil
}

func (d dashboardModel) clockIn() tea.Cmd {
	return func() tea.Msg {
		entry, err := d.tracker.ClockIn()
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return sessionChangedMsg{entry: entry}
	}
}

func (d dashboardModel) clockOut() tea.Cmd {
	return func() tea.Msg {
		entry, err := d.tracker.ClockOut()
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return sessionChangedMsg{entry: entry}
	}
}

// toggleBreak starts a break while working and ends it while resting.
func (d dashboardModel) toggleBreak() tea.Cmd {
	return func() tea.Msg {
		var entry *store.TimeEntry
		var err error
		if d.active != nil && d.active.OpenBreak() != nil {
			entry, err = d.tracker.EndBreak()
		} else {
			entry, err = d.tracker.StartBreak()
		}
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return sessionChangedMsg{entry: entry}
	}
}

func (d dashboardModel) view() string {
	w := d.width - 4

	var clock, state string
	switch {
	case d.active == nil:
		clock = clockStyle.Width(w).Render("00:00:00")
		state = mutedStyle.Render("Clocked out — press i to clock in")
	case d.active.OpenBreak() != nil:
		clock = clockBreakStyle.Width(w).Render(formatElapsed(d.now.Sub(d.active.ClockIn)))
		openBreak := d.active.OpenBreak()
		state = warningStyle.Render(fmt.Sprintf("On break since %s — press b to resume", timeutil.FormatClock(openBreak.StartTime)))
	default:
		clock = clockRunningStyle.Width(w).Render(formatElapsed(d.now.Sub(d.active.ClockIn)))
		state = successStyle.Render(fmt.Sprintf("Clocked in at %s — b for break, o to clock out", timeutil.FormatClock(d.active.ClockIn)))
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Session"))
	rows = append(rows, "")
	rows = append(rows, clock)
	rows = append(rows, lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(state))
	rows = append(rows, "")

	rows = append(rows, titleStyle.Render(fmt.Sprintf("Today — %s billable", formatHours(d.todayHours))))
	if len(d.todayEntries) == 0 {
		rows = append(rows, mutedStyle.Render("  No sessions yet"))
	}
	for _, e := range d.todayEntries {
		end := "…"
		hours := "in progress"
		if e.ClockOut != nil {
			end = timeutil.FormatClock(*e.ClockOut)
			hours = formatHours(e.BillableHours)
		}
		line := fmt.Sprintf("  %s - %s  %s", timeutil.FormatClock(e.ClockIn), end, highlightStyle.Render(hours))
		if n := len(e.Breaks); n > 0 {
			line += mutedStyle.Render(fmt.Sprintf("  (%d breaks, %s)", n, timeutil.FormatMinutes(e.BreakMinutes())))
		}
		rows = append(rows, line)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
