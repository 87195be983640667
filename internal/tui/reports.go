package tui

import (
	"errors"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"worklog/internal/report"
	"worklog/internal/store"
	"worklog/internal/timeutil"
)

type reportMode int

const (
	reportHours reportMode = iota
	reportProgress
	reportDaily
	reportWeekly
)

var reportNames = []string{"Hours", "Progress Tracker", "Daily", "Weekly"}

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	mode   reportMode
	offset int // days (or weeks in weekly mode) back from today

	text      string
	failure   string
	weekHours []store.DailyHours
	chart     barchart.Model
	weekStart time.Weekday
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store:     s,
		chart:     barchart.New(60, 10),
		weekStart: time.Sunday,
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r reportsModel) date() time.Time {
	if r.mode == reportWeekly {
		return time.Now().AddDate(0, 0, -7*r.offset)
	}
	return time.Now().AddDate(0, 0, -r.offset)
}

type reportsDataMsg struct {
	text      string
	failure   string
	weekHours []store.DailyHours
	weekStart time.Weekday
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		cfg, err := r.store.LoadConfig()
		weekStart := time.Sunday
		if err == nil {
			weekStart = cfg.WeekStart
		}

		builder := report.NewBuilder(r.store, store.DefaultUserID, weekStart)
		date := r.date()

		var text string
		switch r.mode {
		case reportHours:
			text, err = builder.Hours(date)
		case reportProgress:
			text, err = builder.ProgressTracker(date)
		case reportDaily:
			text, err = builder.Daily(date)
		case reportWeekly:
			text, err = builder.Weekly(date)
		}

		msg := reportsDataMsg{text: text, weekStart: weekStart}
		var minErr *report.MinTasksError
		if errors.As(err, &minErr) {
			msg.failure = minErr.Error()
		} else if err != nil {
			msg.failure = err.Error()
		}

		from, to := timeutil.WeekBounds(date, weekStart)
		msg.weekHours, _ = r.store.DailyBillable(store.DefaultUserID, from, to)
		return msg
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.text = msg.text
		r.failure = msg.failure
		r.weekHours = msg.weekHours
		r.weekStart = msg.weekStart
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		case key.Matches(msg, keys.Tab, keys.Enter):
			r.mode = (r.mode + 1) % 4
			r.offset = 0
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := max(20, r.width-10)
	r.chart = barchart.New(chartWidth, 8)

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	for _, day := range r.weekHours {
		label := day.Date
		if t, err := time.Parse("2006-01-02", day.Date); err == nil {
			label = t.Format("Mon")
		}
		r.chart.Push(barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: label, Value: day.Hours, Style: barStyle},
			},
		})
	}
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	var tabs []string
	for i, name := range reportNames {
		if reportMode(i) == r.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	var body string
	if r.failure != "" {
		body = errorStyle.Render(r.failure)
	} else {
		body = r.text
	}

	rows := []string{
		header,
		mutedStyle.Render(timeutil.FormatLongDate(r.date()) + " · ←/→ navigate · tab switch report"),
		"",
		body,
	}

	if len(r.weekHours) > 0 {
		rows = append(rows, "", titleStyle.Render("Billable hours this week"), r.chart.View())
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
