package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"worklog/internal/export"
	"worklog/internal/invoice"
	"worklog/internal/store"
	"worklog/internal/timeutil"
)

type invoicesModel struct {
	store     *store.Store
	generator *invoice.Generator
	width     int
	height    int

	invoices []store.Invoice
	cursor   int

	formActive bool
	form       *huh.Form

	fPeriodStart *string
	fPeriodEnd   *string
	fMode        *string
	fCustomHours *string
}

func newInvoicesModel(s *store.Store) invoicesModel {
	start, end, mode, custom := "", "", "", ""
	return invoicesModel{
		store:        s,
		generator:    invoice.NewGenerator(s, store.DefaultUserID),
		fPeriodStart: &start,
		fPeriodEnd:   &end,
		fMode:        &mode,
		fCustomHours: &custom,
	}
}

func (m *invoicesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type invoicesDataMsg struct {
	invoices []store.Invoice
}

func (m invoicesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		invoices, _ := m.store.ListInvoices(store.DefaultUserID)
		return invoicesDataMsg{invoices: invoices}
	}
}

func (m invoicesModel) update(msg tea.Msg) (invoicesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case invoicesDataMsg:
		m.invoices = msg.invoices
		if m.cursor >= len(m.invoices) {
			m.cursor = max(0, len(m.invoices)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.invoices)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, keys.New):
			return m.showForm()
		case key.Matches(msg, keys.Pdf):
			if m.cursor < len(m.invoices) {
				return m, m.writePDFs(m.invoices[m.cursor])
			}
			return m, nil
		}
	}
	return m, nil
}

func (m invoicesModel) showForm() (invoicesModel, tea.Cmd) {
	// Default period: the current month so far.
	now := time.Now()
	*m.fPeriodStart = timeutil.ISODate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
	*m.fPeriodEnd = timeutil.ISODate(now)
	*m.fMode = store.ModeStandard
	*m.fCustomHours = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Period start (YYYY-MM-DD)").Value(m.fPeriodStart),
			huh.NewInput().Title("Period end (YYYY-MM-DD)").Value(m.fPeriodEnd),
			huh.NewSelect[string]().Title("Allocation mode").
				Options(
					huh.NewOption("Standard (80h payout threshold)", store.ModeStandard),
					huh.NewOption("Custom split", store.ModeCustom),
				).Value(m.fMode),
			huh.NewInput().Title("Custom payout hours (custom mode only)").Value(m.fCustomHours),
		).Title("Generate invoice"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m invoicesModel) updateForm(msg tea.Msg) (invoicesModel, tea.Cmd) {
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
		return m, m.generate()
	}

	return m, cmd
}

func (m invoicesModel) generate() tea.Cmd {
	return func() tea.Msg {
		start, err := time.ParseInLocation("2006-01-02", *m.fPeriodStart, time.Local)
		if err != nil {
			return statusMsg{text: "invalid period start date", isError: true}
		}
		end, err := time.ParseInLocation("2006-01-02", *m.fPeriodEnd, time.Local)
		if err != nil {
			return statusMsg{text: "invalid period end date", isError: true}
		}

		custom := 0.0
		if *m.fCustomHours != "" {
			custom, _ = strconv.ParseFloat(*m.fCustomHours, 64)
		}

		inv, err := m.generator.Generate(start, end, *m.fMode, custom)
		var vErr *invoice.ValidationError
		if errors.As(err, &vErr) {
			return statusMsg{text: strings.Join(vErr.Problems, " · "), isError: true}
		}
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return invoiceCreatedMsg{invoice: inv}
	}
}

func (m invoicesModel) writePDFs(inv store.Invoice) tea.Cmd {
	return func() tea.Msg {
		cfg, err := m.store.LoadConfig()
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		paths, err := export.WriteInvoicePDFs(&inv, cfg, home)
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return exportDoneMsg{path: strings.Join(paths, ", ")}
	}
}

func (m invoicesModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Generate Invoice")
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()))
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Invoices"))
	rows = append(rows, "")

	if len(m.invoices) == 0 {
		rows = append(rows, mutedStyle.Render("  No invoices yet — press n to generate one"))
	}

	for i, inv := range m.invoices {
		line := fmt.Sprintf("#%s  %s → %s  %s %s",
			inv.Number,
			timeutil.ISODate(inv.PeriodStart),
			timeutil.ISODate(inv.PeriodEnd),
			highlightStyle.Render(invoice.FormatCurrency(inv.TotalAmount)),
			mutedStyle.Render(fmt.Sprintf("(%s payout / %s share, %s)",
				formatHours(inv.PayoutHours), formatHours(inv.ShareHours), inv.Status)),
		)
		if i == m.cursor {
			rows = append(rows, selectedItemStyle.Render("▸ ")+normalItemStyle.Render(line))
		} else {
			rows = append(rows, "  "+line)
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("n generate · p write pdfs"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
