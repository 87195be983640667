package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"worklog/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings map[string]string

	formActive bool
	form       *huh.Form

	fHourlyRate  *string
	fWeekStart   *string
	fCompanyName *string
	fCompanyAddr *string
	fCompanyABN  *string
	fName        *string
	fAddress     *string
	fBankName    *string
	fBSB         *string
	fAccount     *string
}

func newSettingsModel(s *store.Store) settingsModel {
	m := settingsModel{store: s, settings: map[string]string{}}
	for _, p := range []**string{
		&m.fHourlyRate, &m.fWeekStart,
		&m.fCompanyName, &m.fCompanyAddr, &m.fCompanyABN,
		&m.fName, &m.fAddress,
		&m.fBankName, &m.fBSB, &m.fAccount,
	} {
		v := ""
		*p = &v
	}
	return m
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type settingsDataMsg struct {
	settings map[string]string
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		all, _ := m.store.GetAllSettings()
		values := make(map[string]string, len(all))
		for _, kv := range all {
			values[kv.Key] = kv.Value
		}
		return settingsDataMsg{settings: values}
	}
}

var settingsOrder = []struct {
	key   string
	label string
}{
	{"hourly_rate", "Hourly rate"},
	{"week_start", "Week starts on"},
	{"company_name", "Company name"},
	{"company_address", "Company address"},
	{"company_abn", "Company ABN"},
	{"personal_name", "Your name"},
	{"personal_address", "Your address"},
	{"bank_name", "Bank"},
	{"bank_bsb", "BSB"},
	{"bank_account", "Account number"},
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.settings = msg.settings
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) || key.Matches(msg, keys.New) {
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	*m.fHourlyRate = m.settings["hourly_rate"]
	*m.fWeekStart = m.settings["week_start"]
	if *m.fWeekStart == "" {
		*m.fWeekStart = "sunday"
	}
	*m.fCompanyName = m.settings["company_name"]
	*m.fCompanyAddr = m.settings["company_address"]
	*m.fCompanyABN = m.settings["company_abn"]
	*m.fName = m.settings["personal_name"]
	*m.fAddress = m.settings["personal_address"]
	*m.fBankName = m.settings["bank_name"]
	*m.fBSB = m.settings["bank_bsb"]
	*m.fAccount = m.settings["bank_account"]

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Hourly rate").Value(m.fHourlyRate).
				Validate(func(s string) error {
					_, err := strconv.ParseFloat(s, 64)
					return err
				}),
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Sunday", "sunday"),
					huh.NewOption("Monday", "monday"),
				).Value(m.fWeekStart),
		).Title("Tracking"),
		huh.NewGroup(
			huh.NewInput().Title("Company name").Value(m.fCompanyName),
			huh.NewInput().Title("Company address").Value(m.fCompanyAddr),
			huh.NewInput().Title("Company ABN").Value(m.fCompanyABN),
			huh.NewInput().Title("Your name").Value(m.fName),
			huh.NewInput().Title("Your address").Value(m.fAddress),
		).Title("Invoice parties"),
		huh.NewGroup(
			huh.NewInput().Title("Bank").Value(m.fBankName),
			huh.NewInput().Title("BSB").Value(m.fBSB),
			huh.NewInput().Title("Account number").Value(m.fAccount),
		).Title("Payment details"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
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
		return m, m.save()
	}

	return m, cmd
}

func (m settingsModel) save() tea.Cmd {
	return func() tea.Msg {
		values := map[string]string{
			"hourly_rate":      *m.fHourlyRate,
			"week_start":       *m.fWeekStart,
			"company_name":     *m.fCompanyName,
			"company_address":  *m.fCompanyAddr,
			"company_abn":      *m.fCompanyABN,
			"personal_name":    *m.fName,
			"personal_address": *m.fAddress,
			"bank_name":        *m.fBankName,
			"bank_bsb":         *m.fBSB,
			"bank_account":     *m.fAccount,
		}
		for k, v := range values {
			if err := m.store.SetSetting(k, v); err != nil {
				return statusMsg{text: err.Error(), isError: true}
			}
		}
		return statusMsg{text: "Settings saved"}
	}
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Edit Settings")
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()))
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")

	for _, s := range settingsOrder {
		val := m.settings[s.key]
		if val == "" {
			val = mutedStyle.Render("(not set)")
		}
		rows = append(rows, "  "+mutedStyle.Render(padRight(s.label, 18))+" "+val)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("enter edit"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
