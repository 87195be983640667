package tui

import (
	"fmt"
	"time"

	"worklog/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewReports
	viewInvoices
	viewSettings
)

var viewNames = []string{"Dashboard", "Tasks", "Reports", "Invoices", "Settings"}

// --- Messages ---

type sessionChangedMsg struct {
	entry *store.TimeEntry
}

type taskSavedMsg struct {
	task *store.Task
}

type invoiceCreatedMsg struct {
	invoice *store.Invoice
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatElapsed(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
