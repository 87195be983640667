package invoice

import (
	"strings"
	"time"

	"worklog/internal/store"
	"worklog/internal/timeutil"
)

// ValidationError carries the full list of violated invoice rules.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Generator assembles invoices from tracked hours. It reads entries
// and the last issued number from the store and persists new invoices
// at draft; PDF rendering happens elsewhere, fed by Documents.
type Generator struct {
	store  *store.Store
	userID string
	now    func() time.Time
}

func NewGenerator(s *store.Store, userID string) *Generator {
	return &Generator{store: s, userID: userID, now: time.Now}
}

// TrackedHours sums billable hours over the inclusive date period.
func (g *Generator) TrackedHours(periodStart, periodEnd time.Time) (float64, error) {
	start, _ := timeutil.DayBounds(periodStart)
	_, end := timeutil.DayBounds(periodEnd)

	entries, err := g.store.EntriesInRange(g.userID, start, end)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, e := range entries {
		total += e.BillableHours
	}
	return total, nil
}

// Generate computes the split for the period, validates it, assigns
// the next sequential number and persists a draft invoice. A
// *ValidationError means nothing was written.
func (g *Generator) Generate(periodStart, periodEnd time.Time, mode string, customPayoutHours float64) (*store.Invoice, error) {
	totalHours, err := g.TrackedHours(periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	cfg, err := g.store.LoadConfig()
	if err != nil {
		return nil, err
	}
	calc := Calculate(totalHours, cfg.HourlyRate, mode, customPayoutHours)

	if problems := Validate(calc.TotalHours, calc.PayoutHours, calc.ShareHours); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	last, err := g.store.LastInvoiceNumber(g.userID)
	if err != nil {
		return nil, err
	}

	inv := &store.Invoice{
		UserID:         g.userID,
		Number:         NextNumber(last),
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		InvoiceDate:    g.now(),
		TotalHours:     calc.TotalHours,
		PayoutHours:    calc.PayoutHours,
		ShareHours:     calc.ShareHours,
		HourlyRate:     calc.HourlyRate,
		PayoutAmount:   calc.PayoutAmount,
		ShareAmount:    calc.ShareAmount,
		TotalAmount:    calc.TotalAmount,
		AllocationMode: mode,
		Status:         store.InvoiceDraft,
	}
	return g.store.CreateInvoice(inv)
}

// Document kinds.
const (
	KindPayout = "payout"
	KindShare  = "share"
)

// Document is one renderable invoice line item handed to the PDF
// layer: the payout invoice or the share purchase notice.
type Document struct {
	Kind        string
	Title       string
	Description string
	Hours       float64
	Rate        float64
	Amount      float64
	PeriodStart time.Time
	PeriodEnd   time.Time
	Number      string
	Date        time.Time
	FileName    string
}

// Documents expands an invoice into its renderable documents. Each
// allocation appears only when its hours are positive.
func Documents(inv *store.Invoice) []Document {
	var docs []Document

	if inv.PayoutHours > 0 {
		docs = append(docs, Document{
			Kind:        KindPayout,
			Title:       "INVOICE",
			Description: "Contractor Project Hourly Rate",
			Hours:       inv.PayoutHours,
			Rate:        inv.HourlyRate,
			Amount:      inv.PayoutAmount,
			PeriodStart: inv.PeriodStart,
			PeriodEnd:   inv.PeriodEnd,
			Number:      inv.Number,
			Date:        inv.InvoiceDate,
			FileName:    "invoice_" + timeutil.FilenameDate(inv.InvoiceDate) + ".pdf",
		})
	}
	if inv.ShareHours > 0 {
		docs = append(docs, Document{
			Kind:        KindShare,
			Title:       "SHARE OPTION PURCHASE NOTICE",
			Description: "Contractor Project Hourly Rate (Extra Hours)",
			Hours:       inv.ShareHours,
			Rate:        inv.HourlyRate,
			Amount:      inv.ShareAmount,
			PeriodStart: inv.PeriodStart,
			PeriodEnd:   inv.PeriodEnd,
			Number:      inv.Number,
			Date:        inv.InvoiceDate,
			FileName:    "share-option-purchase-notice-" + timeutil.FilenameDate(inv.InvoiceDate) + ".pdf",
		})
	}
	return docs
}
