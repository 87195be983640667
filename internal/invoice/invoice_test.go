package invoice

import (
	"errors"
	"testing"
	"time"

	"worklog/internal/store"
)

// ============================================================
// Allocation split
// ============================================================

func TestCalculateStandardUnderThreshold(t *testing.T) {
	c := Calculate(50, 400, store.ModeStandard, 0)
	if c.PayoutHours != 50 || c.ShareHours != 0 {
		t.Fatalf("split = %v/%v, want 50/0", c.PayoutHours, c.ShareHours)
	}
	if c.PayoutAmount != 20000 || c.ShareAmount != 0 || c.TotalAmount != 20000 {
		t.Fatalf("amounts = %v/%v/%v", c.PayoutAmount, c.ShareAmount, c.TotalAmount)
	}
}

func TestCalculateStandardAtThreshold(t *testing.T) {
	c := Calculate(80, 400, store.ModeStandard, 0)
	if c.PayoutHours != 80 || c.ShareHours != 0 {
		t.Fatalf("split = %v/%v, want 80/0", c.PayoutHours, c.ShareHours)
	}
}

func TestCalculateStandardOverThreshold(t *testing.T) {
	c := Calculate(100, 406.25, store.ModeStandard, 0)
	if c.PayoutHours != 80 || c.ShareHours != 20 {
		t.Fatalf("split = %v/%v, want 80/20", c.PayoutHours, c.ShareHours)
	}
	if c.PayoutAmount != 32500 {
		t.Fatalf("payout = %v, want 32500", c.PayoutAmount)
	}
	if c.ShareAmount != 8125 {
		t.Fatalf("share = %v, want 8125", c.ShareAmount)
	}
	if c.TotalAmount != 40625 {
		t.Fatalf("total = %v, want 40625", c.TotalAmount)
	}
}

func TestCalculateCustom(t *testing.T) {
	c := Calculate(100, 400, store.ModeCustom, 60)
	if c.PayoutHours != 60 || c.ShareHours != 40 {
		t.Fatalf("split = %v/%v, want 60/40", c.PayoutHours, c.ShareHours)
	}
}

func TestCalculateCustomOverTotal(t *testing.T) {
	// Custom payout above total leaves a negative share; Validate flags it.
	c := Calculate(50, 400, store.ModeCustom, 60)
	if c.ShareHours != -10 {
		t.Fatalf("share = %v, want -10", c.ShareHours)
	}
	errs := Validate(c.TotalHours, c.PayoutHours, c.ShareHours)
	if len(errs) != 1 || errs[0] != "Share hours cannot be negative" {
		t.Fatalf("errs = %v", errs)
	}
}

// ============================================================
// Validation
// ============================================================

func TestValidateOK(t *testing.T) {
	if errs := Validate(100, 80, 20); len(errs) != 0 {
		t.Fatalf("valid split flagged: %v", errs)
	}
}

func TestValidateZeroTotal(t *testing.T) {
	errs := Validate(0, 0, 0)
	if len(errs) != 1 || errs[0] != "Total hours must be greater than 0" {
		t.Fatalf("errs = %v", errs)
	}
}

func TestValidateNegativePayout(t *testing.T) {
	errs := Validate(10, -5, 15)
	if len(errs) != 1 || errs[0] != "Payout hours cannot be negative" {
		t.Fatalf("errs = %v", errs)
	}
}

func TestValidateSplitMismatch(t *testing.T) {
	errs := Validate(100, 80, 10)
	if len(errs) != 1 || errs[0] != "Payout hours + Share hours must equal total hours" {
		t.Fatalf("errs = %v", errs)
	}
}

func TestValidateAccumulates(t *testing.T) {
	errs := Validate(-1, -1, -1)
	if len(errs) != 4 {
		t.Fatalf("expected every rule violated, got %v", errs)
	}
}

// ============================================================
// Numbering
// ============================================================

func TestNextNumber(t *testing.T) {
	cases := []struct {
		last, want string
	}{
		{"", "2000001"},
		{"2000001", "2000002"},
		{"2000042", "2000043"},
		{"not-a-number", "2000001"},
	}
	for _, c := range cases {
		if got := NextNumber(c.last); got != c.want {
			t.Errorf("NextNumber(%q) = %q, want %q", c.last, got, c.want)
		}
	}
}

// ============================================================
// Currency
// ============================================================

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{406.25, "$406.25"},
		{32500, "$32,500.00"},
		{1234567.5, "$1,234,567.50"},
		{-8125, "-$8,125.00"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.amount); got != c.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

// ============================================================
// Generation
// ============================================================

func newTestGenerator(t *testing.T) (*Generator, *store.Store) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	g := NewGenerator(s, store.DefaultUserID)
	g.now = func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) }
	return g, s
}

// trackHours records one completed session of the given billable hours
// starting at 9 AM on day.
func trackHours(t *testing.T, s *store.Store, day time.Time, hours float64) {
	t.Helper()
	in := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.Local)
	e, err := s.CreateEntry(store.DefaultUserID, in)
	if err != nil {
		t.Fatal(err)
	}
	minutes := int(hours * 60)
	out := in.Add(time.Duration(minutes) * time.Minute)
	if err := s.CompleteEntry(e.ID, out, minutes, 0, hours); err != nil {
		t.Fatal(err)
	}
}

func TestTrackedHoursInclusivePeriod(t *testing.T) {
	g, s := newTestGenerator(t)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)

	trackHours(t, s, start, 8)
	trackHours(t, s, end, 8)                  // last day counts
	trackHours(t, s, end.AddDate(0, 0, 1), 8) // day after does not

	total, err := g.TrackedHours(start, end)
	if err != nil {
		t.Fatal(err)
	}
	if total != 16 {
		t.Fatalf("tracked = %v, want 16", total)
	}
}

func TestGenerateStandard(t *testing.T) {
	g, s := newTestGenerator(t)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)

	for i := 0; i < 10; i++ {
		trackHours(t, s, start.AddDate(0, 0, i), 10)
	}

	inv, err := g.Generate(start, end, store.ModeStandard, 0)
	if err != nil {
		t.Fatal(err)
	}
	if inv.Number != FirstNumber {
		t.Fatalf("number = %q, want %q", inv.Number, FirstNumber)
	}
	if inv.TotalHours != 100 || inv.PayoutHours != 80 || inv.ShareHours != 20 {
		t.Fatalf("split = %v/%v/%v", inv.TotalHours, inv.PayoutHours, inv.ShareHours)
	}
	// Default rate applies when none was configured.
	if inv.HourlyRate != store.DefaultHourlyRate {
		t.Fatalf("rate = %v", inv.HourlyRate)
	}
	if inv.Status != store.InvoiceDraft {
		t.Fatalf("status = %q, want draft", inv.Status)
	}
}

func TestGenerateSequentialNumbers(t *testing.T) {
	g, s := newTestGenerator(t)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	trackHours(t, s, start, 8)

	first, err := g.Generate(start, start, store.ModeStandard, 0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.Generate(start, start, store.ModeStandard, 0)
	if err != nil {
		t.Fatal(err)
	}
	if first.Number != "2000001" || second.Number != "2000002" {
		t.Fatalf("numbers = %q, %q", first.Number, second.Number)
	}
}

func TestGenerateNoHoursBlocked(t *testing.T) {
	g, s := newTestGenerator(t)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)

	_, err := g.Generate(start, start.AddDate(0, 0, 30), store.ModeStandard, 0)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(vErr.Problems) == 0 || vErr.Problems[0] != "Total hours must be greater than 0" {
		t.Fatalf("problems = %v", vErr.Problems)
	}

	// Nothing was written.
	invoices, _ := s.ListInvoices(store.DefaultUserID)
	if len(invoices) != 0 {
		t.Fatalf("invalid generation persisted: %+v", invoices)
	}
}

func TestGenerateCustomOverTotalBlocked(t *testing.T) {
	g, s := newTestGenerator(t)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	trackHours(t, s, start, 8)

	_, err := g.Generate(start, start, store.ModeCustom, 20)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

// ============================================================
// Documents
// ============================================================

func TestDocumentsBoth(t *testing.T) {
	date := time.Date(2026, 4, 1, 9, 0, 0, 0, time.Local)
	inv := &store.Invoice{
		Number:      "2000001",
		PayoutHours: 80, PayoutAmount: 32500,
		ShareHours: 20, ShareAmount: 8125,
		HourlyRate:  406.25,
		InvoiceDate: date,
	}

	docs := Documents(inv)
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Kind != KindPayout || docs[0].Title != "INVOICE" {
		t.Fatalf("payout doc = %+v", docs[0])
	}
	if docs[0].FileName != "invoice_2026_04_01.pdf" {
		t.Fatalf("payout file = %q", docs[0].FileName)
	}
	if docs[1].Kind != KindShare || docs[1].Title != "SHARE OPTION PURCHASE NOTICE" {
		t.Fatalf("share doc = %+v", docs[1])
	}
	if docs[1].FileName != "share-option-purchase-notice-2026_04_01.pdf" {
		t.Fatalf("share file = %q", docs[1].FileName)
	}
	if docs[1].Description != "Contractor Project Hourly Rate (Extra Hours)" {
		t.Fatalf("share description = %q", docs[1].Description)
	}
}

func TestDocumentsPayoutOnly(t *testing.T) {
	inv := &store.Invoice{
		Number:      "2000001",
		PayoutHours: 40, PayoutAmount: 16250,
		InvoiceDate: time.Now(),
	}
	docs := Documents(inv)
	if len(docs) != 1 || docs[0].Kind != KindPayout {
		t.Fatalf("docs = %+v", docs)
	}
}
