package store

import (
	"database/sql"
	"fmt"
	"time"

	"worklog/internal/timeutil"
)

// CreateInvoice persists a draft invoice and returns it with its id.
func (s *Store) CreateInvoice(inv *Invoice) (*Invoice, error) {
	if inv.UserID == "" {
		inv.UserID = DefaultUserID
	}
	if inv.Status == "" {
		inv.Status = InvoiceDraft
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO invoices (user_id, invoice_number, period_start, period_end, invoice_date,
		                       total_hours, payout_hours, share_hours, hourly_rate,
		                       payout_amount, share_amount, total_amount, allocation_mode, status,
		                       created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.UserID, inv.Number, timeutil.ISODate(inv.PeriodStart), timeutil.ISODate(inv.PeriodEnd),
		inv.InvoiceDate.UTC().Format(time.RFC3339),
		inv.TotalHours, inv.PayoutHours, inv.ShareHours, inv.HourlyRate,
		inv.PayoutAmount, inv.ShareAmount, inv.TotalAmount, inv.AllocationMode, inv.Status,
		now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetInvoice(id)
}

func (s *Store) GetInvoice(id int64) (*Invoice, error) {
	row := s.db.QueryRow(invoiceSelect+` WHERE id = ?`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		return nil, fmt.Errorf("get invoice %d: %w", id, err)
	}
	return inv, nil
}

// LastInvoiceNumber returns the most recently issued number, or ""
// when no invoice exists yet.
func (s *Store) LastInvoiceNumber(userID string) (string, error) {
	var number string
	err := s.db.QueryRow(
		`SELECT invoice_number FROM invoices WHERE user_id = ? ORDER BY id DESC LIMIT 1`,
		userID,
	).Scan(&number)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("last invoice number: %w", err)
	}
	return number, nil
}

// ListInvoices returns the user's invoices, newest first.
func (s *Store) ListInvoices(userID string) ([]Invoice, error) {
	rows, err := s.db.Query(invoiceSelect+` WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

const invoiceSelect = `SELECT id, user_id, invoice_number, period_start, period_end, invoice_date,
	total_hours, payout_hours, share_hours, hourly_rate, payout_amount, share_amount, total_amount,
	allocation_mode, status, created_at, updated_at FROM invoices`

func scanInvoice(row rowScanner) (*Invoice, error) {
	inv := &Invoice{}
	var periodStart, periodEnd, invoiceDate, createdAt, updatedAt string

	err := row.Scan(&inv.ID, &inv.UserID, &inv.Number, &periodStart, &periodEnd, &invoiceDate,
		&inv.TotalHours, &inv.PayoutHours, &inv.ShareHours, &inv.HourlyRate,
		&inv.PayoutAmount, &inv.ShareAmount, &inv.TotalAmount,
		&inv.AllocationMode, &inv.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	inv.PeriodStart, _ = time.ParseInLocation("2006-01-02", periodStart, time.Local)
	inv.PeriodEnd, _ = time.ParseInLocation("2006-01-02", periodEnd, time.Local)
	inv.InvoiceDate, _ = time.Parse(time.RFC3339, invoiceDate)
	inv.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	inv.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return inv, nil
}
