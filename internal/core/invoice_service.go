package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrInvoiceNotFound is returned when the referenced invoice does not exist.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidTransition is returned when a status change is not allowed
	// from the invoice's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InvoiceFilter narrows List results. Nil fields mean no filter.
type InvoiceFilter struct {
	Status   *InvoiceStatus
	Category *DocumentCategory
}

// InvoiceService is the persistence boundary for invoices. Validation happens
// here, on the way in; the formula engine and mapper stay tolerant.
type InvoiceService interface {
	// Create validates the invoice (including the totals invariant) and
	// inserts it, returning the new ID.
	Create(ctx context.Context, inv Invoice) (int, error)

	// Get returns a single invoice by ID, or ErrInvoiceNotFound.
	Get(ctx context.Context, id int) (*Invoice, error)

	// List returns invoices matching the filter, newest issue date first.
	List(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	// UpdateStatus moves an invoice through its lifecycle. Only forward
	// transitions are allowed; see allowedTransitions.
	UpdateStatus(ctx context.Context, id int, status InvoiceStatus) error

	// MarkSynced flips an approved invoice to synced and records the remote
	// invoice ID in sync_log, atomically.
	MarkSynced(ctx context.Context, id int, externalID string) error

	// RecordSyncFailure flips the invoice to error status and logs the
	// failure message, atomically.
	RecordSyncFailure(ctx context.Context, id int, reason string) error
}

// allowedTransitions is the invoice lifecycle. pending fans out to the review
// states, approved documents may sync (or fail), and a failed sync can be
// re-approved for another attempt.
var allowedTransitions = map[InvoiceStatus][]InvoiceStatus{
	StatusPending:  {StatusApproved, StatusReviewed, StatusPaid},
	StatusReviewed: {StatusApproved, StatusPaid},
	StatusApproved: {StatusSynced, StatusError, StatusPaid},
	StatusError:    {StatusApproved},
}

func transitionAllowed(from, to InvoiceStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type invoiceService struct {
	pool *pgxpool.Pool
}

// NewInvoiceService constructs an InvoiceService backed by the given pool.
func NewInvoiceService(pool *pgxpool.Pool) InvoiceService {
	return &invoiceService{pool: pool}
}

const invoiceColumns = `id, document_category, invoice_number, vendor_name, customer_name,
	customer_gstin, vendor_gstin, date_of_issue, due_date,
	taxable_amount, cgst, sgst, igst, total_gst, total_with_gst,
	status, place_of_supply, expense_account,
	source_pdf, extraction_model, confidence, created_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(
		&inv.ID, &inv.DocumentCategory, &inv.InvoiceNumber, &inv.VendorName, &inv.CustomerName,
		&inv.CustomerGSTIN, &inv.VendorGSTIN, &inv.DateOfIssue, &inv.DueDate,
		&inv.TaxableAmount, &inv.CGST, &inv.SGST, &inv.IGST, &inv.TotalGST, &inv.TotalWithGST,
		&inv.Status, &inv.PlaceOfSupply, &inv.ExpenseAccount,
		&inv.SourcePDF, &inv.ExtractionModel, &inv.Confidence, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *invoiceService) Create(ctx context.Context, inv Invoice) (int, error) {
	if inv.Status == "" {
		inv.Status = StatusPending
	}
	if err := inv.Validate(); err != nil {
		return 0, fmt.Errorf("invoice validation failed: %w", err)
	}

	var id int
	err := s.pool.QueryRow(ctx, `
		INSERT INTO invoices (
			document_category, invoice_number, vendor_name, customer_name,
			customer_gstin, vendor_gstin, date_of_issue, due_date,
			taxable_amount, cgst, sgst, igst, total_gst, total_with_gst,
			status, place_of_supply, expense_account,
			source_pdf, extraction_model, confidence, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,NOW())
		RETURNING id
	`,
		inv.DocumentCategory, inv.InvoiceNumber, inv.VendorName, inv.CustomerName,
		inv.CustomerGSTIN, inv.VendorGSTIN, inv.DateOfIssue, inv.DueDate,
		inv.TaxableAmount, inv.CGST, inv.SGST, inv.IGST, inv.TotalGST, inv.TotalWithGST,
		inv.Status, inv.PlaceOfSupply, inv.ExpenseAccount,
		inv.SourcePDF, inv.ExtractionModel, inv.Confidence,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert invoice: %w", err)
	}
	return id, nil
}

func (s *invoiceService) Get(ctx context.Context, id int) (*Invoice, error) {
	inv, err := scanInvoice(s.pool.QueryRow(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE id = $1", id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to fetch invoice %d: %w", id, err)
	}
	return inv, nil
}

func (s *invoiceService) List(ctx context.Context, filter InvoiceFilter) ([]Invoice, error) {
	q := "SELECT " + invoiceColumns + " FROM invoices WHERE 1=1"
	var args []any
	if filter.Status != nil {
		args = append(args, *filter.Status)
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		q += fmt.Sprintf(" AND document_category = $%d", len(args))
	}
	q += " ORDER BY date_of_issue DESC, id DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("invoice row iteration error: %w", err)
	}
	return invoices, nil
}

func (s *invoiceService) UpdateStatus(ctx context.Context, id int, status InvoiceStatus) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current InvoiceStatus
	if err := tx.QueryRow(ctx,
		"SELECT status FROM invoices WHERE id = $1 FOR UPDATE", id,
	).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to fetch invoice %d: %w", id, err)
	}

	if !transitionAllowed(current, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	if _, err := tx.Exec(ctx,
		"UPDATE invoices SET status = $1 WHERE id = $2", status, id,
	); err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *invoiceService) MarkSynced(ctx context.Context, id int, externalID string) error {
	return s.recordSyncOutcome(ctx, id, StatusSynced, externalID, "")
}

func (s *invoiceService) RecordSyncFailure(ctx context.Context, id int, reason string) error {
	return s.recordSyncOutcome(ctx, id, StatusError, "", reason)
}

// recordSyncOutcome updates the invoice status and appends to sync_log in a
// single transaction so the log never disagrees with the document.
func (s *invoiceService) recordSyncOutcome(ctx context.Context, id int, status InvoiceStatus, externalID, reason string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current InvoiceStatus
	if err := tx.QueryRow(ctx,
		"SELECT status FROM invoices WHERE id = $1 FOR UPDATE", id,
	).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to fetch invoice %d: %w", id, err)
	}

	if !transitionAllowed(current, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	if _, err := tx.Exec(ctx,
		"UPDATE invoices SET status = $1 WHERE id = $2", status, id,
	); err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO sync_log (invoice_id, outcome, external_id, detail, synced_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, id, status, externalID, reason); err != nil {
		return fmt.Errorf("failed to append sync log: %w", err)
	}

	return tx.Commit(ctx)
}
