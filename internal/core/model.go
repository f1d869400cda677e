package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type DocumentCategory string

const (
	CategoryRevenue   DocumentCategory = "revenue"
	CategoryExpense   DocumentCategory = "expense"
	CategoryAsset     DocumentCategory = "asset"
	CategoryLiability DocumentCategory = "liability"
)

type InvoiceStatus string

const (
	StatusPending  InvoiceStatus = "pending"
	StatusPaid     InvoiceStatus = "paid"
	StatusApproved InvoiceStatus = "approved"
	StatusReviewed InvoiceStatus = "reviewed"
	StatusSynced   InvoiceStatus = "synced"
	StatusError    InvoiceStatus = "error"
)

// Invoice is the accounting document every computation in this package runs
// over. All monetary fields are decimals; a zero-value decimal is 0, so a
// record arriving with missing amounts aggregates as zero rather than failing
// (dashboard rendering must survive partial backend data).
//
// Intra-state invoices carry CGST+SGST, inter-state invoices carry IGST; the
// two sets are mutually exclusive in practice but the engine never enforces
// that; it only sums what is present.
type Invoice struct {
	ID               int              `json:"id"`
	DocumentCategory DocumentCategory `json:"document_category"`
	InvoiceNumber    string           `json:"invoice_number"`
	VendorName       string           `json:"vendor_name"`
	CustomerName     string           `json:"customer_name"`
	CustomerGSTIN    string           `json:"customer_gstin,omitempty"`
	VendorGSTIN      string           `json:"vendor_gstin,omitempty"`
	DateOfIssue      time.Time        `json:"date_of_issue"`
	DueDate          *time.Time       `json:"due_date,omitempty"`
	TaxableAmount    decimal.Decimal  `json:"taxable_amount"`
	CGST             decimal.Decimal  `json:"cgst"`
	SGST             decimal.Decimal  `json:"sgst"`
	IGST             decimal.Decimal  `json:"igst"`
	TotalGST         decimal.Decimal  `json:"total_gst"`
	TotalWithGST     decimal.Decimal  `json:"total_with_gst"`
	Status           InvoiceStatus    `json:"status"`
	PlaceOfSupply    string           `json:"place_of_supply,omitempty"`
	ExpenseAccount   string           `json:"expense_account,omitempty"`

	// Extraction metadata, populated when the record came out of the AI
	// extraction pipeline rather than manual entry.
	SourcePDF       string          `json:"source_pdf,omitempty"`
	ExtractionModel string          `json:"extraction_model,omitempty"`
	Confidence      decimal.Decimal `json:"confidence"`

	CreatedAt time.Time `json:"created_at"`
}

// ErrInvalidInvoice wraps every Validate failure so callers can map the whole
// class of rejections without matching message text.
var ErrInvalidInvoice = errors.New("invalid invoice")

// Validate enforces the structural rules a record must satisfy before it is
// persisted. The formula engine and export mapper deliberately do NOT call
// this: they are tolerant by contract, and rejection belongs at the boundary.
func (i *Invoice) Validate() error {
	if i.DateOfIssue.IsZero() {
		return fmt.Errorf("%w: invoice must have a date of issue", ErrInvalidInvoice)
	}

	switch i.DocumentCategory {
	case CategoryRevenue, CategoryExpense, CategoryAsset, CategoryLiability, "":
	default:
		return fmt.Errorf("%w: unknown document category %q", ErrInvalidInvoice, i.DocumentCategory)
	}

	switch i.Status {
	case StatusPending, StatusPaid, StatusApproved, StatusReviewed, StatusSynced, StatusError:
	case "":
		return fmt.Errorf("%w: invoice must have a status", ErrInvalidInvoice)
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInvoice, i.Status)
	}

	if i.TaxableAmount.IsNegative() || i.CGST.IsNegative() || i.SGST.IsNegative() || i.IGST.IsNegative() {
		return fmt.Errorf("%w: amounts cannot be negative", ErrInvalidInvoice)
	}

	componentSum := i.CGST.Add(i.SGST).Add(i.IGST)
	if !i.TotalGST.Equal(componentSum) {
		return fmt.Errorf("%w: total GST %s does not equal CGST+SGST+IGST %s",
			ErrInvalidInvoice, i.TotalGST, componentSum)
	}

	if !i.TotalWithGST.Equal(i.TaxableAmount.Add(i.TotalGST)) {
		return fmt.Errorf("%w: total with GST %s does not equal taxable %s + GST %s",
			ErrInvalidInvoice, i.TotalWithGST, i.TaxableAmount, i.TotalGST)
	}

	return nil
}

// Normalize repairs the derivable totals from the GST components. It is used
// by the extraction pipeline, where the model occasionally returns totals that
// disagree with the components it also returned; the components win.
func (i *Invoice) Normalize() {
	componentSum := i.CGST.Add(i.SGST).Add(i.IGST)
	if !i.TotalGST.Equal(componentSum) {
		i.TotalGST = componentSum
	}
	if !i.TotalWithGST.Equal(i.TaxableAmount.Add(i.TotalGST)) {
		i.TotalWithGST = i.TaxableAmount.Add(i.TotalGST)
	}
	if i.Status == "" {
		i.Status = StatusPending
	}
}

// DaysOutstanding returns whole days elapsed since the invoice was issued.
// Negative for invoices dated in the future.
func (i *Invoice) DaysOutstanding(today time.Time) int {
	return int(today.Sub(i.DateOfIssue).Hours() / 24)
}
