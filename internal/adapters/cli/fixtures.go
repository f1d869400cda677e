package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"finpulse/internal/core"

	"github.com/shopspring/decimal"
)

// fixtureInvoice is the on-disk invoice shape for finctl fixtures. Dates are
// plain YYYY-MM-DD strings, which is what people actually write in fixture
// files; amounts accept JSON numbers or strings.
type fixtureInvoice struct {
	ID               int             `json:"id"`
	DocumentCategory string          `json:"document_category"`
	InvoiceNumber    string          `json:"invoice_number"`
	VendorName       string          `json:"vendor_name"`
	CustomerName     string          `json:"customer_name"`
	CustomerGSTIN    string          `json:"customer_gstin"`
	VendorGSTIN      string          `json:"vendor_gstin"`
	DateOfIssue      string          `json:"date_of_issue"`
	DueDate          string          `json:"due_date"`
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	CGST             decimal.Decimal `json:"cgst"`
	SGST             decimal.Decimal `json:"sgst"`
	IGST             decimal.Decimal `json:"igst"`
	TotalGST         decimal.Decimal `json:"total_gst"`
	TotalWithGST     decimal.Decimal `json:"total_with_gst"`
	Status           string          `json:"status"`
	PlaceOfSupply    string          `json:"place_of_supply"`
	ExpenseAccount   string          `json:"expense_account"`
}

func (f *fixtureInvoice) toInvoice() (core.Invoice, error) {
	inv := core.Invoice{
		ID:               f.ID,
		DocumentCategory: core.DocumentCategory(f.DocumentCategory),
		InvoiceNumber:    f.InvoiceNumber,
		VendorName:       f.VendorName,
		CustomerName:     f.CustomerName,
		CustomerGSTIN:    f.CustomerGSTIN,
		VendorGSTIN:      f.VendorGSTIN,
		TaxableAmount:    f.TaxableAmount,
		CGST:             f.CGST,
		SGST:             f.SGST,
		IGST:             f.IGST,
		TotalGST:         f.TotalGST,
		TotalWithGST:     f.TotalWithGST,
		Status:           core.InvoiceStatus(f.Status),
		PlaceOfSupply:    f.PlaceOfSupply,
		ExpenseAccount:   f.ExpenseAccount,
	}

	if f.DateOfIssue != "" {
		d, err := time.Parse("2006-01-02", f.DateOfIssue)
		if err != nil {
			return inv, fmt.Errorf("invalid date_of_issue %q: %w", f.DateOfIssue, err)
		}
		inv.DateOfIssue = d
	}
	if f.DueDate != "" {
		d, err := time.Parse("2006-01-02", f.DueDate)
		if err != nil {
			return inv, fmt.Errorf("invalid due_date %q: %w", f.DueDate, err)
		}
		inv.DueDate = &d
	}

	return inv, nil
}

// loadInvoices reads a JSON array of fixture invoices from path.
func loadInvoices(path string) ([]core.Invoice, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fixtures []fixtureInvoice
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	invoices := make([]core.Invoice, 0, len(fixtures))
	for i := range fixtures {
		inv, err := fixtures[i].toInvoice()
		if err != nil {
			return nil, fmt.Errorf("invoice %d: %w", i, err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
