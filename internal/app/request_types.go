package app

import "github.com/shopspring/decimal"

// CreateInvoiceRequest carries a new invoice from an adapter. Amount fields
// are decimal strings on the wire; decoding happens in the adapter and the
// decimals arrive here already parsed.
type CreateInvoiceRequest struct {
	DocumentCategory string          `json:"document_category"`
	InvoiceNumber    string          `json:"invoice_number"`
	VendorName       string          `json:"vendor_name"`
	CustomerName     string          `json:"customer_name"`
	CustomerGSTIN    string          `json:"customer_gstin"`
	VendorGSTIN      string          `json:"vendor_gstin"`
	DateOfIssue      string          `json:"date_of_issue"` // YYYY-MM-DD
	DueDate          string          `json:"due_date"`      // YYYY-MM-DD, optional
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	CGST             decimal.Decimal `json:"cgst"`
	SGST             decimal.Decimal `json:"sgst"`
	IGST             decimal.Decimal `json:"igst"`
	TotalGST         decimal.Decimal `json:"total_gst"`
	TotalWithGST     decimal.Decimal `json:"total_with_gst"`
	PlaceOfSupply    string          `json:"place_of_supply"`
	ExpenseAccount   string          `json:"expense_account"`
}

// AdvanceTaxRequest carries the advance-tax estimate inputs.
type AdvanceTaxRequest struct {
	EstimatedIncome decimal.Decimal `json:"estimated_income"`
	TaxPaidTillDate decimal.Decimal `json:"tax_paid_till_date"`
	FYStartYear     int             `json:"fy_start_year"`
}

// CashCycleRequest carries the working-capital cycle inputs, all in days.
type CashCycleRequest struct {
	InventoryDays   int `json:"inventory_days"`
	ReceivableDays  int `json:"receivable_days"`
	PayableDays     int `json:"payable_days"`
	CreditCycleDays int `json:"credit_cycle_days"`
}

// ExtractRequest carries raw document text into the AI extraction pipeline.
type ExtractRequest struct {
	DocumentText string `json:"document_text"`
	SourcePDF    string `json:"source_pdf"`
}
