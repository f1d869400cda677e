package export

import (
	"fmt"
	"time"

	"finpulse/internal/core"

	"github.com/shopspring/decimal"
)

// GST treatment values Zoho Books accepts for a customer. The rule is binary:
// a customer GSTIN means a registered business, anything else is a consumer.
// (An earlier three-way rule with "overseas" for reverse-charge invoices was
// retired; do not resurrect it here without a product decision.)
const (
	TreatmentBusinessGST = "business_gst"
	TreatmentConsumer    = "consumer"
)

// Tax preference values for a line item.
const (
	TaxPreferenceTaxable    = "taxable"
	TaxPreferenceNonTaxable = "non_taxable"
)

// Customer is the nested customer block of an InvoicePayload. StateCode is
// nil when the place of supply could not be resolved; Zoho treats an absent
// code as "unspecified" which is preferable to a wrong one.
type Customer struct {
	Name         string  `json:"name"`
	GSTTreatment string  `json:"gst_treatment"`
	StateCode    *string `json:"state_code"`
}

// LineItem is a single invoice line. finpulse invoices are header-level
// documents, so export always produces exactly one synthetic line carrying
// the full taxable amount at quantity 1.
type LineItem struct {
	Name          string          `json:"name"`
	Rate          decimal.Decimal `json:"rate"`
	Quantity      int             `json:"quantity"`
	TaxPreference string          `json:"tax_preference"`
}

// GSTSummary mirrors the invoice's GST components.
type GSTSummary struct {
	CGST  decimal.Decimal `json:"cgst"`
	SGST  decimal.Decimal `json:"sgst"`
	IGST  decimal.Decimal `json:"igst"`
	Total decimal.Decimal `json:"total"`
}

// Totals carries the money totals Zoho validates against the line items.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Meta is provenance carried alongside the payload: which vendor the
// extractor read, how confident it was, and which source document and model
// produced the record.
type Meta struct {
	ExtractedVendor string          `json:"extracted_vendor,omitempty"`
	Confidence      decimal.Decimal `json:"confidence"`
	SourcePDF       string          `json:"source_pdf,omitempty"`
	ExtractionModel string          `json:"extraction_model,omitempty"`
}

// InvoicePayload is the outbound document submitted to the Zoho Books
// invoice-creation endpoint. It is rebuilt fresh from the source invoice on
// every sync call and never partially updated.
type InvoicePayload struct {
	InvoiceNumber string     `json:"invoice_number"`
	Date          string     `json:"date"`
	DueDate       string     `json:"due_date"`
	Customer      Customer   `json:"customer"`
	LineItems     []LineItem `json:"line_items"`
	GSTSummary    GSTSummary `json:"gst_summary"`
	Totals        Totals     `json:"totals"`
	Meta          Meta       `json:"meta"`
}

// MapInvoice normalizes an internal invoice into Zoho's shape. It never
// fails: every optional field has a default, and an unresolvable place of
// supply yields a nil state code. now is only used to generate a placeholder
// invoice number when the source record has none.
func MapInvoice(inv core.Invoice, now time.Time) InvoicePayload {
	invoiceNumber := inv.InvoiceNumber
	if invoiceNumber == "" {
		invoiceNumber = fmt.Sprintf("AI-%d", now.UnixMilli())
	}

	date := ""
	if !inv.DateOfIssue.IsZero() {
		date = inv.DateOfIssue.Format("2006-01-02")
	}
	dueDate := date
	if inv.DueDate != nil && !inv.DueDate.IsZero() {
		dueDate = inv.DueDate.Format("2006-01-02")
	}

	treatment := TreatmentConsumer
	if inv.CustomerGSTIN != "" {
		treatment = TreatmentBusinessGST
	}

	lineName := inv.ExpenseAccount
	if lineName == "" {
		lineName = "Imported Item"
	}

	taxPreference := TaxPreferenceNonTaxable
	if inv.CGST.IsPositive() || inv.SGST.IsPositive() || inv.IGST.IsPositive() {
		taxPreference = TaxPreferenceTaxable
	}

	return InvoicePayload{
		InvoiceNumber: invoiceNumber,
		Date:          date,
		DueDate:       dueDate,
		Customer: Customer{
			Name:         inv.CustomerName,
			GSTTreatment: treatment,
			StateCode:    StateCode(inv.PlaceOfSupply),
		},
		LineItems: []LineItem{{
			Name:          lineName,
			Rate:          inv.TaxableAmount,
			Quantity:      1,
			TaxPreference: taxPreference,
		}},
		GSTSummary: GSTSummary{
			CGST:  inv.CGST,
			SGST:  inv.SGST,
			IGST:  inv.IGST,
			Total: inv.TotalGST,
		},
		Totals: Totals{
			Subtotal:   inv.TaxableAmount,
			GrandTotal: inv.TotalWithGST,
		},
		Meta: Meta{
			ExtractedVendor: inv.VendorName,
			Confidence:      inv.Confidence,
			SourcePDF:       inv.SourcePDF,
			ExtractionModel: inv.ExtractionModel,
		},
	}
}
