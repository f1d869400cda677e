package cli

import (
	"os"
	"path/filepath"
	"testing"

	"finpulse/internal/core"
)

func TestLoadInvoices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.json")
	fixture := `[
		{
			"document_category": "revenue",
			"invoice_number": "INV-1",
			"customer_name": "Acme",
			"date_of_issue": "2026-08-01",
			"taxable_amount": "1000.00",
			"cgst": 90,
			"sgst": 90,
			"total_gst": 180,
			"total_with_gst": 1180,
			"status": "pending",
			"place_of_supply": "Karnataka"
		},
		{
			"document_category": "expense",
			"vendor_name": "Paper Co",
			"date_of_issue": "2026-07-15",
			"due_date": "2026-08-15",
			"total_with_gst": "590.00",
			"status": "pending"
		}
	]`
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}

	invoices, err := loadInvoices(path)
	if err != nil {
		t.Fatalf("loadInvoices failed: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("got %d invoices, want 2", len(invoices))
	}

	if invoices[0].DocumentCategory != core.CategoryRevenue {
		t.Errorf("category = %s, want revenue", invoices[0].DocumentCategory)
	}
	if invoices[0].DateOfIssue.Format("2006-01-02") != "2026-08-01" {
		t.Errorf("date = %s, want 2026-08-01", invoices[0].DateOfIssue.Format("2006-01-02"))
	}
	if invoices[1].DueDate == nil || invoices[1].DueDate.Format("2006-01-02") != "2026-08-15" {
		t.Errorf("due date not parsed: %v", invoices[1].DueDate)
	}
}

func TestLoadInvoices_BadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.json")
	if err := os.WriteFile(path, []byte(`[{"date_of_issue": "01/08/2026"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadInvoices(path); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}
