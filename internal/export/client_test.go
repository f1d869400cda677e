package export_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finpulse/internal/core"
	"finpulse/internal/export"
)

func TestClient_CreateInvoice(t *testing.T) {
	var gotAuth string
	var gotPayload export.InvoicePayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/invoices" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("organization_id") != "600123" {
			t.Errorf("organization_id = %q, want 600123", r.URL.Query().Get("organization_id"))
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    0,
			"message": "Invoice created",
			"invoice": map[string]string{"invoice_id": "ZB-9001"},
		})
	}))
	defer srv.Close()

	client := export.NewClient(srv.URL, "token-abc", "600123")
	payload := export.MapInvoice(core.Invoice{
		InvoiceNumber: "INV-1",
		CustomerName:  "Acme",
		DateOfIssue:   time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		TaxableAmount: d("100.00"),
		TotalWithGST:  d("100.00"),
	}, time.Now())

	id, err := client.CreateInvoice(context.Background(), payload)
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	if id != "ZB-9001" {
		t.Errorf("external id = %s, want ZB-9001", id)
	}
	if gotAuth != "Zoho-oauthtoken token-abc" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotPayload.InvoiceNumber != "INV-1" {
		t.Errorf("submitted invoice number = %s, want INV-1", gotPayload.InvoiceNumber)
	}
}

func TestClient_CreateInvoice_Rejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    4022,
			"message": "GSTIN is invalid",
		})
	}))
	defer srv.Close()

	client := export.NewClient(srv.URL, "token-abc", "600123")
	_, err := client.CreateInvoice(context.Background(), export.InvoicePayload{})
	if err == nil {
		t.Fatal("expected error for non-zero Zoho code")
	}
}

func TestClient_CreateInvoice_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := export.NewClient(srv.URL, "bad-token", "600123")
	_, err := client.CreateInvoice(context.Background(), export.InvoicePayload{})
	if err == nil {
		t.Fatal("expected error for HTTP 401")
	}
}
