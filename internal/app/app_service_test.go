package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finpulse/internal/core"
	"finpulse/internal/export"

	"github.com/shopspring/decimal"
)

// memInvoices is an in-memory InvoiceService so the application service can
// be tested without Postgres.
type memInvoices struct {
	invoices map[int]core.Invoice
	nextID   int
	failures []string
}

func newMemInvoices() *memInvoices {
	return &memInvoices{invoices: map[int]core.Invoice{}, nextID: 1}
}

func (m *memInvoices) Create(ctx context.Context, inv core.Invoice) (int, error) {
	if inv.Status == "" {
		inv.Status = core.StatusPending
	}
	if err := inv.Validate(); err != nil {
		return 0, err
	}
	inv.ID = m.nextID
	m.invoices[inv.ID] = inv
	m.nextID++
	return inv.ID, nil
}

func (m *memInvoices) Get(ctx context.Context, id int) (*core.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, core.ErrInvoiceNotFound
	}
	return &inv, nil
}

func (m *memInvoices) List(ctx context.Context, filter core.InvoiceFilter) ([]core.Invoice, error) {
	var out []core.Invoice
	for _, inv := range m.invoices {
		if filter.Status != nil && inv.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && inv.DocumentCategory != *filter.Category {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (m *memInvoices) UpdateStatus(ctx context.Context, id int, status core.InvoiceStatus) error {
	inv, ok := m.invoices[id]
	if !ok {
		return core.ErrInvoiceNotFound
	}
	inv.Status = status
	m.invoices[id] = inv
	return nil
}

func (m *memInvoices) MarkSynced(ctx context.Context, id int, externalID string) error {
	return m.UpdateStatus(ctx, id, core.StatusSynced)
}

func (m *memInvoices) RecordSyncFailure(ctx context.Context, id int, reason string) error {
	m.failures = append(m.failures, reason)
	return m.UpdateStatus(ctx, id, core.StatusError)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedService(store *memInvoices, zoho *export.Client, now time.Time) *appService {
	return &appService{
		invoices: store,
		zoho:     zoho,
		now:      func() time.Time { return now },
	}
}

func seedInvoice(t *testing.T, store *memInvoices, status core.InvoiceStatus) int {
	t.Helper()
	inv := core.Invoice{
		DocumentCategory: core.CategoryRevenue,
		InvoiceNumber:    "INV-7",
		CustomerName:     "Acme",
		DateOfIssue:      time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		TaxableAmount:    dec("1000.00"),
		CGST:             dec("90.00"),
		SGST:             dec("90.00"),
		TotalGST:         dec("180.00"),
		TotalWithGST:     dec("1180.00"),
		Status:           core.StatusPending,
		PlaceOfSupply:    "Karnataka",
	}
	id, err := store.Create(context.Background(), inv)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if status != core.StatusPending {
		_ = store.UpdateStatus(context.Background(), id, status)
	}
	return id
}

func TestCreateInvoice_DerivesMissingTotals(t *testing.T) {
	store := newMemInvoices()
	svc := fixedService(store, nil, time.Now())

	result, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		DocumentCategory: "revenue",
		CustomerName:     "Acme",
		DateOfIssue:      "2026-08-01",
		TaxableAmount:    dec("1000.00"),
		CGST:             dec("90.00"),
		SGST:             dec("90.00"),
		// TotalGST and TotalWithGST deliberately omitted
	})
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	if !result.Invoice.TotalGST.Equal(dec("180.00")) {
		t.Errorf("TotalGST = %s, want 180.00", result.Invoice.TotalGST)
	}
	if !result.Invoice.TotalWithGST.Equal(dec("1180.00")) {
		t.Errorf("TotalWithGST = %s, want 1180.00", result.Invoice.TotalWithGST)
	}
}

func TestCreateInvoice_RejectsInconsistentTotals(t *testing.T) {
	store := newMemInvoices()
	svc := fixedService(store, nil, time.Now())

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		DocumentCategory: "revenue",
		DateOfIssue:      "2026-08-01",
		TaxableAmount:    dec("1000.00"),
		CGST:             dec("90.00"),
		SGST:             dec("90.00"),
		TotalGST:         dec("180.00"),
		TotalWithGST:     dec("2000.00"), // violates the invariant
	})
	if err == nil {
		t.Fatal("expected rejection of inconsistent totals")
	}
	if !errors.Is(err, core.ErrInvalidInvoice) {
		t.Errorf("error %v does not wrap ErrInvalidInvoice", err)
	}
}

func TestCreateInvoice_RejectsBadDates(t *testing.T) {
	store := newMemInvoices()
	svc := fixedService(store, nil, time.Now())

	for _, req := range []CreateInvoiceRequest{
		{DocumentCategory: "revenue", DateOfIssue: "01/08/2026"},
		{DocumentCategory: "revenue", DateOfIssue: "2026-08-01", DueDate: "soon"},
	} {
		_, err := svc.CreateInvoice(context.Background(), req)
		if !errors.Is(err, core.ErrInvalidInvoice) {
			t.Errorf("CreateInvoice(%+v) error = %v, want ErrInvalidInvoice", req, err)
		}
	}
}

func TestGetDashboardMetrics(t *testing.T) {
	store := newMemInvoices()
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	svc := fixedService(store, nil, now)
	seedInvoice(t, store, core.StatusPending)

	result, err := svc.GetDashboardMetrics(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardMetrics failed: %v", err)
	}
	if !result.Receivables.Equal(dec("1180.00")) {
		t.Errorf("receivables = %s, want 1180.00", result.Receivables)
	}
	if !result.MonthlyGSTLiability.Equal(dec("180.00")) {
		t.Errorf("monthly GST = %s, want 180.00", result.MonthlyGSTLiability)
	}
	if result.AsOf != "2026-08-20" {
		t.Errorf("as_of = %s, want 2026-08-20", result.AsOf)
	}
	if got := len(result.Aging.Entries); got != 1 {
		t.Errorf("aging entries = %d, want 1", got)
	}
}

func TestSyncInvoice_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    0,
			"invoice": map[string]string{"invoice_id": "ZB-55"},
		})
	}))
	defer srv.Close()

	store := newMemInvoices()
	svc := fixedService(store, export.NewClient(srv.URL, "tok", "org"), time.Now())
	id := seedInvoice(t, store, core.StatusApproved)

	result, err := svc.SyncInvoice(context.Background(), id)
	if err != nil {
		t.Fatalf("SyncInvoice failed: %v", err)
	}
	if !result.Synced || result.ExternalID != "ZB-55" {
		t.Errorf("result = %+v, want synced with ZB-55", result)
	}

	got, _ := store.Get(context.Background(), id)
	if got.Status != core.StatusSynced {
		t.Errorf("status = %s, want synced", got.Status)
	}
}

func TestSyncInvoice_RemoteFailureRecorded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newMemInvoices()
	svc := fixedService(store, export.NewClient(srv.URL, "bad", "org"), time.Now())
	id := seedInvoice(t, store, core.StatusApproved)

	result, err := svc.SyncInvoice(context.Background(), id)
	if err != nil {
		t.Fatalf("SyncInvoice should report the failure in the result, got error: %v", err)
	}
	if result.Synced || result.Error == "" {
		t.Errorf("result = %+v, want unsynced with error detail", result)
	}

	got, _ := store.Get(context.Background(), id)
	if got.Status != core.StatusError {
		t.Errorf("status = %s, want error", got.Status)
	}
	if len(store.failures) != 1 {
		t.Errorf("recorded %d failures, want 1", len(store.failures))
	}
}

func TestSyncInvoice_OnlyApprovedInvoicesSync(t *testing.T) {
	store := newMemInvoices()
	svc := fixedService(store, export.NewClient("http://unused", "tok", "org"), time.Now())
	id := seedInvoice(t, store, core.StatusPending)

	_, err := svc.SyncInvoice(context.Background(), id)
	if !errors.Is(err, core.ErrInvalidTransition) {
		t.Errorf("sync of pending invoice = %v, want ErrInvalidTransition", err)
	}
}

func TestSyncInvoice_NotConfigured(t *testing.T) {
	store := newMemInvoices()
	svc := fixedService(store, nil, time.Now())
	id := seedInvoice(t, store, core.StatusApproved)

	_, err := svc.SyncInvoice(context.Background(), id)
	if !errors.Is(err, ErrSyncNotConfigured) {
		t.Errorf("got %v, want ErrSyncNotConfigured", err)
	}
}

func TestGetCashCycle(t *testing.T) {
	svc := fixedService(newMemInvoices(), nil, time.Now())

	result, err := svc.GetCashCycle(context.Background(), CashCycleRequest{
		InventoryDays:   45,
		ReceivableDays:  30,
		PayableDays:     20,
		CreditCycleDays: 60,
	})
	if err != nil {
		t.Fatalf("GetCashCycle failed: %v", err)
	}
	if result.CashConversionCycleDays != 55 {
		t.Errorf("CCC = %d, want 55", result.CashConversionCycleDays)
	}
	if result.NetGapDays != -5 || result.GapStatus != "surplus" {
		t.Errorf("gap = %d %s, want -5 surplus", result.NetGapDays, result.GapStatus)
	}
}

func TestGetAdvanceTaxSchedule_DefaultsFY(t *testing.T) {
	// February 2027 is still FY 2026 (Indian FY starts 1 April).
	now := time.Date(2027, time.February, 10, 0, 0, 0, 0, time.UTC)
	svc := fixedService(newMemInvoices(), nil, now)

	result, err := svc.GetAdvanceTaxSchedule(context.Background(), AdvanceTaxRequest{
		EstimatedIncome: dec("1000000"),
	})
	if err != nil {
		t.Fatalf("GetAdvanceTaxSchedule failed: %v", err)
	}
	if result.FYStartYear != 2026 {
		t.Errorf("fy = %d, want 2026", result.FYStartYear)
	}
	if !result.TotalTax.Equal(dec("260000")) {
		t.Errorf("total tax = %s, want 260000", result.TotalTax)
	}
}
