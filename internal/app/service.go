package app

import "context"

// ApplicationService is the single interface all adapters (web, CLI) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// CreateInvoice validates and persists a new invoice, returning it with
	// its assigned ID.
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResult, error)

	// GetInvoice returns a single invoice by ID.
	GetInvoice(ctx context.Context, id int) (*InvoiceResult, error)

	// ListInvoices returns invoices, optionally filtered by status and
	// document category.
	ListInvoices(ctx context.Context, status, category string) (*InvoiceListResult, error)

	// UpdateInvoiceStatus moves an invoice through its lifecycle.
	UpdateInvoiceStatus(ctx context.Context, id int, status string) (*InvoiceResult, error)

	// GetDashboardMetrics computes the dashboard aggregates (receivables,
	// payables, monthly GST liability, TDS estimate, receivables aging) over
	// all stored invoices as of today.
	GetDashboardMetrics(ctx context.Context) (*DashboardResult, error)

	// GetAdvanceTaxSchedule computes the four-quarter advance tax schedule
	// from the given estimates.
	GetAdvanceTaxSchedule(ctx context.Context, req AdvanceTaxRequest) (*AdvanceTaxResult, error)

	// GetCashCycle computes the cash conversion cycle and working capital
	// gap from the given cycle-day figures.
	GetCashCycle(ctx context.Context, req CashCycleRequest) (*CashCycleResult, error)

	// SyncInvoice maps an approved invoice to the Zoho payload and submits
	// it, recording the outcome either way.
	SyncInvoice(ctx context.Context, id int) (*SyncResult, error)

	// ExtractInvoice runs AI extraction over raw document text and persists
	// the resulting pending invoice.
	ExtractInvoice(ctx context.Context, req ExtractRequest) (*InvoiceResult, error)
}
