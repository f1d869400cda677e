package app

import (
	"finpulse/internal/core"
	"finpulse/internal/export"

	"github.com/shopspring/decimal"
)

// InvoiceResult is returned by single-invoice operations.
type InvoiceResult struct {
	Invoice *core.Invoice `json:"invoice"`
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.Invoice `json:"invoices"`
	Count    int            `json:"count"`
}

// DashboardResult is the dashboard metrics bundle.
type DashboardResult struct {
	Receivables         decimal.Decimal  `json:"receivables"`
	Payables            decimal.Decimal  `json:"payables"`
	MonthlyGSTLiability decimal.Decimal  `json:"monthly_gst_liability"`
	TDSEstimate         decimal.Decimal  `json:"tds_estimate"`
	Aging               core.AgingReport `json:"aging"`
	AsOf                string           `json:"as_of"` // YYYY-MM-DD
}

// AdvanceTaxResult is returned by GetAdvanceTaxSchedule.
type AdvanceTaxResult struct {
	Schedule    [4]core.AdvanceTaxQuarter `json:"schedule"`
	TotalTax    decimal.Decimal           `json:"total_tax"`
	FYStartYear int                       `json:"fy_start_year"`
}

// CashCycleResult is returned by GetCashCycle.
type CashCycleResult struct {
	CashConversionCycleDays int    `json:"cash_conversion_cycle_days"`
	NetGapDays              int    `json:"net_gap_days"`
	GapStatus               string `json:"gap_status"`
}

// SyncResult is returned by SyncInvoice.
type SyncResult struct {
	InvoiceID  int                    `json:"invoice_id"`
	ExternalID string                 `json:"external_id,omitempty"`
	Payload    *export.InvoicePayload `json:"payload"`
	Synced     bool                   `json:"synced"`
	Error      string                 `json:"error,omitempty"`
}
