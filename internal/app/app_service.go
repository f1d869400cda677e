package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finpulse/internal/ai"
	"finpulse/internal/core"
	"finpulse/internal/export"
)

// ErrSyncNotConfigured is returned by SyncInvoice when no Zoho credentials
// were provided at startup.
var ErrSyncNotConfigured = errors.New("zoho sync is not configured")

type appService struct {
	invoices core.InvoiceService
	zoho     *export.Client
	agent    ai.AgentService
	now      func() time.Time
}

var _ ApplicationService = (*appService)(nil)

// NewAppService constructs an appService that satisfies ApplicationService.
// zoho may be nil when outbound sync is not configured; agent may be nil when
// extraction is not configured.
func NewAppService(invoices core.InvoiceService, zoho *export.Client, agent ai.AgentService) ApplicationService {
	return &appService{
		invoices: invoices,
		zoho:     zoho,
		agent:    agent,
		now:      time.Now,
	}
}

func (s *appService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResult, error) {
	dateOfIssue, err := time.Parse("2006-01-02", req.DateOfIssue)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date_of_issue %q", core.ErrInvalidInvoice, req.DateOfIssue)
	}

	inv := core.Invoice{
		DocumentCategory: core.DocumentCategory(req.DocumentCategory),
		InvoiceNumber:    req.InvoiceNumber,
		VendorName:       req.VendorName,
		CustomerName:     req.CustomerName,
		CustomerGSTIN:    req.CustomerGSTIN,
		VendorGSTIN:      req.VendorGSTIN,
		DateOfIssue:      dateOfIssue,
		TaxableAmount:    req.TaxableAmount,
		CGST:             req.CGST,
		SGST:             req.SGST,
		IGST:             req.IGST,
		TotalGST:         req.TotalGST,
		TotalWithGST:     req.TotalWithGST,
		Status:           core.StatusPending,
		PlaceOfSupply:    req.PlaceOfSupply,
		ExpenseAccount:   req.ExpenseAccount,
	}

	if req.DueDate != "" {
		dueDate, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due_date %q", core.ErrInvalidInvoice, req.DueDate)
		}
		inv.DueDate = &dueDate
	}

	// Derive totals the caller left blank; totals the caller did supply are
	// kept as-is so Validate can reject genuinely inconsistent submissions.
	componentSum := inv.CGST.Add(inv.SGST).Add(inv.IGST)
	if inv.TotalGST.IsZero() {
		inv.TotalGST = componentSum
	}
	if inv.TotalWithGST.IsZero() {
		inv.TotalWithGST = inv.TaxableAmount.Add(inv.TotalGST)
	}

	id, err := s.invoices.Create(ctx, inv)
	if err != nil {
		return nil, err
	}
	return s.GetInvoice(ctx, id)
}

func (s *appService) GetInvoice(ctx context.Context, id int) (*InvoiceResult, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

func (s *appService) ListInvoices(ctx context.Context, status, category string) (*InvoiceListResult, error) {
	var filter core.InvoiceFilter
	if status != "" {
		st := core.InvoiceStatus(status)
		filter.Status = &st
	}
	if category != "" {
		cat := core.DocumentCategory(category)
		filter.Category = &cat
	}

	invoices, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: invoices, Count: len(invoices)}, nil
}

func (s *appService) UpdateInvoiceStatus(ctx context.Context, id int, status string) (*InvoiceResult, error) {
	if err := s.invoices.UpdateStatus(ctx, id, core.InvoiceStatus(status)); err != nil {
		return nil, err
	}
	return s.GetInvoice(ctx, id)
}

func (s *appService) GetDashboardMetrics(ctx context.Context) (*DashboardResult, error) {
	invoices, err := s.invoices.List(ctx, core.InvoiceFilter{})
	if err != nil {
		return nil, err
	}

	today := s.now()
	payables := core.AggregatePayables(invoices)

	return &DashboardResult{
		Receivables:         core.AggregateReceivables(invoices),
		Payables:            payables,
		MonthlyGSTLiability: core.MonthlyGSTLiability(invoices, today),
		TDSEstimate:         core.EstimateTDS(payables),
		Aging:               core.AgingSummary(invoices, today),
		AsOf:                today.Format("2006-01-02"),
	}, nil
}

func (s *appService) GetAdvanceTaxSchedule(ctx context.Context, req AdvanceTaxRequest) (*AdvanceTaxResult, error) {
	fy := req.FYStartYear
	if fy == 0 {
		// Default to the financial year containing today (FY starts 1 April).
		today := s.now()
		fy = today.Year()
		if today.Month() < time.April {
			fy--
		}
	}

	schedule := core.AdvanceTaxSchedule(req.EstimatedIncome, req.TaxPaidTillDate, fy, s.now())
	return &AdvanceTaxResult{
		Schedule:    schedule,
		TotalTax:    schedule[3].CumulativeTax,
		FYStartYear: fy,
	}, nil
}

func (s *appService) GetCashCycle(ctx context.Context, req CashCycleRequest) (*CashCycleResult, error) {
	ccc := core.CashConversionCycle(req.InventoryDays, req.ReceivableDays, req.PayableDays)
	netGap, status := core.WorkingCapitalGap(ccc, req.CreditCycleDays)
	return &CashCycleResult{
		CashConversionCycleDays: ccc,
		NetGapDays:              netGap,
		GapStatus:               status,
	}, nil
}

func (s *appService) SyncInvoice(ctx context.Context, id int) (*SyncResult, error) {
	if s.zoho == nil {
		return nil, ErrSyncNotConfigured
	}

	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != core.StatusApproved {
		return nil, fmt.Errorf("%w: invoice %d is %s, only approved invoices sync",
			core.ErrInvalidTransition, id, inv.Status)
	}

	payload := export.MapInvoice(*inv, s.now())

	externalID, err := s.zoho.CreateInvoice(ctx, payload)
	if err != nil {
		if recErr := s.invoices.RecordSyncFailure(ctx, id, err.Error()); recErr != nil {
			return nil, fmt.Errorf("sync failed (%v) and failure could not be recorded: %w", err, recErr)
		}
		return &SyncResult{InvoiceID: id, Payload: &payload, Synced: false, Error: err.Error()}, nil
	}

	if err := s.invoices.MarkSynced(ctx, id, externalID); err != nil {
		return nil, fmt.Errorf("invoice synced as %s but could not be marked: %w", externalID, err)
	}

	return &SyncResult{InvoiceID: id, ExternalID: externalID, Payload: &payload, Synced: true}, nil
}

func (s *appService) ExtractInvoice(ctx context.Context, req ExtractRequest) (*InvoiceResult, error) {
	if s.agent == nil {
		return nil, errors.New("extraction is not configured")
	}
	if req.DocumentText == "" {
		return nil, errors.New("document_text is required")
	}

	inv, err := s.agent.ExtractInvoice(ctx, req.DocumentText, req.SourcePDF)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	id, err := s.invoices.Create(ctx, *inv)
	if err != nil {
		return nil, fmt.Errorf("failed to store extracted invoice: %w", err)
	}
	return s.GetInvoice(ctx, id)
}
