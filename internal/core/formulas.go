package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Heuristic constants used across the dashboard metrics. These are deliberate
// simplifications carried over from product decisions, not statutory
// computations: TDS is a flat 10% of pending payables rather than a per-payee
// slab lookup, advance tax assumes a flat 26% (25% corporate rate + cess), and
// shortfall interest is a flat 1% per month rather than the full Section 234C
// arithmetic. Do not replace them with "correct" tax math.
var (
	tdsRate            = decimal.RequireFromString("0.10")
	advanceTaxRate     = decimal.RequireFromString("0.26")
	shortfallInterest  = decimal.RequireFromString("0.01")
	advanceTaxPercents = [4]int64{15, 45, 75, 100}
)

// AggregateReceivables sums totals of pending revenue invoices. Records with
// missing amounts contribute zero.
func AggregateReceivables(invoices []Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.DocumentCategory == CategoryRevenue && inv.Status == StatusPending {
			total = total.Add(inv.TotalWithGST)
		}
	}
	return total
}

// AggregatePayables sums totals of pending expense and liability invoices.
// A record with no category at all counts as an expense: bills arriving from
// extraction frequently omit the category, and dropping them would understate
// payables.
func AggregatePayables(invoices []Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.Status != StatusPending {
			continue
		}
		switch inv.DocumentCategory {
		case CategoryExpense, CategoryLiability, "":
			total = total.Add(inv.TotalWithGST)
		}
	}
	return total
}

// MonthlyGSTLiability computes net GST payable for the calendar month of
// today: output GST collected on revenue minus input GST credit on expense
// and liability documents, floored at zero (excess input credit carries
// forward, it is never a negative liability).
func MonthlyGSTLiability(invoices []Invoice, today time.Time) decimal.Decimal {
	outputGST := decimal.Zero
	inputGST := decimal.Zero

	for _, inv := range invoices {
		if inv.DateOfIssue.Year() != today.Year() || inv.DateOfIssue.Month() != today.Month() {
			continue
		}
		switch inv.DocumentCategory {
		case CategoryRevenue:
			outputGST = outputGST.Add(inv.TotalGST)
		case CategoryExpense, CategoryLiability:
			inputGST = inputGST.Add(inv.TotalGST)
		}
	}

	liability := outputGST.Sub(inputGST)
	if liability.IsNegative() {
		return decimal.Zero
	}
	return liability
}

// EstimateTDS returns the flat 10% withholding estimate on pending payables.
func EstimateTDS(payables decimal.Decimal) decimal.Decimal {
	return payables.Mul(tdsRate)
}

// AdvanceTaxQuarter is one installment of the Indian advance-tax schedule.
// The four quarters are always computed together from a single
// (estimatedIncome, taxPaidTillDate, fyStartYear) triple.
type AdvanceTaxQuarter struct {
	Quarter           int             `json:"quarter"`
	DueDate           time.Time       `json:"due_date"`
	CumulativePercent int64           `json:"cumulative_percent"`
	CumulativeTax     decimal.Decimal `json:"cumulative_tax"`
	QuarterTax        decimal.Decimal `json:"quarter_tax"`
	Shortfall         decimal.Decimal `json:"shortfall"`
	DaysUntilDue      int             `json:"days_until_due"`
	IsPast            bool            `json:"is_past"`
	IsCurrent         bool            `json:"is_current"`
	MonthlyInterest   decimal.Decimal `json:"monthly_interest"`
}

// AdvanceTaxSchedule computes the four-installment advance-tax schedule for
// the financial year starting 1 April of fyStartYear. Due dates are fixed by
// statute: 15 June, 15 September, 15 December of fyStartYear and 15 March of
// the following calendar year, with cumulative milestones of 15/45/75/100%.
// MonthlyInterest is the 1%-per-month estimate on the shortfall, reported on
// the current quarter only (due within the next 30 days).
func AdvanceTaxSchedule(estimatedIncome, taxPaidTillDate decimal.Decimal, fyStartYear int, today time.Time) [4]AdvanceTaxQuarter {
	totalTax := estimatedIncome.Mul(advanceTaxRate)

	dueDates := [4]time.Time{
		time.Date(fyStartYear, time.June, 15, 0, 0, 0, 0, time.UTC),
		time.Date(fyStartYear, time.September, 15, 0, 0, 0, 0, time.UTC),
		time.Date(fyStartYear, time.December, 15, 0, 0, 0, 0, time.UTC),
		time.Date(fyStartYear+1, time.March, 15, 0, 0, 0, 0, time.UTC),
	}

	var schedule [4]AdvanceTaxQuarter
	prevCumulative := decimal.Zero

	for i := 0; i < 4; i++ {
		cumulative := totalTax.Mul(decimal.NewFromInt(advanceTaxPercents[i])).Div(decimal.NewFromInt(100))

		shortfall := cumulative.Sub(taxPaidTillDate)
		if shortfall.IsNegative() {
			shortfall = decimal.Zero
		}

		daysUntilDue := int(dueDates[i].Sub(today).Hours() / 24)
		isCurrent := daysUntilDue >= 0 && daysUntilDue <= 30

		interest := decimal.Zero
		if isCurrent {
			interest = shortfall.Mul(shortfallInterest)
		}

		schedule[i] = AdvanceTaxQuarter{
			Quarter:           i + 1,
			DueDate:           dueDates[i],
			CumulativePercent: advanceTaxPercents[i],
			CumulativeTax:     cumulative,
			QuarterTax:        cumulative.Sub(prevCumulative),
			Shortfall:         shortfall,
			DaysUntilDue:      daysUntilDue,
			IsPast:            daysUntilDue < 0,
			IsCurrent:         isCurrent,
			MonthlyInterest:   interest,
		}
		prevCumulative = cumulative
	}

	return schedule
}

// CashConversionCycle is the classic CCC identity. The result may be
// negative, which is a favorable cycle (suppliers finance the operation).
func CashConversionCycle(inventoryDays, receivableDays, payableDays int) int {
	return inventoryDays + receivableDays - payableDays
}

// WorkingCapitalGap returns the net gap between the operating cycle and the
// credit cycle plus its status label. Exactly zero is "neutral", not
// "surplus".
func WorkingCapitalGap(operatingCycleDays, creditCycleDays int) (int, string) {
	netGap := operatingCycleDays - creditCycleDays
	switch {
	case netGap < 0:
		return netGap, "surplus"
	case netGap > 0:
		return netGap, "gap"
	default:
		return netGap, "neutral"
	}
}

// AgingEntry is one pending receivable with its derived aging position.
// Computed fresh on every read, never persisted.
type AgingEntry struct {
	InvoiceID       int             `json:"invoice_id"`
	InvoiceNumber   string          `json:"invoice_number"`
	CustomerName    string          `json:"customer_name"`
	DaysOutstanding int             `json:"days_outstanding"`
	Amount          decimal.Decimal `json:"amount"`
	Aging           AgingLabel      `json:"aging"`
}

// AgingReport is the receivables-risk view: per-invoice aging entries plus
// locked-cash totals per 3-way bucket.
type AgingReport struct {
	Entries     []AgingEntry               `json:"entries"`
	Locked      map[Bucket]decimal.Decimal `json:"locked_by_bucket"`
	TotalLocked decimal.Decimal            `json:"total_locked"`
}

// AgingSummary builds the receivables aging report over pending revenue
// invoices as of today.
func AgingSummary(invoices []Invoice, today time.Time) AgingReport {
	report := AgingReport{
		Locked: map[Bucket]decimal.Decimal{
			Bucket0To30:  decimal.Zero,
			Bucket31To45: decimal.Zero,
			Bucket46Plus: decimal.Zero,
		},
		TotalLocked: decimal.Zero,
	}

	for _, inv := range invoices {
		if inv.DocumentCategory != CategoryRevenue || inv.Status != StatusPending {
			continue
		}
		days := inv.DaysOutstanding(today)
		report.Entries = append(report.Entries, AgingEntry{
			InvoiceID:       inv.ID,
			InvoiceNumber:   inv.InvoiceNumber,
			CustomerName:    inv.CustomerName,
			DaysOutstanding: days,
			Amount:          inv.TotalWithGST,
			Aging:           ClassifyAging(days),
		})
		bucket := AgingBucket(days)
		report.Locked[bucket] = report.Locked[bucket].Add(inv.TotalWithGST)
		report.TotalLocked = report.TotalLocked.Add(inv.TotalWithGST)
	}

	return report
}
