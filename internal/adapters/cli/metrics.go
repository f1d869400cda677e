package cli

import (
	"fmt"
	"time"

	"finpulse/internal/core"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var metricsAsOf string

var metricsCmd = &cobra.Command{
	Use:   "metrics <invoices.json>",
	Short: "Compute dashboard metrics from an invoice fixture file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invoices, err := loadInvoices(args[0])
		if err != nil {
			return err
		}

		today := time.Now()
		if metricsAsOf != "" {
			if today, err = time.Parse("2006-01-02", metricsAsOf); err != nil {
				return fmt.Errorf("invalid --as-of %q: %w", metricsAsOf, err)
			}
		}

		payables := core.AggregatePayables(invoices)
		out := struct {
			Receivables         decimal.Decimal  `json:"receivables"`
			Payables            decimal.Decimal  `json:"payables"`
			MonthlyGSTLiability decimal.Decimal  `json:"monthly_gst_liability"`
			TDSEstimate         decimal.Decimal  `json:"tds_estimate"`
			Aging               core.AgingReport `json:"aging"`
		}{
			Receivables:         core.AggregateReceivables(invoices),
			Payables:            payables,
			MonthlyGSTLiability: core.MonthlyGSTLiability(invoices, today),
			TDSEstimate:         core.EstimateTDS(payables),
			Aging:               core.AgingSummary(invoices, today),
		}
		return printJSON(out)
	},
}

var (
	advanceTaxIncome string
	advanceTaxPaid   string
	advanceTaxFY     int
)

var advanceTaxCmd = &cobra.Command{
	Use:   "advance-tax",
	Short: "Compute the four-quarter advance tax schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		income, err := decimal.NewFromString(advanceTaxIncome)
		if err != nil {
			return fmt.Errorf("invalid --income %q: %w", advanceTaxIncome, err)
		}
		paid, err := decimal.NewFromString(advanceTaxPaid)
		if err != nil {
			return fmt.Errorf("invalid --paid %q: %w", advanceTaxPaid, err)
		}

		fy := advanceTaxFY
		today := time.Now()
		if fy == 0 {
			fy = today.Year()
			if today.Month() < time.April {
				fy--
			}
		}

		schedule := core.AdvanceTaxSchedule(income, paid, fy, today)
		return printJSON(schedule)
	},
}

var cashCycleReq struct {
	inventoryDays   int
	receivableDays  int
	payableDays     int
	creditCycleDays int
}

var cashCycleCmd = &cobra.Command{
	Use:   "cash-cycle",
	Short: "Compute the cash conversion cycle and working capital gap",
	RunE: func(cmd *cobra.Command, args []string) error {
		ccc := core.CashConversionCycle(cashCycleReq.inventoryDays, cashCycleReq.receivableDays, cashCycleReq.payableDays)
		netGap, status := core.WorkingCapitalGap(ccc, cashCycleReq.creditCycleDays)
		out := struct {
			CashConversionCycleDays int    `json:"cash_conversion_cycle_days"`
			NetGapDays              int    `json:"net_gap_days"`
			GapStatus               string `json:"gap_status"`
		}{ccc, netGap, status}
		return printJSON(out)
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsAsOf, "as-of", "", "compute as of this date (YYYY-MM-DD, default today)")

	advanceTaxCmd.Flags().StringVar(&advanceTaxIncome, "income", "0", "estimated income for the financial year")
	advanceTaxCmd.Flags().StringVar(&advanceTaxPaid, "paid", "0", "advance tax already paid")
	advanceTaxCmd.Flags().IntVar(&advanceTaxFY, "fy", 0, "financial year start (e.g. 2026); default = current FY")

	cashCycleCmd.Flags().IntVar(&cashCycleReq.inventoryDays, "inventory-days", 0, "days inventory outstanding")
	cashCycleCmd.Flags().IntVar(&cashCycleReq.receivableDays, "receivable-days", 0, "days sales outstanding")
	cashCycleCmd.Flags().IntVar(&cashCycleReq.payableDays, "payable-days", 0, "days payables outstanding")
	cashCycleCmd.Flags().IntVar(&cashCycleReq.creditCycleDays, "credit-cycle-days", 0, "supplier credit cycle days")

	rootCmd.AddCommand(metricsCmd, advanceTaxCmd, cashCycleCmd)
}
