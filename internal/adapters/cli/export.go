package cli

import (
	"time"

	"finpulse/internal/export"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <invoices.json>",
	Short: "Map invoices to Zoho Books payloads",
	Long: `Maps each invoice in the fixture file to the Zoho Books invoice payload
and prints the result as a JSON array. Nothing is submitted anywhere.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invoices, err := loadInvoices(args[0])
		if err != nil {
			return err
		}

		now := time.Now()
		payloads := make([]export.InvoicePayload, 0, len(invoices))
		for _, inv := range invoices {
			payloads = append(payloads, export.MapInvoice(inv, now))
		}
		return printJSON(payloads)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
