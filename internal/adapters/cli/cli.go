// Package cli implements the finctl command tree: offline metric and export
// computations over invoice JSON fixtures, without touching the database.
package cli

import (
	"fmt"
	"os"

	"finpulse/internal/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "finctl",
	Short: "finpulse offline toolbox",
	Long: `finctl computes finpulse financial metrics and Zoho export payloads
from invoice JSON files, without a running server or database.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err, "command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
