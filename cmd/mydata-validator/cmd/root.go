package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "mydata-validator",
	Short: "Validate Greek myDATA invoice documents",
	Long: `mydata-validator checks AADE myDATA invoice XML against the platform's
business rules before submission.

Checks performed:
  - Arithmetic consistency (line sums vs declared totals, per-line VAT)
  - AFM check digit for issuer and counterpart
  - Income classification totals
  - Issue date sanity
  - Type-dependent business rules from the embedded rule set

Examples:
  # Validate a single document
  mydata-validator validate invoices.xml

  # Validate many files with table output
  mydata-validator validate *.xml -f table

  # Compare two revisions of the same invoice
  mydata-validator diff old.xml new.xml

  # Start the HTTP API
  mydata-validator serve --address :3000`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
