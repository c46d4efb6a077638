package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/mydata-validator/internal/diff"
	"github.com/rezonia/mydata-validator/internal/model"
	"github.com/rezonia/mydata-validator/internal/normalizer"
	"github.com/rezonia/mydata-validator/internal/parser/xml"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old.xml> <new.xml>",
	Short: "Compare two revisions of an invoice",
	Long: `Compare two revisions of the same invoice and print the field-level
changes. Lines are matched by line number; a line present only in the old
revision is reported as Deleted, one present only in the new as Created.

Examples:
  mydata-validator diff draft.xml corrected.xml
  mydata-validator diff draft.xml corrected.xml -f table`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	old, err := loadInvoice(args[0])
	if err != nil {
		return err
	}
	updated, err := loadInvoice(args[1])
	if err != nil {
		return err
	}

	result := diff.Compare(old, updated)

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	if !result.HasChanges {
		fmt.Println("No changes.")
		return nil
	}
	for _, c := range result.Changes {
		fmt.Printf("%s: %s -> %s\n", c.Path, c.OldValue, c.NewValue)
	}
	return nil
}

// loadInvoice reads a document expected to hold exactly one invoice
func loadInvoice(path string) (*model.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := xml.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(doc.Invoices) != 1 {
		return nil, fmt.Errorf("%s contains %d invoices, expected exactly one", path, len(doc.Invoices))
	}

	inv, err := normalizer.Normalize(&doc.Invoices[0])
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %s: %w", path, err)
	}
	return inv, nil
}
