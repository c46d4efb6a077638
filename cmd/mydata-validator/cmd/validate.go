package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/mydata-validator/internal/processor"
	"github.com/rezonia/mydata-validator/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate myDATA invoice XML files",
	Long: `Validate one or more myDATA invoice documents.

Each file may carry multiple invoices; every invoice gets its own report.
The exit code is non-zero when any invoice is rejected.

Examples:
  mydata-validator validate invoices.xml
  mydata-validator validate *.xml -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// FileResult holds the outcome of validating a single file
type FileResult struct {
	File     string                    `json:"file"`
	Invoices []processor.InvoiceResult `json:"invoices,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	printVerbose("Found %d files to validate\n", len(files))

	pipeline := processor.NewPipeline()
	results := make([]*FileResult, 0, len(files))
	anyRejected := false

	for _, file := range files {
		result := validateFile(pipeline, file)
		results = append(results, result)

		if result.Error != "" {
			anyRejected = true
			continue
		}
		for _, inv := range result.Invoices {
			if inv.Error != "" || (inv.Report != nil && !inv.Report.Valid()) {
				anyRejected = true
			}
		}
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		printTable(results)
	}

	if anyRejected {
		return fmt.Errorf("validation failed for some invoices")
	}
	return nil
}

func validateFile(pipeline *processor.Pipeline, filePath string) *FileResult {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := &FileResult{File: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result
	}

	doc, err := pipeline.ProcessXML(ctx, data)
	if err != nil {
		result.Error = fmt.Sprintf("parse error: %v", err)
		return result
	}

	result.Invoices = doc.Invoices
	return result
}

func printTable(results []*FileResult) {
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("✗ %s: %s\n", r.File, r.Error)
			continue
		}
		for i, inv := range r.Invoices {
			label := fmt.Sprintf("%s [%d]", r.File, i+1)
			if inv.Error != "" {
				fmt.Printf("✗ %s: %s\n", label, inv.Error)
				continue
			}

			report := inv.Report
			switch report.Status {
			case validation.StatusClean:
				fmt.Printf("✓ %s: %s\n", label, report.Summary)
			case validation.StatusWarned:
				fmt.Printf("⚠ %s: %s (risk %d)\n", label, report.Summary, report.RiskScore)
			default:
				fmt.Printf("✗ %s: %s (risk %d)\n", label, report.Summary, report.RiskScore)
			}
			for _, f := range report.Findings {
				fmt.Printf("  - [%s] %s: %s\n", f.Code, f.Severity, f.Reason)
			}
		}
	}
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isXMLFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if !info.IsDir() && isXMLFile(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func isXMLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}
