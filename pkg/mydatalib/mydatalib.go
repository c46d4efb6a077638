// Package mydatalib provides a public API for validating Greek myDATA
// invoice documents.
//
// Example usage:
//
//	client := mydatalib.New()
//	results, err := client.ValidateXML(ctx, reader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(results[0].Report.Status)
package mydatalib

import (
	"context"
	"io"

	"github.com/rezonia/mydata-validator/internal/diff"
	"github.com/rezonia/mydata-validator/internal/model"
	"github.com/rezonia/mydata-validator/internal/processor"
	"github.com/rezonia/mydata-validator/internal/validation"
)

// Re-export core types for public API
type (
	Invoice     = model.Invoice
	Header      = model.Header
	Party       = model.Party
	Counterpart = model.Counterpart
	Line        = model.Line
	Totals      = model.Totals
	InvoiceType = model.InvoiceType
	VatCategory = model.VatCategory

	Report  = validation.Report
	Finding = validation.Finding
	Status  = validation.Status

	Diff        = diff.Diff
	FieldChange = diff.FieldChange
)

// Re-export report statuses
const (
	StatusClean    = validation.StatusClean
	StatusWarned   = validation.StatusWarned
	StatusRejected = validation.StatusRejected
)

// Re-export error types
type (
	ParseError         = model.ParseError
	NormalizationError = model.NormalizationError
)

// InvoiceResult is the outcome for one invoice in a document
type InvoiceResult = processor.InvoiceResult

// Client validates myDATA documents. Safe for concurrent use.
type Client struct {
	pipeline *processor.Pipeline
}

// New creates a client with the embedded rule set
func New() *Client {
	return &Client{pipeline: processor.NewPipeline()}
}

// ValidateXML parses a myDATA XML document and validates every invoice in it
func (c *Client) ValidateXML(ctx context.Context, r io.Reader) ([]InvoiceResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError("body", "failed to read input", err)
	}

	result, err := c.pipeline.ProcessXML(ctx, data)
	if err != nil {
		return nil, err
	}
	return result.Invoices, nil
}

// Validate runs the full check pipeline on an already normalized invoice
func (c *Client) Validate(inv *Invoice) *Report {
	return c.pipeline.Validate(inv)
}

// Compare returns the field-level changes between two invoice revisions
func Compare(old, new *Invoice) Diff {
	return diff.Compare(old, new)
}
