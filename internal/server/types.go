package server

import (
	"github.com/rezonia/mydata-validator/internal/diff"
	"github.com/rezonia/mydata-validator/internal/model"
	"github.com/rezonia/mydata-validator/internal/processor"
)

// ValidateResponse is the response for the validate endpoint
type ValidateResponse struct {
	DocumentHash string                    `json:"document_hash"`
	Invoices     []processor.InvoiceResult `json:"invoices"`
}

// BatchFileResult is the outcome for one file in a batch upload
type BatchFileResult struct {
	Filename     string                    `json:"filename"`
	Status       string                    `json:"status"`
	Invoices     []processor.InvoiceResult `json:"invoices,omitempty"`
	ErrorMessage string                    `json:"error_message,omitempty"`
}

// BatchResponse is the response for the batch validate endpoint
type BatchResponse struct {
	Files []BatchFileResult `json:"files"`
}

// DiffRequest carries two invoice snapshots to compare
type DiffRequest struct {
	Old *model.Invoice `json:"old"`
	New *model.Invoice `json:"new"`
}

// DiffResponse is the response for the diff endpoint
type DiffResponse struct {
	Diff diff.Diff `json:"diff"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
