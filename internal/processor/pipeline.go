// Package processor orchestrates the full validation pipeline: XML
// parsing, normalization, rule evaluation and best-effort persistence.
package processor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rezonia/mydata-validator/internal/model"
	"github.com/rezonia/mydata-validator/internal/normalizer"
	"github.com/rezonia/mydata-validator/internal/parser/xml"
	"github.com/rezonia/mydata-validator/internal/validation"
)

// ValidationLogger persists validation outcomes. Implemented by the
// postgres store; nil disables persistence.
type ValidationLogger interface {
	LogValidation(ctx context.Context, hash string, inv *model.Invoice, report *validation.Report) error
}

// InvoiceResult is the outcome for one invoice in a document. Exactly one
// of Report or Error is set: a normalization failure produces no report.
type InvoiceResult struct {
	UID    string             `json:"uid"`
	Report *validation.Report `json:"report,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// DocumentResult covers all invoices of one XML document
type DocumentResult struct {
	Hash     string          `json:"hash"`
	Invoices []InvoiceResult `json:"invoices"`
}

// Pipeline ties the validation stages together. Safe for concurrent use.
type Pipeline struct {
	validator *validation.Validator
	store     ValidationLogger
	log       zerolog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithStore enables validation-log persistence
func WithStore(store ValidationLogger) Option {
	return func(p *Pipeline) {
		p.store = store
	}
}

// WithLogger sets the pipeline logger
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithValidator replaces the default validator
func WithValidator(v *validation.Validator) Option {
	return func(p *Pipeline) {
		p.validator = v
	}
}

// NewPipeline creates a pipeline with the embedded rule set
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		validator: validation.NewValidator(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessXML parses, normalizes and validates every invoice in an AADE
// XML document. A fatal normalization error on one invoice never blocks
// its siblings. Only an unparseable document fails the call as a whole.
func (p *Pipeline) ProcessXML(ctx context.Context, content []byte) (*DocumentResult, error) {
	if !xml.CanParse(content) {
		return nil, model.NewParseError("InvoicesDoc", "not a myDATA invoice document", nil)
	}

	doc, err := xml.Parse(content)
	if err != nil {
		return nil, err
	}

	hash := Hash(content)
	result := &DocumentResult{
		Hash:     hash,
		Invoices: make([]InvoiceResult, 0, len(doc.Invoices)),
	}

	for i := range doc.Invoices {
		result.Invoices = append(result.Invoices, p.processInvoice(ctx, hash, &doc.Invoices[i]))
	}

	return result, nil
}

func (p *Pipeline) processInvoice(ctx context.Context, hash string, raw *xml.RawInvoice) InvoiceResult {
	uid := uuid.NewString()

	inv, err := normalizer.Normalize(raw)
	if err != nil {
		p.log.Warn().Str("uid", uid).Err(err).Msg("normalization failed")
		return InvoiceResult{UID: uid, Error: err.Error()}
	}
	inv.UID = uid

	report := p.validator.Validate(inv)

	if p.store != nil {
		if err := p.store.LogValidation(ctx, hash, inv, report); err != nil {
			// Persistence failures are logged, never surfaced
			p.log.Error().Str("uid", uid).Err(err).Msg("failed to log validation")
		}
	}

	return InvoiceResult{UID: uid, Report: report}
}

// Validate runs the rule layers against an already normalized invoice
func (p *Pipeline) Validate(inv *model.Invoice) *validation.Report {
	return p.validator.Validate(inv)
}

// Hash returns the hex sha256 digest of a document
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
