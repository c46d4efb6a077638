package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the canonical myDATA invoice representation built by the
// normalizer. It is immutable for the lifetime of a validation or diff
// call; every validator and the diff engine operates on this type only.
type Invoice struct {
	// UID is an internal tracking identifier, assigned by the pipeline
	UID string `json:"uid,omitempty"`

	Header      Header       `json:"header"`
	Issuer      Party        `json:"issuer"`
	Counterpart *Counterpart `json:"counterpart,omitempty"`
	Lines       []Line       `json:"lines"`
	Totals      Totals       `json:"totals"`

	// VatBreakdown is reserved: normalization currently leaves it empty
	VatBreakdown          []VatBreakdown         `json:"vat_breakdown,omitempty"`
	IncomeClassifications []IncomeClassification `json:"income_classifications,omitempty"`
}

// Header holds the invoice identification block
type Header struct {
	Series       string           `json:"series"`
	AA           string           `json:"aa"` // sequence number within the series
	IssueDate    time.Time        `json:"issue_date"`
	InvoiceType  InvoiceType      `json:"invoice_type"`
	Currency     string           `json:"currency"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate,omitempty"`
}

// Party identifies the issuing entity
type Party struct {
	VatNumber string `json:"vat_number"`
	Country   string `json:"country"`
	Branch    int    `json:"branch"`
}

// Counterpart identifies the receiving entity. Absent for some retail
// invoice types.
type Counterpart struct {
	VatNumber string `json:"vat_number"`
	Country   string `json:"country"`
	Branch    int    `json:"branch"`
	Name      string `json:"name,omitempty"`
}

// Line is a single invoice detail row. Line numbers are 1-based and
// unique within an invoice but need not be contiguous.
type Line struct {
	LineNumber      int              `json:"line_number"`
	Description     string           `json:"description,omitempty"`
	NetValue        decimal.Decimal  `json:"net_value"`
	VatCategory     VatCategory      `json:"vat_category"`
	VatAmount       decimal.Decimal  `json:"vat_amount"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	MeasurementUnit *int             `json:"measurement_unit,omitempty"`
}

// Totals are the seven summary aggregates declared on the invoice
type Totals struct {
	NetAmount        decimal.Decimal `json:"net_amount"`
	VatAmount        decimal.Decimal `json:"vat_amount"`
	WithheldAmount   decimal.Decimal `json:"withheld_amount"`
	FeesAmount       decimal.Decimal `json:"fees_amount"`
	StampDutyAmount  decimal.Decimal `json:"stamp_duty_amount"`
	DeductionsAmount decimal.Decimal `json:"deductions_amount"`
	GrossAmount      decimal.Decimal `json:"gross_amount"`
}

// VatBreakdown is a per-category (net, VAT) aggregate
type VatBreakdown struct {
	Category  VatCategory     `json:"category"`
	NetAmount decimal.Decimal `json:"net_amount"`
	VatAmount decimal.Decimal `json:"vat_amount"`
}

// IncomeClassification is a myDATA income classification entry from the
// invoice summary
type IncomeClassification struct {
	ClassificationType     string          `json:"classification_type,omitempty"`
	ClassificationCategory string          `json:"classification_category,omitempty"`
	Amount                 decimal.Decimal `json:"amount"`
}
