// Package xml parses AADE myDATA invoice documents into a raw
// intermediate representation. The raw structs mirror the wire schema;
// the normalizer converts them into the strict domain model.
package xml

import (
	"bytes"
	"encoding/xml"

	"github.com/shopspring/decimal"

	"github.com/rezonia/mydata-validator/internal/model"
)

// Document is the myDATA InvoicesDoc root element
type Document struct {
	XMLName  xml.Name     `xml:"InvoicesDoc"`
	Invoices []RawInvoice `xml:"invoice"`
}

// RawInvoice maps one <invoice> element. Monetary values decode directly
// into decimal so no binary floating point ever enters the pipeline.
type RawInvoice struct {
	Issuer         *RawIssuer        `xml:"issuer"`
	Counterpart    *RawCounterpart   `xml:"counterpart"`
	Header         RawHeader         `xml:"invoiceHeader"`
	PaymentMethods *RawPaymentBlock  `xml:"paymentMethods"`
	Details        []RawRow          `xml:"invoiceDetails"`
	Summary        RawSummary        `xml:"invoiceSummary"`
}

// RawIssuer maps <issuer>. All fields are required by the schema.
type RawIssuer struct {
	VatNumber string `xml:"vatNumber"`
	Country   string `xml:"country"`
	Branch    int    `xml:"branch"`
}

// RawCounterpart maps <counterpart>. Each inner field is independently
// optional on the wire.
type RawCounterpart struct {
	VatNumber string `xml:"vatNumber"`
	Country   string `xml:"country"`
	Branch    int    `xml:"branch"`
	Name      string `xml:"name"`
}

// RawHeader maps <invoiceHeader>
type RawHeader struct {
	Series       string           `xml:"series"`
	AA           string           `xml:"aa"`
	IssueDate    string           `xml:"issueDate"` // YYYY-MM-DD
	InvoiceType  string           `xml:"invoiceType"`
	Currency     string           `xml:"currency"`
	ExchangeRate *decimal.Decimal `xml:"exchangeRate"`
}

// RawRow maps one <invoiceDetails> element
type RawRow struct {
	LineNumber      int              `xml:"lineNumber"`
	NetValue        decimal.Decimal  `xml:"netValue"`
	VatCategory     int              `xml:"vatCategory"`
	VatAmount       decimal.Decimal  `xml:"vatAmount"`
	Quantity        *decimal.Decimal `xml:"quantity"`
	MeasurementUnit *int             `xml:"measurementUnit"`
}

// RawSummary maps <invoiceSummary>
type RawSummary struct {
	TotalNetValue         decimal.Decimal     `xml:"totalNetValue"`
	TotalVatAmount        decimal.Decimal     `xml:"totalVatAmount"`
	TotalWithheldAmount   decimal.Decimal     `xml:"totalWithheldAmount"`
	TotalFeesAmount       decimal.Decimal     `xml:"totalFeesAmount"`
	TotalStampDutyAmount  decimal.Decimal     `xml:"totalStampDutyAmount"`
	TotalDeductionsAmount decimal.Decimal     `xml:"totalDeductionsAmount"`
	TotalGrossValue       decimal.Decimal     `xml:"totalGrossValue"`
	IncomeClassifications []RawClassification `xml:"incomeClassification"`
}

// RawClassification maps one <incomeClassification> entry
type RawClassification struct {
	ClassificationType     string          `xml:"classificationType"`
	ClassificationCategory string          `xml:"classificationCategory"`
	Amount                 decimal.Decimal `xml:"amount"`
}

// RawPaymentBlock maps <paymentMethods>
type RawPaymentBlock struct {
	Details []RawPaymentMethod `xml:"paymentMethodDetails"`
}

// RawPaymentMethod maps one <paymentMethodDetails> entry
type RawPaymentMethod struct {
	Type   int             `xml:"type"`
	Amount decimal.Decimal `xml:"amount"`
	Info   string          `xml:"paymentMethodInfo"`
}

// CanParse checks whether content looks like a myDATA document
func CanParse(content []byte) bool {
	return bytes.Contains(content, []byte("<InvoicesDoc")) ||
		bytes.Contains(content, []byte("<invoiceHeader>"))
}

// Parse decodes a myDATA XML document
func Parse(content []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, model.NewParseError("InvoicesDoc", "failed to parse XML", err)
	}
	if len(doc.Invoices) == 0 {
		return nil, model.NewParseError("invoice", "document contains no invoices", nil)
	}
	return &doc, nil
}
