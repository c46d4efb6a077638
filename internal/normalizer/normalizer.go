// Package normalizer converts raw parsed invoices into the strict domain
// model, applying type coercion, defaulting and format validation.
package normalizer

import (
	"fmt"
	"time"

	"github.com/rezonia/mydata-validator/internal/model"
	"github.com/rezonia/mydata-validator/internal/parser/xml"
)

const (
	dateLayout      = "2006-01-02"
	defaultCurrency = "EUR"
)

// Normalize converts one raw invoice into the domain model.
//
// It is a pure function: no I/O, no global state. The documented fatal
// conditions (bad date, missing issuer, unknown VAT category) return a
// NormalizationError and no partial invoice. An unrecognized invoice type
// is not fatal; it maps to InvoiceTypeUnknown and is left for the rule
// layers to flag.
func Normalize(raw *xml.RawInvoice) (*model.Invoice, error) {
	issueDate, err := time.Parse(dateLayout, raw.Header.IssueDate)
	if err != nil {
		return nil, model.NewNormalizationError("invoiceHeader.issueDate",
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw.Header.IssueDate), err)
	}

	currency := raw.Header.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	header := model.Header{
		Series:       raw.Header.Series,
		AA:           raw.Header.AA,
		IssueDate:    issueDate,
		InvoiceType:  model.ParseInvoiceType(raw.Header.InvoiceType),
		Currency:     currency,
		ExchangeRate: raw.Header.ExchangeRate,
	}

	if raw.Issuer == nil {
		return nil, model.NewNormalizationError("issuer", "missing issuer", nil)
	}
	issuer := model.Party{
		VatNumber: raw.Issuer.VatNumber,
		Country:   raw.Issuer.Country,
		Branch:    raw.Issuer.Branch,
	}

	// Counterpart is optional; present fields are taken as-is and absent
	// inner fields keep their zero values.
	var counterpart *model.Counterpart
	if raw.Counterpart != nil {
		counterpart = &model.Counterpart{
			VatNumber: raw.Counterpart.VatNumber,
			Country:   raw.Counterpart.Country,
			Branch:    raw.Counterpart.Branch,
			Name:      raw.Counterpart.Name,
		}
	}

	lines := make([]model.Line, 0, len(raw.Details))
	for _, row := range raw.Details {
		category, err := model.ParseVatCategory(row.VatCategory)
		if err != nil {
			return nil, model.NewNormalizationError(
				fmt.Sprintf("invoiceDetails[%d].vatCategory", row.LineNumber),
				fmt.Sprintf("invalid VAT category %d on line %d", row.VatCategory, row.LineNumber), err)
		}

		lines = append(lines, model.Line{
			LineNumber:      row.LineNumber,
			NetValue:        row.NetValue,
			VatCategory:     category,
			VatAmount:       row.VatAmount,
			Quantity:        row.Quantity,
			MeasurementUnit: row.MeasurementUnit,
		})
	}

	totals := model.Totals{
		NetAmount:        raw.Summary.TotalNetValue,
		VatAmount:        raw.Summary.TotalVatAmount,
		WithheldAmount:   raw.Summary.TotalWithheldAmount,
		FeesAmount:       raw.Summary.TotalFeesAmount,
		StampDutyAmount:  raw.Summary.TotalStampDutyAmount,
		DeductionsAmount: raw.Summary.TotalDeductionsAmount,
		GrossAmount:      raw.Summary.TotalGrossValue,
	}

	classifications := make([]model.IncomeClassification, 0, len(raw.Summary.IncomeClassifications))
	for _, entry := range raw.Summary.IncomeClassifications {
		classifications = append(classifications, model.IncomeClassification{
			ClassificationType:     entry.ClassificationType,
			ClassificationCategory: entry.ClassificationCategory,
			Amount:                 entry.Amount,
		})
	}

	return &model.Invoice{
		Header:      header,
		Issuer:      issuer,
		Counterpart: counterpart,
		Lines:       lines,
		Totals:      totals,
		// VatBreakdown stays empty: reserved until per-category
		// aggregation is extracted or derived
		IncomeClassifications: classifications,
	}, nil
}
