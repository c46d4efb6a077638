package validation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/mydata-validator/internal/afm"
	"github.com/rezonia/mydata-validator/internal/model"
	"github.com/rezonia/mydata-validator/internal/money"
)

// domesticCountry selects which VAT numbers get the AFM checksum
const domesticCountry = "GR"

// vatTolerance absorbs legitimate rounding divergence across line items
var vatTolerance = decimal.New(5, -2) // 0.05

// checkTotals reconciles declared totals against line sums. Exact decimal
// equality, no tolerance.
func checkTotals(inv *model.Invoice, report *Report) {
	calcNet := decimal.Zero
	calcVat := decimal.Zero
	for _, line := range inv.Lines {
		calcNet = calcNet.Add(line.NetValue)
		calcVat = calcVat.Add(line.VatAmount)
	}

	if !calcNet.Equal(inv.Totals.NetAmount) {
		report.AddError("BR-001",
			fmt.Sprintf("Calculated net amount (%s) does not match declared total", calcNet),
			"totalNetValue", inv.Totals.NetAmount.String())
	}

	if !calcVat.Equal(inv.Totals.VatAmount) {
		report.AddError("BR-002",
			fmt.Sprintf("Calculated VAT amount (%s) does not match declared total", calcVat),
			"totalVatAmount", inv.Totals.VatAmount.String())
	}
}

// checkVatNumbers applies the AFM checksum to issuer and counterpart when
// they are domestic
func checkVatNumbers(inv *model.Invoice, report *Report) {
	if inv.Issuer.Country == domesticCountry && !afm.Valid(inv.Issuer.VatNumber) {
		report.AddError("BR-003", "Invalid issuer VAT number (AFM)",
			"issuer.vatNumber", inv.Issuer.VatNumber)
	}

	if cp := inv.Counterpart; cp != nil {
		if cp.Country == domesticCountry && !afm.Valid(cp.VatNumber) {
			report.AddError("BR-004", "Invalid counterpart VAT number (AFM)",
				"counterpart.vatNumber", cp.VatNumber)
		}
	}
}

// checkDates rejects invoices issued in the future
func checkDates(inv *model.Invoice, report *Report, now time.Time) {
	today := now.UTC().Truncate(24 * time.Hour)
	if inv.Header.IssueDate.After(today) {
		report.AddError("BR-005", "Issue date cannot be in the future",
			"invoiceHeader.issueDate", inv.Header.IssueDate.Format("2006-01-02"))
	}
}

// checkLineVat verifies per-line VAT arithmetic against the category rate
// within the fixed tolerance
func checkLineVat(inv *model.Invoice, report *Report) {
	for _, line := range inv.Lines {
		rate := line.VatCategory.Rate()
		expected := money.VATFor(line.NetValue, rate)

		if !money.WithinTolerance(expected, line.VatAmount, vatTolerance) {
			report.AddError("BR-VAT-CALC",
				fmt.Sprintf("VAT amount mismatch on line %d. Net: %s, Rate: %s, Expected: %s, Found: %s",
					line.LineNumber, line.NetValue, rate, expected, line.VatAmount),
				"invoiceDetails.vatAmount", line.VatAmount.String())
		}
	}
}

// checkClassifications reconciles the income classification total with the
// declared net total within the fixed tolerance
func checkClassifications(inv *model.Invoice, report *Report) {
	total := decimal.Zero
	for _, c := range inv.IncomeClassifications {
		total = total.Add(c.Amount)
	}

	if !money.WithinTolerance(total, inv.Totals.NetAmount, vatTolerance) {
		report.AddError("BR-CLS-TOTAL",
			fmt.Sprintf("Income classification total (%s) does not match net value (%s)",
				total, inv.Totals.NetAmount),
			"invoiceSummary.incomeClassification", total.String())
	}
}
