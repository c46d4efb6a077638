package validation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/mydata-validator/internal/model"
	"github.com/rezonia/mydata-validator/internal/validation"
)

// fixedNow keeps date sanity checks deterministic
var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestValidator(opts ...validation.Option) *validation.Validator {
	opts = append([]validation.Option{
		validation.WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	return validation.NewValidator(opts...)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// cleanInvoice satisfies every static check and the embedded rule set
func cleanInvoice() *model.Invoice {
	return &model.Invoice{
		Header: model.Header{
			Series:      "A",
			AA:          "101",
			IssueDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			InvoiceType: model.InvoiceTypeSales,
			Currency:    "EUR",
		},
		Issuer: model.Party{
			VatNumber: "090000045",
			Country:   "GR",
		},
		Counterpart: &model.Counterpart{
			VatNumber: "090000045",
			Country:   "GR",
			Name:      "Buyer SA",
		},
		Lines: []model.Line{
			{
				LineNumber:  1,
				NetValue:    dec("100.00"),
				VatCategory: model.VatCategory24,
				VatAmount:   dec("24.00"),
			},
		},
		Totals: model.Totals{
			NetAmount:   dec("100.00"),
			VatAmount:   dec("24.00"),
			GrossAmount: dec("124.00"),
		},
		IncomeClassifications: []model.IncomeClassification{
			{
				ClassificationType:     "E3_561_001",
				ClassificationCategory: "category1_1",
				Amount:                 dec("100.00"),
			},
		},
	}
}

func TestValidate_CleanInvoice(t *testing.T) {
	report := newTestValidator().Validate(cleanInvoice())

	assert.Equal(t, validation.StatusClean, report.Status, "unexpected findings: %+v", report.Findings)
	assert.Empty(t, report.Findings)
	assert.Equal(t, 0, report.RiskScore)
}

func TestCheckTotals_NetMismatch(t *testing.T) {
	inv := cleanInvoice()
	inv.Totals.NetAmount = dec("101.00")
	inv.IncomeClassifications[0].Amount = dec("101.00") // keep CLS check quiet

	report := newTestValidator().Validate(inv)

	assert.Equal(t, validation.StatusRejected, report.Status)
	assert.True(t, report.HasFinding("BR-001"))
	assert.False(t, report.HasFinding("BR-002"))
}

func TestCheckTotals_VatMismatch(t *testing.T) {
	inv := cleanInvoice()
	inv.Totals.VatAmount = dec("24.01")

	report := newTestValidator().Validate(inv)

	assert.Equal(t, validation.StatusRejected, report.Status)
	assert.True(t, report.HasFinding("BR-002"))
}

func TestCheckTotals_NoToleranceAllowed(t *testing.T) {
	// Totals reconciliation uses exact equality: even one cent rejects
	inv := cleanInvoice()
	inv.Totals.NetAmount = dec("100.01")

	report := newTestValidator().Validate(inv)
	assert.True(t, report.HasFinding("BR-001"))
}

func TestCheckVatNumbers_InvalidIssuer(t *testing.T) {
	inv := cleanInvoice()
	inv.Issuer.VatNumber = "123456780"

	report := newTestValidator().Validate(inv)

	assert.True(t, report.HasFinding("BR-003"))
	require.False(t, report.Valid())
}

func TestCheckVatNumbers_InvalidCounterpart(t *testing.T) {
	inv := cleanInvoice()
	inv.Counterpart.VatNumber = "000000000"

	report := newTestValidator().Validate(inv)
	assert.True(t, report.HasFinding("BR-004"))
}

func TestCheckVatNumbers_ForeignSkipsChecksum(t *testing.T) {
	inv := cleanInvoice()
	inv.Issuer.Country = "DE"
	inv.Issuer.VatNumber = "DE123456789"

	report := newTestValidator().Validate(inv)
	assert.False(t, report.HasFinding("BR-003"))
}

func TestCheckDates_FutureIssueDate(t *testing.T) {
	inv := cleanInvoice()
	inv.Header.IssueDate = fixedNow.AddDate(0, 0, 7)

	report := newTestValidator().Validate(inv)

	assert.True(t, report.HasFinding("BR-005"))
	assert.Equal(t, validation.StatusRejected, report.Status)
}

func TestCheckDates_TodayIsAllowed(t *testing.T) {
	inv := cleanInvoice()
	inv.Header.IssueDate = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	report := newTestValidator().Validate(inv)
	assert.False(t, report.HasFinding("BR-005"))
}

func TestCheckLineVat_WithinTolerance(t *testing.T) {
	inv := cleanInvoice()
	inv.Lines[0].VatAmount = dec("24.05")
	inv.Totals.VatAmount = dec("24.05")

	report := newTestValidator().Validate(inv)
	assert.False(t, report.HasFinding("BR-VAT-CALC"))
}

func TestCheckLineVat_ExceedsTolerance(t *testing.T) {
	inv := cleanInvoice()
	inv.Lines[0].VatAmount = dec("30.00")
	inv.Totals.VatAmount = dec("30.00")

	report := newTestValidator().Validate(inv)

	assert.True(t, report.HasFinding("BR-VAT-CALC"))
	assert.Equal(t, validation.StatusRejected, report.Status)
}

func TestCheckLineVat_ZeroRatedCategories(t *testing.T) {
	for _, category := range []model.VatCategory{model.VatCategoryZero, model.VatCategoryExcluded} {
		inv := cleanInvoice()
		inv.Lines[0].VatCategory = category
		inv.Lines[0].VatAmount = dec("0.00")
		inv.Totals.VatAmount = dec("0.00")
		inv.Totals.GrossAmount = dec("100.00")

		report := newTestValidator().Validate(inv)
		assert.False(t, report.HasFinding("BR-VAT-CALC"), "category %s", category)
	}
}

func TestCheckClassifications_TotalMismatch(t *testing.T) {
	inv := cleanInvoice()
	inv.IncomeClassifications[0].Amount = dec("90.00")

	report := newTestValidator().Validate(inv)
	assert.True(t, report.HasFinding("BR-CLS-TOTAL"))
}

func TestCheckClassifications_WithinTolerance(t *testing.T) {
	inv := cleanInvoice()
	inv.IncomeClassifications[0].Amount = dec("99.96")

	report := newTestValidator().Validate(inv)
	assert.False(t, report.HasFinding("BR-CLS-TOTAL"))
}
