package diff_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/mydata-validator/internal/diff"
	"github.com/rezonia/mydata-validator/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func invoice() *model.Invoice {
	return &model.Invoice{
		Header: model.Header{
			Series:      "A",
			AA:          "101",
			IssueDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			InvoiceType: model.InvoiceTypeSales,
			Currency:    "EUR",
		},
		Issuer: model.Party{VatNumber: "090000045", Country: "GR"},
		Counterpart: &model.Counterpart{
			VatNumber: "094019245",
			Country:   "GR",
		},
		Lines: []model.Line{
			{LineNumber: 1, NetValue: dec("100.00"), VatCategory: model.VatCategory24, VatAmount: dec("24.00")},
		},
		Totals: model.Totals{
			NetAmount:   dec("100.00"),
			VatAmount:   dec("24.00"),
			GrossAmount: dec("124.00"),
		},
	}
}

func TestCompare_Identical(t *testing.T) {
	a := invoice()
	b := invoice()

	d := diff.Compare(a, b)

	assert.False(t, d.HasChanges)
	assert.Empty(t, d.Changes)
}

func TestCompare_Reflexive(t *testing.T) {
	a := invoice()
	d := diff.Compare(a, a)

	assert.False(t, d.HasChanges)
	assert.Empty(t, d.Changes)
}

func TestCompare_HeaderFields(t *testing.T) {
	a := invoice()
	b := invoice()
	b.Header.Series = "B"
	b.Header.AA = "102"
	b.Header.InvoiceType = model.InvoiceTypeCreditNote

	d := diff.Compare(a, b)

	require.True(t, d.HasChanges)
	paths := changePaths(d)
	assert.Contains(t, paths, "header.series")
	assert.Contains(t, paths, "header.aa")
	assert.Contains(t, paths, "header.invoice_type")
}

func TestCompare_IssueDate(t *testing.T) {
	a := invoice()
	b := invoice()
	b.Header.IssueDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	d := diff.Compare(a, b)

	require.Len(t, d.Changes, 1)
	assert.Equal(t, "header.issue_date", d.Changes[0].Path)
	assert.Equal(t, "2026-03-15", d.Changes[0].OldValue)
	assert.Equal(t, "2026-03-16", d.Changes[0].NewValue)
}

func TestCompare_Totals(t *testing.T) {
	a := invoice()
	b := invoice()
	b.Totals.NetAmount = dec("200.00")
	b.Totals.GrossAmount = dec("248.00")

	d := diff.Compare(a, b)

	paths := changePaths(d)
	assert.Contains(t, paths, "totals.net_amount")
	assert.Contains(t, paths, "totals.gross_amount")
	assert.NotContains(t, paths, "totals.vat_amount")
}

func TestCompare_CounterpartPresence(t *testing.T) {
	a := invoice()
	b := invoice()
	b.Counterpart = nil

	d := diff.Compare(a, b)

	require.Len(t, d.Changes, 1)
	assert.Equal(t, "counterpart", d.Changes[0].Path)
	assert.Equal(t, "Present", d.Changes[0].OldValue)
	assert.Equal(t, "None", d.Changes[0].NewValue)
}

func TestCompare_LineModifiedAndCreated(t *testing.T) {
	a := invoice()
	b := invoice()
	b.Lines[0].NetValue = dec("200.00")
	b.Lines = append(b.Lines, model.Line{
		LineNumber: 2, NetValue: dec("50.00"), VatCategory: model.VatCategory24, VatAmount: dec("12.00"),
	})

	d := diff.Compare(a, b)

	require.Len(t, d.Changes, 2)
	assert.Equal(t, "line[1].net_value", d.Changes[0].Path)
	assert.Equal(t, "100", d.Changes[0].OldValue)
	assert.Equal(t, "200", d.Changes[0].NewValue)
	assert.Equal(t, "line[2]", d.Changes[1].Path)
	assert.Equal(t, "Created", d.Changes[1].NewValue)
}

func TestCompare_LineDeleted(t *testing.T) {
	a := invoice()
	a.Lines = append(a.Lines, model.Line{
		LineNumber: 2, NetValue: dec("50.00"), VatCategory: model.VatCategory24, VatAmount: dec("12.00"),
	})
	b := invoice()

	d := diff.Compare(a, b)

	require.Len(t, d.Changes, 1)
	assert.Equal(t, "line[2]", d.Changes[0].Path)
	assert.Equal(t, "Exists", d.Changes[0].OldValue)
	assert.Equal(t, "Deleted", d.Changes[0].NewValue)
}

func TestCompare_RenumberedLineIsDeletePlusCreate(t *testing.T) {
	a := invoice()
	b := invoice()
	b.Lines[0].LineNumber = 3

	d := diff.Compare(a, b)

	paths := changePaths(d)
	assert.Contains(t, paths, "line[1]")
	assert.Contains(t, paths, "line[3]")
	assert.NotContains(t, paths, "line[1].net_value")
}

func TestCompare_LineVatCategoryChange(t *testing.T) {
	a := invoice()
	b := invoice()
	b.Lines[0].VatCategory = model.VatCategory13

	d := diff.Compare(a, b)

	require.Len(t, d.Changes, 1)
	assert.Equal(t, "line[1].vat_category", d.Changes[0].Path)
	assert.Equal(t, "1", d.Changes[0].OldValue)
	assert.Equal(t, "2", d.Changes[0].NewValue)
}

func TestCompare_NonContiguousLineNumbers(t *testing.T) {
	a := invoice()
	a.Lines = []model.Line{
		{LineNumber: 2, NetValue: dec("10.00"), VatCategory: model.VatCategory24, VatAmount: dec("2.40")},
		{LineNumber: 7, NetValue: dec("20.00"), VatCategory: model.VatCategory24, VatAmount: dec("4.80")},
	}
	b := invoice()
	b.Lines = []model.Line{
		{LineNumber: 2, NetValue: dec("10.00"), VatCategory: model.VatCategory24, VatAmount: dec("2.40")},
		{LineNumber: 7, NetValue: dec("25.00"), VatCategory: model.VatCategory24, VatAmount: dec("6.00")},
	}

	d := diff.Compare(a, b)

	require.Len(t, d.Changes, 1)
	assert.Equal(t, "line[7].net_value", d.Changes[0].Path)
}

func changePaths(d diff.Diff) []string {
	paths := make([]string, 0, len(d.Changes))
	for _, c := range d.Changes {
		paths = append(paths, c.Path)
	}
	return paths
}
