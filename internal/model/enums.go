package model

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// InvoiceType is the myDATA invoice type code (e.g. "1.1" for a sales
// invoice). Codes not yet known to this package map to InvoiceTypeUnknown
// rather than failing, so newer AADE codes never break normalization.
type InvoiceType string

const (
	InvoiceTypeSales             InvoiceType = "1.1"
	InvoiceTypeSalesIntra        InvoiceType = "1.2"
	InvoiceTypeSalesThirdCountry InvoiceType = "1.3"
	InvoiceTypeSalesRelated      InvoiceType = "1.4"
	InvoiceTypeSalesRetail       InvoiceType = "1.5"
	InvoiceTypeSalesForeignVAT   InvoiceType = "1.6"
	InvoiceTypeService           InvoiceType = "2.1"
	InvoiceTypeServiceIntra      InvoiceType = "2.2"
	InvoiceTypeServiceThird      InvoiceType = "2.3"
	InvoiceTypeServiceRelated    InvoiceType = "2.4"
	InvoiceTypeCreditNote        InvoiceType = "5.1"
	InvoiceTypeDebitNote         InvoiceType = "5.2"
	InvoiceTypeRetailReceipt     InvoiceType = "11.1"
	InvoiceTypeServiceReceipt    InvoiceType = "11.2"
	InvoiceTypeSimplified        InvoiceType = "11.3"
	InvoiceTypeRetailCredit      InvoiceType = "11.4"
	InvoiceTypeServiceCredit     InvoiceType = "11.5"
	InvoiceTypeUnknown           InvoiceType = "Unknown"
)

var knownInvoiceTypes = map[InvoiceType]bool{
	InvoiceTypeSales:             true,
	InvoiceTypeSalesIntra:        true,
	InvoiceTypeSalesThirdCountry: true,
	InvoiceTypeSalesRelated:      true,
	InvoiceTypeSalesRetail:       true,
	InvoiceTypeSalesForeignVAT:   true,
	InvoiceTypeService:           true,
	InvoiceTypeServiceIntra:      true,
	InvoiceTypeServiceThird:      true,
	InvoiceTypeServiceRelated:    true,
	InvoiceTypeCreditNote:        true,
	InvoiceTypeDebitNote:         true,
	InvoiceTypeRetailReceipt:     true,
	InvoiceTypeServiceReceipt:    true,
	InvoiceTypeSimplified:        true,
	InvoiceTypeRetailCredit:      true,
	InvoiceTypeServiceCredit:     true,
}

// ParseInvoiceType maps a raw type code onto the closed enumeration.
// Unrecognized codes become InvoiceTypeUnknown.
func ParseInvoiceType(code string) InvoiceType {
	t := InvoiceType(code)
	if knownInvoiceTypes[t] {
		return t
	}
	return InvoiceTypeUnknown
}

func (t InvoiceType) String() string {
	return string(t)
}

// VatCategory is the myDATA VAT category code (1-8) selecting the
// statutory VAT rate for a line.
type VatCategory int

const (
	VatCategory24       VatCategory = 1
	VatCategory13       VatCategory = 2
	VatCategory6        VatCategory = 3
	VatCategory17       VatCategory = 4
	VatCategory9        VatCategory = 5
	VatCategory4        VatCategory = 6
	VatCategoryZero     VatCategory = 7
	VatCategoryExcluded VatCategory = 8
)

var vatRates = map[VatCategory]decimal.Decimal{
	VatCategory24:       decimal.NewFromFloat(0.24),
	VatCategory13:       decimal.NewFromFloat(0.13),
	VatCategory6:        decimal.NewFromFloat(0.06),
	VatCategory17:       decimal.NewFromFloat(0.17),
	VatCategory9:        decimal.NewFromFloat(0.09),
	VatCategory4:        decimal.NewFromFloat(0.04),
	VatCategoryZero:     decimal.Zero,
	VatCategoryExcluded: decimal.Zero,
}

// ParseVatCategory maps a raw category code onto the closed enumeration.
// Unlike invoice types there is no Unknown fallback: VAT arithmetic has no
// defined behavior for a category outside the table.
func ParseVatCategory(code int) (VatCategory, error) {
	c := VatCategory(code)
	if _, ok := vatRates[c]; !ok {
		return 0, fmt.Errorf("unknown VAT category %d", code)
	}
	return c, nil
}

// Rate returns the statutory VAT rate for the category. Zero-rated and
// VAT-excluded both yield 0% but remain distinct categories.
func (c VatCategory) Rate() decimal.Decimal {
	return vatRates[c]
}

func (c VatCategory) String() string {
	return strconv.Itoa(int(c))
}
