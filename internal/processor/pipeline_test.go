package processor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/mydata-validator/internal/model"
	"github.com/rezonia/mydata-validator/internal/processor"
	"github.com/rezonia/mydata-validator/internal/validation"
)

const validDoc = `<?xml version="1.0" encoding="UTF-8"?>
<InvoicesDoc>
  <invoice>
    <issuer>
      <vatNumber>090000045</vatNumber>
      <country>GR</country>
      <branch>0</branch>
    </issuer>
    <counterpart>
      <vatNumber>090000045</vatNumber>
      <country>GR</country>
      <branch>0</branch>
      <name>Buyer SA</name>
    </counterpart>
    <invoiceHeader>
      <series>A</series>
      <aa>101</aa>
      <issueDate>2024-03-15</issueDate>
      <invoiceType>1.1</invoiceType>
      <currency>EUR</currency>
    </invoiceHeader>
    <invoiceDetails>
      <lineNumber>1</lineNumber>
      <netValue>100.00</netValue>
      <vatCategory>1</vatCategory>
      <vatAmount>24.00</vatAmount>
    </invoiceDetails>
    <invoiceSummary>
      <totalNetValue>100.00</totalNetValue>
      <totalVatAmount>24.00</totalVatAmount>
      <totalWithheldAmount>0.00</totalWithheldAmount>
      <totalFeesAmount>0.00</totalFeesAmount>
      <totalStampDutyAmount>0.00</totalStampDutyAmount>
      <totalDeductionsAmount>0.00</totalDeductionsAmount>
      <totalGrossValue>124.00</totalGrossValue>
      <incomeClassification>
        <classificationType>E3_561_001</classificationType>
        <classificationCategory>category1_1</classificationCategory>
        <amount>100.00</amount>
      </incomeClassification>
    </invoiceSummary>
  </invoice>
</InvoicesDoc>`

// badDateDoc has one healthy invoice and one with an unparseable date
const badDateDoc = `<?xml version="1.0"?>
<InvoicesDoc>
  <invoice>
    <issuer><vatNumber>090000045</vatNumber><country>GR</country><branch>0</branch></issuer>
    <invoiceHeader>
      <series>B</series><aa>1</aa>
      <issueDate>not-a-date</issueDate>
      <invoiceType>11.1</invoiceType>
    </invoiceHeader>
    <invoiceDetails>
      <lineNumber>1</lineNumber><netValue>10.00</netValue>
      <vatCategory>1</vatCategory><vatAmount>2.40</vatAmount>
    </invoiceDetails>
    <invoiceSummary>
      <totalNetValue>10.00</totalNetValue>
      <totalVatAmount>2.40</totalVatAmount>
      <totalGrossValue>12.40</totalGrossValue>
      <incomeClassification><amount>10.00</amount></incomeClassification>
    </invoiceSummary>
  </invoice>
  <invoice>
    <issuer><vatNumber>090000045</vatNumber><country>GR</country><branch>0</branch></issuer>
    <invoiceHeader>
      <series>B</series><aa>2</aa>
      <issueDate>2024-01-10</issueDate>
      <invoiceType>11.1</invoiceType>
    </invoiceHeader>
    <invoiceDetails>
      <lineNumber>1</lineNumber><netValue>10.00</netValue>
      <vatCategory>1</vatCategory><vatAmount>2.40</vatAmount>
    </invoiceDetails>
    <invoiceSummary>
      <totalNetValue>10.00</totalNetValue>
      <totalVatAmount>2.40</totalVatAmount>
      <totalGrossValue>12.40</totalGrossValue>
      <incomeClassification><amount>10.00</amount></incomeClassification>
    </invoiceSummary>
  </invoice>
</InvoicesDoc>`

func TestProcessXML_CleanInvoice(t *testing.T) {
	p := processor.NewPipeline()

	result, err := p.ProcessXML(context.Background(), []byte(validDoc))
	require.NoError(t, err)
	require.Len(t, result.Invoices, 1)

	first := result.Invoices[0]
	assert.NotEmpty(t, first.UID)
	assert.Empty(t, first.Error)
	require.NotNil(t, first.Report)
	assert.Equal(t, validation.StatusClean, first.Report.Status,
		"unexpected findings: %+v", first.Report.Findings)
	assert.NotEmpty(t, result.Hash)
}

func TestProcessXML_UnparseableDocument(t *testing.T) {
	p := processor.NewPipeline()

	_, err := p.ProcessXML(context.Background(), []byte("<InvoicesDoc><invoice>"))
	require.Error(t, err)

	var perr *model.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestProcessXML_NotAMyDataDocument(t *testing.T) {
	p := processor.NewPipeline()

	_, err := p.ProcessXML(context.Background(), []byte(`<?xml version="1.0"?><order><item>1</item></order>`))
	require.Error(t, err)

	var perr *model.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "not a myDATA invoice document")
}

func TestProcessXML_NormalizationFailureDoesNotBlockSiblings(t *testing.T) {
	p := processor.NewPipeline()

	result, err := p.ProcessXML(context.Background(), []byte(badDateDoc))
	require.NoError(t, err)
	require.Len(t, result.Invoices, 2)

	assert.NotEmpty(t, result.Invoices[0].Error)
	assert.Nil(t, result.Invoices[0].Report)

	assert.Empty(t, result.Invoices[1].Error)
	require.NotNil(t, result.Invoices[1].Report)
}

type recordingStore struct {
	calls int
	fail  bool
}

func (s *recordingStore) LogValidation(ctx context.Context, hash string, inv *model.Invoice, report *validation.Report) error {
	s.calls++
	if s.fail {
		return errors.New("database unavailable")
	}
	return nil
}

func TestProcessXML_LogsToStore(t *testing.T) {
	store := &recordingStore{}
	p := processor.NewPipeline(processor.WithStore(store))

	_, err := p.ProcessXML(context.Background(), []byte(validDoc))
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
}

func TestProcessXML_StoreFailureDoesNotSurface(t *testing.T) {
	store := &recordingStore{fail: true}
	p := processor.NewPipeline(processor.WithStore(store))

	result, err := p.ProcessXML(context.Background(), []byte(validDoc))
	require.NoError(t, err)
	require.NotNil(t, result.Invoices[0].Report)
	assert.Equal(t, validation.StatusClean, result.Invoices[0].Report.Status)
}

func TestHash_Deterministic(t *testing.T) {
	a := processor.Hash([]byte("content"))
	b := processor.Hash([]byte("content"))
	c := processor.Hash([]byte("different"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
