package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thingylabs/invoice-api/internal/domain/entity"
	"github.com/thingylabs/invoice-api/pkg/einvoice"
)

type fakeDraftRepo struct {
	draft *entity.FormDraft
}

func (f *fakeDraftRepo) Get(ctx context.Context) (*entity.FormDraft, error) {
	return f.draft, nil
}

func (f *fakeDraftRepo) Save(ctx context.Context, data string) error {
	f.draft = &entity.FormDraft{Data: data}
	return nil
}

func (f *fakeDraftRepo) Delete(ctx context.Context) error {
	f.draft = nil
	return nil
}

type fakeCompanyRepo struct {
	profile *entity.CompanyProfile
}

func (f *fakeCompanyRepo) Get(ctx context.Context) (*entity.CompanyProfile, error) {
	return f.profile, nil
}

func (f *fakeCompanyRepo) Save(ctx context.Context, profile *entity.CompanyProfile) error {
	f.profile = profile
	return nil
}

type fakeSequenceRepo struct {
	counters map[string]int
}

func (f *fakeSequenceRepo) Next(ctx context.Context, datePrefix string) (int, error) {
	if f.counters == nil {
		f.counters = map[string]int{}
	}
	f.counters[datePrefix]++
	return f.counters[datePrefix], nil
}

func newTestService(drafts *fakeDraftRepo, company *fakeCompanyRepo, seq *fakeSequenceRepo) *InvoiceService {
	return NewInvoiceService(drafts, company, seq, false)
}

func validInvoice() einvoice.Invoice {
	return einvoice.Invoice{
		InvoiceNumber:  "250831-001",
		InvoiceDate:    "2025-08-31",
		CompanyName:    "Acme GmbH",
		CompanyAddress: "Main St 1\n12345 Berlin",
		CompanyTaxID:   "DE123456789",
		ClientName:     "Client AG",
		ClientAddress:  "Side St 2\n54321 Hamburg",
		LineItems: []einvoice.LineItem{{
			Description: "Consulting",
			Quantity:    einvoice.NumberFromFloat(2),
			Price:       einvoice.NumberFromFloat(100),
			VAT:         einvoice.NumberFromFloat(19),
		}},
	}
}

func TestNextInvoiceNumberFormatsAndIncrements(t *testing.T) {
	svc := newTestService(&fakeDraftRepo{}, &fakeCompanyRepo{}, &fakeSequenceRepo{})
	day := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)

	first, err := svc.NextInvoiceNumber(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, "250831-001", first)

	second, err := svc.NextInvoiceNumber(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, "250831-002", second)

	nextDay, err := svc.NextInvoiceNumber(context.Background(), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "250901-001", nextDay)
}

func TestExportXRechnungSavesDraftBeforeValidation(t *testing.T) {
	drafts := &fakeDraftRepo{}
	svc := newTestService(drafts, &fakeCompanyRepo{}, &fakeSequenceRepo{})

	inv := validInvoice()
	inv.ClientAddress = ""
	raw := `{"invoiceNumber":"250831-001"}`

	_, err := svc.ExportXRechnung(context.Background(), inv, raw)
	require.Error(t, err)

	var valErr *einvoice.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.NotNil(t, drafts.draft)
	assert.Equal(t, raw, drafts.draft.Data)
}

func TestExportXRechnungProducesDocument(t *testing.T) {
	svc := newTestService(&fakeDraftRepo{}, &fakeCompanyRepo{}, &fakeSequenceRepo{})

	out, err := svc.ExportXRechnung(context.Background(), validInvoice(), "")
	require.NoError(t, err)
	assert.Equal(t, "Invoice-250831-001.xml", out.Filename)
	assert.Equal(t, "application/xml", out.ContentType)
	assert.Contains(t, string(out.Data), "xrechnung_3.0")
}

func TestLenientExportAcceptsMissingPostalCode(t *testing.T) {
	svc := NewInvoiceService(&fakeDraftRepo{}, &fakeCompanyRepo{}, &fakeSequenceRepo{}, true)

	inv := validInvoice()
	inv.ClientAddress = "Side St 2\nHamburg"

	// The relaxed address policy holds through validation and assembly.
	require.NoError(t, svc.Validate(context.Background(), inv))

	out, err := svc.ExportXRechnung(context.Background(), inv, "")
	require.NoError(t, err)
	assert.Contains(t, string(out.Data), "<cbc:CityName>Hamburg</cbc:CityName>")

	out, err = svc.ExportZUGFeRD(context.Background(), inv, "")
	require.NoError(t, err)
	assert.Contains(t, string(out.Data), "<ram:CityName>Hamburg</ram:CityName>")
}

func TestStrictExportRejectsMissingPostalCode(t *testing.T) {
	svc := newTestService(&fakeDraftRepo{}, &fakeCompanyRepo{}, &fakeSequenceRepo{})

	inv := validInvoice()
	inv.ClientAddress = "Side St 2\nHamburg"

	_, err := svc.ExportXRechnung(context.Background(), inv, "")
	require.Error(t, err)

	var valErr *einvoice.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestExportZUGFeRDProducesDocument(t *testing.T) {
	svc := newTestService(&fakeDraftRepo{}, &fakeCompanyRepo{}, &fakeSequenceRepo{})

	out, err := svc.ExportZUGFeRD(context.Background(), validInvoice(), "")
	require.NoError(t, err)
	assert.Equal(t, "Invoice-250831-001.xml", out.Filename)
	assert.Contains(t, string(out.Data), "CrossIndustryInvoice")
}

func TestExportPDFSkipsValidation(t *testing.T) {
	svc := newTestService(&fakeDraftRepo{}, &fakeCompanyRepo{}, &fakeSequenceRepo{})

	out, err := svc.ExportPDF(context.Background(), einvoice.Invoice{CompanyName: "Acme"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Invoice-new.pdf", out.Filename)
	assert.Equal(t, "%PDF", string(out.Data[:4]))
}

func TestCompanyDefaultsFillEmptySellerFields(t *testing.T) {
	company := &fakeCompanyRepo{profile: &entity.CompanyProfile{
		Name:                "Acme GmbH",
		Address:             "Main St 1\n12345 Berlin",
		TaxID:               "DE123456789",
		DefaultPaymentTerms: 30,
	}}
	svc := newTestService(&fakeDraftRepo{}, company, &fakeSequenceRepo{})

	inv := validInvoice()
	inv.CompanyName = ""
	inv.CompanyAddress = ""
	inv.CompanyTaxID = ""

	out, err := svc.ExportXRechnung(context.Background(), inv, "")
	require.NoError(t, err)
	assert.Contains(t, string(out.Data), "Acme GmbH")
	assert.Contains(t, string(out.Data), "DE123456789")
}

func TestCompanyDefaultsDoNotOverridePostedFields(t *testing.T) {
	company := &fakeCompanyRepo{profile: &entity.CompanyProfile{Name: "Profile GmbH"}}
	svc := newTestService(&fakeDraftRepo{}, company, &fakeSequenceRepo{})

	out, err := svc.Preview(context.Background(), validInvoice())
	require.NoError(t, err)
	assert.Contains(t, string(out), "Acme GmbH")
	assert.NotContains(t, string(out), "Profile GmbH")
}

func TestValidateReportsAllViolations(t *testing.T) {
	svc := newTestService(&fakeDraftRepo{}, &fakeCompanyRepo{}, &fakeSequenceRepo{})

	err := svc.Validate(context.Background(), einvoice.Invoice{})
	require.Error(t, err)

	var valErr *einvoice.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.GreaterOrEqual(t, len(valErr.Violations), 5)
}

func TestDraftLifecycle(t *testing.T) {
	drafts := &fakeDraftRepo{}
	svc := newTestService(drafts, &fakeCompanyRepo{}, &fakeSequenceRepo{})

	require.NoError(t, svc.SaveDraft(context.Background(), `{"invoiceNumber":"x"}`))

	draft, err := svc.GetDraft(context.Background())
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, `{"invoiceNumber":"x"}`, draft.Data)

	require.NoError(t, svc.DeleteDraft(context.Background()))
	draft, err = svc.GetDraft(context.Background())
	require.NoError(t, err)
	assert.Nil(t, draft)
}
