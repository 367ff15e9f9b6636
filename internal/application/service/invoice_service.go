package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/thingylabs/invoice-api/internal/domain/entity"
	"github.com/thingylabs/invoice-api/internal/domain/repository"
	"github.com/thingylabs/invoice-api/pkg/einvoice"
	"github.com/thingylabs/invoice-api/pkg/einvoice/cii"
	"github.com/thingylabs/invoice-api/pkg/einvoice/ubl"
	"github.com/thingylabs/invoice-api/pkg/pdf"
	"github.com/thingylabs/invoice-api/pkg/preview"
)

// InvoiceService orchestrates the invoice form lifecycle: draft
// persistence, daily numbering, validation and the three export formats.
type InvoiceService struct {
	draftRepo    repository.DraftRepository
	companyRepo  repository.CompanyRepository
	sequenceRepo repository.SequenceRepository
	renderer     *pdf.Renderer

	// lenientExport relaxes address validation on the XML endpoints.
	lenientExport bool
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	draftRepo repository.DraftRepository,
	companyRepo repository.CompanyRepository,
	sequenceRepo repository.SequenceRepository,
	lenientExport bool,
) *InvoiceService {
	return &InvoiceService{
		draftRepo:     draftRepo,
		companyRepo:   companyRepo,
		sequenceRepo:  sequenceRepo,
		renderer:      pdf.NewRenderer(),
		lenientExport: lenientExport,
	}
}

// Export bundles a generated document with its download name.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// GetDraft returns the saved form draft, nil when none exists
func (s *InvoiceService) GetDraft(ctx context.Context) (*entity.FormDraft, error) {
	return s.draftRepo.Get(ctx)
}

// SaveDraft stores the raw form snapshot
func (s *InvoiceService) SaveDraft(ctx context.Context, data string) error {
	return s.draftRepo.Save(ctx, data)
}

// DeleteDraft clears the saved form snapshot
func (s *InvoiceService) DeleteDraft(ctx context.Context) error {
	return s.draftRepo.Delete(ctx)
}

// NextInvoiceNumber hands out the next number for the given issue date,
// formatted YYMMDD-NNN. The counter resets each day.
func (s *InvoiceService) NextInvoiceNumber(ctx context.Context, issueDate time.Time) (string, error) {
	prefix := issueDate.Format("060102")
	n, err := s.sequenceRepo.Next(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%03d", prefix, n), nil
}

// Validate runs the full pre-export validation pass and returns every
// violation at once. The address policy matches what the XML exports
// will later enforce.
func (s *InvoiceService) Validate(ctx context.Context, inv einvoice.Invoice) error {
	inv = s.applyCompanyDefaults(ctx, inv)
	return einvoice.Validate(inv, einvoice.ValidateOptions{
		AddressPolicy: s.exportAddressPolicy(),
	})
}

// Preview renders the live preview HTML. Incomplete forms render with
// whatever is filled in.
func (s *InvoiceService) Preview(ctx context.Context, inv einvoice.Invoice) ([]byte, error) {
	inv = s.applyCompanyDefaults(ctx, inv)
	return preview.Render(inv)
}

// ExportXRechnung validates the snapshot and assembles the XRechnung UBL
// document. The draft is saved before validation, so a rejected export
// never loses the form state.
func (s *InvoiceService) ExportXRechnung(ctx context.Context, inv einvoice.Invoice, raw string) (*Export, error) {
	if err := s.saveSnapshot(ctx, raw); err != nil {
		return nil, err
	}
	inv = s.applyCompanyDefaults(ctx, inv)
	if err := einvoice.Validate(inv, einvoice.ValidateOptions{AddressPolicy: s.exportAddressPolicy()}); err != nil {
		return nil, err
	}

	data, err := ubl.Generate(inv, s.exportAddressPolicy())
	if err != nil {
		return nil, err
	}
	return &Export{
		Filename:    inv.ExportFilename("xml"),
		ContentType: "application/xml",
		Data:        data,
	}, nil
}

// ExportZUGFeRD validates the snapshot and assembles the ZUGFeRD CII
// document. Same draft-first behavior as ExportXRechnung.
func (s *InvoiceService) ExportZUGFeRD(ctx context.Context, inv einvoice.Invoice, raw string) (*Export, error) {
	if err := s.saveSnapshot(ctx, raw); err != nil {
		return nil, err
	}
	inv = s.applyCompanyDefaults(ctx, inv)
	if err := einvoice.Validate(inv, einvoice.ValidateOptions{AddressPolicy: s.exportAddressPolicy()}); err != nil {
		return nil, err
	}

	data, err := cii.Generate(inv, s.exportAddressPolicy())
	if err != nil {
		return nil, err
	}
	return &Export{
		Filename:    inv.ExportFilename("xml"),
		ContentType: "application/xml",
		Data:        data,
	}, nil
}

// ExportPDF renders the snapshot to PDF. No validation pass: the PDF is
// also the preview document and tolerates an incomplete form.
func (s *InvoiceService) ExportPDF(ctx context.Context, inv einvoice.Invoice, raw string) (*Export, error) {
	if err := s.saveSnapshot(ctx, raw); err != nil {
		return nil, err
	}
	inv = s.applyCompanyDefaults(ctx, inv)

	data, err := s.renderer.Render(inv)
	if err != nil {
		return nil, err
	}
	return &Export{
		Filename:    inv.ExportFilename("pdf"),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

func (s *InvoiceService) exportAddressPolicy() einvoice.AddressPolicy {
	if s.lenientExport {
		return einvoice.AddressPolicyLenient
	}
	return einvoice.AddressPolicyStrict
}

func (s *InvoiceService) saveSnapshot(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	if !json.Valid([]byte(raw)) {
		return nil
	}
	return s.draftRepo.Save(ctx, raw)
}

// applyCompanyDefaults fills empty seller fields from the saved company
// profile. The posted form always wins, so overriding a single field for
// one invoice works without touching the profile.
func (s *InvoiceService) applyCompanyDefaults(ctx context.Context, inv einvoice.Invoice) einvoice.Invoice {
	profile, err := s.companyRepo.Get(ctx)
	if err != nil || profile == nil {
		return inv
	}

	if inv.CompanyName == "" {
		inv.CompanyName = profile.Name
	}
	if inv.CompanyAddress == "" {
		inv.CompanyAddress = profile.Address
	}
	if inv.CompanyEmail == "" {
		inv.CompanyEmail = profile.Email
	}
	if inv.CompanyPhone == "" {
		inv.CompanyPhone = profile.Phone
	}
	if inv.CompanyTaxID == "" {
		inv.CompanyTaxID = profile.TaxID
	}
	if inv.CompanyRegNumber == "" {
		inv.CompanyRegNumber = profile.RegNumber
	}
	if inv.CompanyBankInfo == "" {
		inv.CompanyBankInfo = profile.BankInfo
	}
	if inv.CompanyRepresentative == "" {
		inv.CompanyRepresentative = profile.Representative
	}
	if inv.CompanyTagline == "" {
		inv.CompanyTagline = profile.Tagline
	}
	if inv.PaymentTerms <= 0 && profile.DefaultPaymentTerms > 0 {
		inv.PaymentTerms = profile.DefaultPaymentTerms
	}

	return inv
}
