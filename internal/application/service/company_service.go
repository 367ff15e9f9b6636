package service

import (
	"context"

	"github.com/thingylabs/invoice-api/internal/domain/entity"
	"github.com/thingylabs/invoice-api/internal/domain/repository"
)

// CompanyService handles the singleton company profile
type CompanyService struct {
	companyRepo         repository.CompanyRepository
	defaultPaymentTerms int
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository, defaultPaymentTerms int) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, defaultPaymentTerms: defaultPaymentTerms}
}

// GetProfile retrieves the company profile, returning an empty profile
// with configured defaults when none has been saved yet.
func (s *CompanyService) GetProfile(ctx context.Context) (*entity.CompanyProfile, error) {
	profile, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &entity.CompanyProfile{DefaultPaymentTerms: s.defaultPaymentTerms}, nil
	}
	return profile, nil
}

// SaveProfileInput represents the company profile payload
type SaveProfileInput struct {
	Name                string
	Address             string
	Email               string
	Phone               string
	TaxID               string
	RegNumber           string
	BankInfo            string
	Representative      string
	Tagline             string
	DefaultPaymentTerms int
}

// SaveProfile stores the company profile
func (s *CompanyService) SaveProfile(ctx context.Context, input *SaveProfileInput) (*entity.CompanyProfile, error) {
	terms := input.DefaultPaymentTerms
	if terms <= 0 {
		terms = s.defaultPaymentTerms
	}

	profile := &entity.CompanyProfile{
		Name:                input.Name,
		Address:             input.Address,
		Email:               input.Email,
		Phone:               input.Phone,
		TaxID:               input.TaxID,
		RegNumber:           input.RegNumber,
		BankInfo:            input.BankInfo,
		Representative:      input.Representative,
		Tagline:             input.Tagline,
		DefaultPaymentTerms: terms,
	}

	if err := s.companyRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
