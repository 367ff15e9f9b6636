package repository

import (
	"context"
	"errors"

	"github.com/thingylabs/invoice-api/internal/domain/entity"
	domainRepo "github.com/thingylabs/invoice-api/internal/domain/repository"
	"gorm.io/gorm"
)

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company profile repository
func NewCompanyRepository(db *gorm.DB) domainRepo.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Get(ctx context.Context) (*entity.CompanyProfile, error) {
	var profile entity.CompanyProfile
	err := r.db.WithContext(ctx).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save updates the existing profile row or creates the first one.
func (r *companyRepository) Save(ctx context.Context, profile *entity.CompanyProfile) error {
	existing, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(profile).Error
	}
	return r.db.WithContext(ctx).Create(profile).Error
}
