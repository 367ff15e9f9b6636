package repository

import (
	"context"

	"github.com/thingylabs/invoice-api/internal/domain/entity"
)

// CompanyRepository defines the interface for the singleton company profile
type CompanyRepository interface {
	Get(ctx context.Context) (*entity.CompanyProfile, error)
	Save(ctx context.Context, profile *entity.CompanyProfile) error
}
