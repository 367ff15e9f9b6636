package repository

import (
	"context"
	"errors"

	"github.com/thingylabs/invoice-api/internal/domain/entity"
	domainRepo "github.com/thingylabs/invoice-api/internal/domain/repository"
	"gorm.io/gorm"
)

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new form draft repository
func NewDraftRepository(db *gorm.DB) domainRepo.DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Get(ctx context.Context) (*entity.FormDraft, error) {
	var draft entity.FormDraft
	err := r.db.WithContext(ctx).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) Save(ctx context.Context, data string) error {
	existing, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Data = data
		return r.db.WithContext(ctx).Save(existing).Error
	}
	return r.db.WithContext(ctx).Create(&entity.FormDraft{Data: data}).Error
}

func (r *draftRepository) Delete(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.FormDraft{}).Error
}
