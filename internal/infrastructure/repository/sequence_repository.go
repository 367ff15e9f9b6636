package repository

import (
	"context"
	"errors"

	"github.com/thingylabs/invoice-api/internal/domain/entity"
	domainRepo "github.com/thingylabs/invoice-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new invoice sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments the day's counter inside a transaction with a row
// lock, so two concurrent requests never get the same number.
func (r *sequenceRepository) Next(ctx context.Context, datePrefix string) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq entity.InvoiceSequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq, "date_prefix = ?", datePrefix).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = entity.InvoiceSequence{DatePrefix: datePrefix, Counter: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
			next = seq.Counter
			return nil
		}
		if err != nil {
			return err
		}

		seq.Counter++
		if err := tx.Save(&seq).Error; err != nil {
			return err
		}
		next = seq.Counter
		return nil
	})
	return next, err
}
