package repository

import (
	"context"

	"github.com/thingylabs/invoice-api/internal/domain/entity"
)

// DraftRepository defines the interface for the singleton form draft
type DraftRepository interface {
	Get(ctx context.Context) (*entity.FormDraft, error)
	Save(ctx context.Context, data string) error
	Delete(ctx context.Context) error
}
