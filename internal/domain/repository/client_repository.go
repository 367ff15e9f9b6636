package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/thingylabs/invoice-api/internal/domain/entity"
	"github.com/thingylabs/invoice-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns clients ordered by name with page-based pagination.
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error)
}
