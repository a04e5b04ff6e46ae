package author

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req SaveAuthorRequest) (*Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	List(ctx context.Context) ([]Author, error)
	Update(ctx context.Context, id uuid.UUID, req SaveAuthorRequest) (*Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
