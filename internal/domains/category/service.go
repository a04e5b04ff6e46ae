package category

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req SaveCategoryRequest) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, id uuid.UUID, req SaveCategoryRequest) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
