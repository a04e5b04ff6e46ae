package category

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cat *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	// List returns all categories ordered by name, each with its book count.
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, cat *Category) error
	// Delete fails with ErrCategoryHasBooks while books reference the category.
	Delete(ctx context.Context, id uuid.UUID) error
	CountBooks(ctx context.Context, id uuid.UUID) (int, error)
}
