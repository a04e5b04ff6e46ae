package author

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Author) error
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	// List returns all authors ordered by name, each with its book count.
	List(ctx context.Context) ([]Author, error)
	Update(ctx context.Context, a *Author) error
	// Delete fails with ErrAuthorHasBooks while books reference the author.
	Delete(ctx context.Context, id uuid.UUID) error
	CountBooks(ctx context.Context, id uuid.UUID) (int, error)
}
