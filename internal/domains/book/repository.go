package book

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows List results.
type ListFilter struct {
	// ProfessorID limits results to one uploader.
	ProfessorID *uuid.UUID
	// Limit caps the result count, zero means no cap.
	Limit int
}

type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)
	// List returns books newest first, with author, category and
	// uploader names joined in.
	List(ctx context.Context, filter ListFilter) ([]Book, error)
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AssetNames returns every stored filename referenced by any
	// book, used to detect orphaned files.
	AssetNames(ctx context.Context) (map[string]struct{}, error)
}
