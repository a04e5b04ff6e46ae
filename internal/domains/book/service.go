package book

import (
	"context"
	"io"

	"github.com/google/uuid"

	"biblioteca-backend/internal/shared"
)

// Actor identifies who is performing a write. Ownership rules apply
// to professors only, admins pass every check.
type Actor struct {
	ID   uuid.UUID
	Tipo shared.Role
}

// Download bundles the streamed PDF with its metadata.
type Download struct {
	Reader      io.ReadCloser
	Filename    string
	ContentType string
}

type Service interface {
	Create(ctx context.Context, actor Actor, req CreateBookRequest, uploads *Uploads) (*Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)
	List(ctx context.Context) ([]Book, error)
	// ListMine returns the books uploaded by the acting professor.
	ListMine(ctx context.Context, professorID uuid.UUID) ([]Book, error)
	// ListFeatured returns the newest books for the landing page.
	ListFeatured(ctx context.Context, limit int) ([]Book, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req UpdateBookRequest, uploads *Uploads) (*Book, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	// DownloadPDF streams the stored PDF of a book.
	DownloadPDF(ctx context.Context, id uuid.UUID) (*Download, error)
}
