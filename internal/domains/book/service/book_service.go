package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"biblioteca-backend/internal/domains/book"
	"biblioteca-backend/internal/infrastructure/storage"
	"biblioteca-backend/internal/shared"
	"biblioteca-backend/pkg/logger"
)

// AssetCleaner schedules removal of stored files that a deleted book
// left behind.
type AssetCleaner interface {
	EnqueueDeleteAssets(ctx context.Context, payload shared.DeleteBookAssetsPayload) error
}

type bookService struct {
	repo    book.Repository
	assets  storage.AssetStorage
	thumbs  *storage.Thumbnailer
	cleaner AssetCleaner
}

func NewBookService(repo book.Repository, assets storage.AssetStorage, thumbs *storage.Thumbnailer, cleaner AssetCleaner) book.Service {
	return &bookService{repo: repo, assets: assets, thumbs: thumbs, cleaner: cleaner}
}

func (s *bookService) Create(ctx context.Context, actor book.Actor, req book.CreateBookRequest, uploads *book.Uploads) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if uploads == nil || uploads.PDF == nil {
		return nil, book.ErrPDFRequired
	}

	owner := actor.ID
	if actor.Tipo == shared.RoleAdmin && req.IDProfessor != "" {
		owner = uuid.MustParse(req.IDProfessor)
	}

	b := &book.Book{
		ID:          uuid.New(),
		Titulo:      req.Titulo,
		IDAutor:     uuid.MustParse(req.IDAutor),
		IDCategoria: uuid.MustParse(req.IDCategoria),
		IDProfessor: owner,
		ArquivoPDF:  uploads.PDF.StorageName,
	}
	if req.Descricao != "" {
		b.Descricao = &req.Descricao
	}

	stored, err := s.storeUploads(ctx, b, uploads)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		// The row never landed, the files must not stay behind.
		s.removeStored(ctx, stored)
		return nil, err
	}

	logger.Info("book created", map[string]interface{}{
		"book_id":      b.ID.String(),
		"professor_id": actor.ID.String(),
		"arquivo_pdf":  b.ArquivoPDF,
	})
	return s.repo.GetByID(ctx, b.ID)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) List(ctx context.Context) ([]book.Book, error) {
	return s.repo.List(ctx, book.ListFilter{})
}

func (s *bookService) ListMine(ctx context.Context, professorID uuid.UUID) ([]book.Book, error) {
	return s.repo.List(ctx, book.ListFilter{ProfessorID: &professorID})
}

func (s *bookService) ListFeatured(ctx context.Context, limit int) ([]book.Book, error) {
	return s.repo.List(ctx, book.ListFilter{Limit: limit})
}

func (s *bookService) Update(ctx context.Context, actor book.Actor, id uuid.UUID, req book.UpdateBookRequest, uploads *book.Uploads) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, b); err != nil {
		return nil, err
	}

	if req.Titulo != "" {
		b.Titulo = req.Titulo
	}
	if req.IDAutor != "" {
		b.IDAutor = uuid.MustParse(req.IDAutor)
	}
	if req.IDCategoria != "" {
		b.IDCategoria = uuid.MustParse(req.IDCategoria)
	}
	if req.Descricao != nil {
		b.Descricao = req.Descricao
	}

	// Replaced files: keep the old names around so they can be
	// removed only after the row update sticks.
	replaced := shared.DeleteBookAssetsPayload{}
	if uploads != nil && uploads.PDF != nil {
		replaced.PDF = b.ArquivoPDF
		b.ArquivoPDF = uploads.PDF.StorageName
	}
	if uploads != nil && uploads.Cover != nil {
		replaced.Capa = b.Capa
		replaced.Thumb = b.CapaThumb
		b.Capa = nil
		b.CapaThumb = nil
	}

	stored, err := s.storeUploads(ctx, b, uploads)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		s.removeStored(ctx, stored)
		return nil, err
	}

	if replaced.PDF != "" {
		_ = s.assets.Remove(ctx, storage.ClassPDF, replaced.PDF)
	}
	if replaced.Capa != nil {
		_ = s.assets.Remove(ctx, storage.ClassCover, *replaced.Capa)
	}
	if replaced.Thumb != nil {
		_ = s.assets.Remove(ctx, storage.ClassCover, *replaced.Thumb)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *bookService) Delete(ctx context.Context, actor book.Actor, id uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, b); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	payload := shared.DeleteBookAssetsPayload{
		PDF:   b.ArquivoPDF,
		Capa:  b.Capa,
		Thumb: b.CapaThumb,
	}
	if s.cleaner != nil {
		err := s.cleaner.EnqueueDeleteAssets(ctx, payload)
		if err == nil {
			return nil
		}
		logger.Warn("asset cleanup enqueue failed, removing inline", err)
	}

	// File removal is best effort: the orphan sweep picks up
	// anything missed here.
	_ = s.assets.Remove(ctx, storage.ClassPDF, payload.PDF)
	if payload.Capa != nil {
		_ = s.assets.Remove(ctx, storage.ClassCover, *payload.Capa)
	}
	if payload.Thumb != nil {
		_ = s.assets.Remove(ctx, storage.ClassCover, *payload.Thumb)
	}
	return nil
}

func (s *bookService) DownloadPDF(ctx context.Context, id uuid.UUID) (*book.Download, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rc, err := s.assets.Open(ctx, storage.ClassPDF, b.ArquivoPDF)
	if err != nil {
		logger.Error("stored pdf missing: "+b.ArquivoPDF, err)
		return nil, book.ErrAssetNotFound
	}

	return &book.Download{
		Reader:      rc,
		Filename:    b.Titulo + ".pdf",
		ContentType: "application/pdf",
	}, nil
}

// authorize enforces ownership: admins touch anything, professors
// only their own uploads.
func authorize(actor book.Actor, b *book.Book) error {
	if actor.Tipo == shared.RoleAdmin {
		return nil
	}
	if actor.Tipo == shared.RoleProfessor && b.IDProfessor == actor.ID {
		return nil
	}
	return book.ErrNotOwner
}

// storedAsset records one written file for compensating cleanup.
type storedAsset struct {
	class storage.AssetClass
	name  string
}

// storeUploads writes the PDF and cover (plus its thumbnail) to the
// asset store and fills the corresponding fields of b. Already
// written files are returned so a failed caller can undo them.
func (s *bookService) storeUploads(ctx context.Context, b *book.Book, uploads *book.Uploads) ([]storedAsset, error) {
	if uploads == nil {
		return nil, nil
	}
	stored := []storedAsset{}

	if uploads.PDF != nil {
		if err := s.saveUpload(ctx, storage.ClassPDF, uploads.PDF); err != nil {
			return nil, err
		}
		stored = append(stored, storedAsset{storage.ClassPDF, uploads.PDF.StorageName})
		b.ArquivoPDF = uploads.PDF.StorageName
	}

	if uploads.Cover != nil {
		cover := uploads.Cover
		f, err := cover.Open()
		if err != nil {
			s.removeStored(ctx, stored)
			return nil, fmt.Errorf("open cover upload: %w", err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.removeStored(ctx, stored)
			return nil, fmt.Errorf("read cover upload: %w", err)
		}

		err = s.assets.Save(ctx, storage.ClassCover, cover.StorageName,
			bytes.NewReader(data), cover.Size, cover.ContentType)
		if err != nil {
			s.removeStored(ctx, stored)
			return nil, err
		}
		stored = append(stored, storedAsset{storage.ClassCover, cover.StorageName})
		name := cover.StorageName
		b.Capa = &name

		// A cover that does not decode still gets stored, it just
		// has no thumbnail.
		if thumb, err := s.thumbs.Thumbnail(data); err == nil {
			thumbName := storage.ThumbName(cover.StorageName)
			err = s.assets.Save(ctx, storage.ClassCover, thumbName,
				bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg")
			if err == nil {
				stored = append(stored, storedAsset{storage.ClassCover, thumbName})
				b.CapaThumb = &thumbName
			}
		} else {
			logger.Warn("cover thumbnail skipped: "+cover.StorageName, err)
		}
	}
	return stored, nil
}

func (s *bookService) saveUpload(ctx context.Context, class storage.AssetClass, up *book.FileUpload) error {
	f, err := up.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return s.assets.Save(ctx, class, up.StorageName, f, up.Size, up.ContentType)
}

func (s *bookService) removeStored(ctx context.Context, stored []storedAsset) {
	for _, a := range stored {
		_ = s.assets.Remove(ctx, a.class, a.name)
	}
}
