package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"biblioteca-backend/internal/domains/author"
	"biblioteca-backend/pkg/logger"
)

type authorService struct {
	repo author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req author.SaveAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := &author.Author{ID: uuid.New()}
	applyRequest(a, req)

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	logger.Info("author created", map[string]interface{}{
		"author_id": a.ID.String(),
		"nome":      a.Nome,
	})
	return a, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context) ([]author.Author, error) {
	return s.repo.List(ctx)
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req author.SaveAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRequest(a, req)

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return author.ErrAuthorHasBooks
	}
	return s.repo.Delete(ctx, id)
}

func applyRequest(a *author.Author, req author.SaveAuthorRequest) {
	a.Nome = strings.TrimSpace(req.Nome)
	a.Nacionalidade = trimmed(req.Nacionalidade)
	a.Biografia = trimmed(req.Biografia)

	a.DataNascimento = nil
	if req.DataNascimento != nil && *req.DataNascimento != "" {
		// Format already checked by the DTO.
		if t, err := time.Parse("2006-01-02", *req.DataNascimento); err == nil {
			a.DataNascimento = &t
		}
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
