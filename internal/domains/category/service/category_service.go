package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"biblioteca-backend/internal/domains/category"
	"biblioteca-backend/pkg/logger"
)

type categoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) category.Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req category.SaveCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cat := &category.Category{
		ID:        uuid.New(),
		Nome:      strings.TrimSpace(req.Nome),
		Descricao: strings.TrimSpace(req.Descricao),
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	logger.Info("category created", map[string]interface{}{
		"category_id": cat.ID.String(),
		"nome":        cat.Nome,
	})
	return cat, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req category.SaveCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cat.Nome = strings.TrimSpace(req.Nome)
	cat.Descricao = strings.TrimSpace(req.Descricao)

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return category.ErrCategoryHasBooks
	}
	return s.repo.Delete(ctx, id)
}
