package service

import (
	"context"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/domains/category"
)

type mockRepository struct {
	createFn     func(ctx context.Context, c *category.Category) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*category.Category, error)
	listFn       func(ctx context.Context) ([]category.Category, error)
	updateFn     func(ctx context.Context, c *category.Category) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	countBooksFn func(ctx context.Context, id uuid.UUID) (int, error)
}

func (m *mockRepository) Create(ctx context.Context, c *category.Category) error {
	return m.createFn(ctx, c)
}
func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepository) List(ctx context.Context) ([]category.Category, error) {
	return m.listFn(ctx)
}
func (m *mockRepository) Update(ctx context.Context, c *category.Category) error {
	return m.updateFn(ctx, c)
}
func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error { return m.deleteFn(ctx, id) }
func (m *mockRepository) CountBooks(ctx context.Context, id uuid.UUID) (int, error) {
	return m.countBooksFn(ctx, id)
}

func TestCreateTrimsFields(t *testing.T) {
	repo := &mockRepository{
		createFn: func(ctx context.Context, c *category.Category) error { return nil },
	}
	svc := NewCategoryService(repo)

	cat, err := svc.Create(context.Background(), category.SaveCategoryRequest{
		Nome:      "  Computação  ",
		Descricao: " apostilas e livros de computação ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Computação", cat.Nome)
	assert.Equal(t, "apostilas e livros de computação", cat.Descricao)
}

func TestCreateValidation(t *testing.T) {
	svc := NewCategoryService(&mockRepository{})

	_, err := svc.Create(context.Background(), category.SaveCategoryRequest{Nome: ""})
	var vErrs validation.Errors
	assert.ErrorAs(t, err, &vErrs)
}

func TestUpdateNotFound(t *testing.T) {
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*category.Category, error) {
			return nil, category.ErrCategoryNotFound
		},
	}
	svc := NewCategoryService(repo)

	_, err := svc.Update(context.Background(), uuid.New(), category.SaveCategoryRequest{Nome: "Direito"})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestDeleteBlockedByBooks(t *testing.T) {
	repo := &mockRepository{
		countBooksFn: func(ctx context.Context, id uuid.UUID) (int, error) { return 1, nil },
	}
	svc := NewCategoryService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, category.ErrCategoryHasBooks)
}

func TestDeleteWithoutBooks(t *testing.T) {
	deleted := false
	repo := &mockRepository{
		countBooksFn: func(ctx context.Context, id uuid.UUID) (int, error) { return 0, nil },
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	svc := NewCategoryService(repo)

	require.NoError(t, svc.Delete(context.Background(), uuid.New()))
	assert.True(t, deleted)
}
