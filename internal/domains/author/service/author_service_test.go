package service

import (
	"context"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/domains/author"
)

type mockRepository struct {
	createFn     func(ctx context.Context, a *author.Author) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*author.Author, error)
	listFn       func(ctx context.Context) ([]author.Author, error)
	updateFn     func(ctx context.Context, a *author.Author) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	countBooksFn func(ctx context.Context, id uuid.UUID) (int, error)
}

func (m *mockRepository) Create(ctx context.Context, a *author.Author) error {
	return m.createFn(ctx, a)
}
func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepository) List(ctx context.Context) ([]author.Author, error) { return m.listFn(ctx) }
func (m *mockRepository) Update(ctx context.Context, a *author.Author) error {
	return m.updateFn(ctx, a)
}
func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error { return m.deleteFn(ctx, id) }
func (m *mockRepository) CountBooks(ctx context.Context, id uuid.UUID) (int, error) {
	return m.countBooksFn(ctx, id)
}

func strPtr(s string) *string { return &s }

func TestCreateTrimsFields(t *testing.T) {
	var saved *author.Author
	repo := &mockRepository{
		createFn: func(ctx context.Context, a *author.Author) error {
			saved = a
			return nil
		},
	}
	svc := NewAuthorService(repo)

	a, err := svc.Create(context.Background(), author.SaveAuthorRequest{
		Nome:           "  Machado de Assis  ",
		Nacionalidade:  strPtr(" brasileira "),
		Biografia:      strPtr("   "),
		DataNascimento: strPtr("1839-06-21"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Machado de Assis", a.Nome)
	require.NotNil(t, a.Nacionalidade)
	assert.Equal(t, "brasileira", *a.Nacionalidade)
	assert.Nil(t, a.Biografia, "blank biography collapses to null")
	require.NotNil(t, a.DataNascimento)
	assert.Equal(t, 1839, a.DataNascimento.Year())
	assert.Same(t, saved, a)
}

func TestCreateValidation(t *testing.T) {
	svc := NewAuthorService(&mockRepository{})

	_, err := svc.Create(context.Background(), author.SaveAuthorRequest{Nome: ""})
	var vErrs validation.Errors
	assert.ErrorAs(t, err, &vErrs)
}

func TestUpdateNotFound(t *testing.T) {
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*author.Author, error) {
			return nil, author.ErrAuthorNotFound
		},
	}
	svc := NewAuthorService(repo)

	_, err := svc.Update(context.Background(), uuid.New(), author.SaveAuthorRequest{Nome: "Clarice"})
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestUpdateClearsOmittedDate(t *testing.T) {
	existing := &author.Author{ID: uuid.New(), Nome: "Jorge Amado"}
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*author.Author, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, a *author.Author) error { return nil },
	}
	svc := NewAuthorService(repo)

	a, err := svc.Update(context.Background(), existing.ID, author.SaveAuthorRequest{Nome: "Jorge Amado"})
	require.NoError(t, err)
	assert.Nil(t, a.DataNascimento)
}

func TestDeleteBlockedByBooks(t *testing.T) {
	repo := &mockRepository{
		countBooksFn: func(ctx context.Context, id uuid.UUID) (int, error) { return 3, nil },
	}
	svc := NewAuthorService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, author.ErrAuthorHasBooks)
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
	svc := NewAuthorService(repo)

	require.NoError(t, svc.Delete(context.Background(), uuid.New()))
	assert.True(t, deleted)
}
