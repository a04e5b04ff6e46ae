package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/domains/stats"
	"biblioteca-backend/internal/infrastructure/cache"
)

type mockRepository struct {
	generalCalls int

	generalFn     func(ctx context.Context) (*stats.GeneralStats, error)
	adminFn       func(ctx context.Context) (*stats.AdminStats, error)
	professorFn   func(ctx context.Context, professorID uuid.UUID) (*stats.ProfessorStats, error)
	recentBooksFn func(ctx context.Context, professorID *uuid.UUID, limit int) ([]stats.RecentBook, error)
	recentUsersFn func(ctx context.Context, limit int) ([]stats.RecentUser, error)
}

func (m *mockRepository) GeneralStats(ctx context.Context) (*stats.GeneralStats, error) {
	m.generalCalls++
	return m.generalFn(ctx)
}
func (m *mockRepository) AdminStats(ctx context.Context) (*stats.AdminStats, error) {
	return m.adminFn(ctx)
}
func (m *mockRepository) ProfessorStats(ctx context.Context, professorID uuid.UUID) (*stats.ProfessorStats, error) {
	return m.professorFn(ctx, professorID)
}
func (m *mockRepository) RecentBooks(ctx context.Context, professorID *uuid.UUID, limit int) ([]stats.RecentBook, error) {
	return m.recentBooksFn(ctx, professorID, limit)
}
func (m *mockRepository) RecentUsers(ctx context.Context, limit int) ([]stats.RecentUser, error) {
	return m.recentUsersFn(ctx, limit)
}

func TestGeneralCachesResult(t *testing.T) {
	repo := &mockRepository{
		generalFn: func(ctx context.Context) (*stats.GeneralStats, error) {
			return &stats.GeneralStats{TotalLivros: 42, TotalAutores: 7}, nil
		},
	}
	svc := NewStatsService(repo, cache.NewMemoryCache())

	first, err := svc.General(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, first.TotalLivros)

	second, err := svc.General(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.generalCalls, "second call must come from the cache")
}

func TestProfessorCacheIsPerProfessor(t *testing.T) {
	repo := &mockRepository{
		professorFn: func(ctx context.Context, professorID uuid.UUID) (*stats.ProfessorStats, error) {
			return &stats.ProfessorStats{TotalLivros: 1}, nil
		},
	}
	svc := NewStatsService(repo, cache.NewMemoryCache())

	p1, p2 := uuid.New(), uuid.New()
	calls := 0
	repo.professorFn = func(ctx context.Context, professorID uuid.UUID) (*stats.ProfessorStats, error) {
		calls++
		return &stats.ProfessorStats{TotalLivros: calls}, nil
	}

	s1, err := svc.Professor(context.Background(), p1)
	require.NoError(t, err)
	s2, err := svc.Professor(context.Background(), p2)
	require.NoError(t, err)
	assert.NotEqual(t, s1.TotalLivros, s2.TotalLivros, "each professor gets its own entry")

	again, err := svc.Professor(context.Background(), p1)
	require.NoError(t, err)
	assert.Equal(t, s1.TotalLivros, again.TotalLivros)
	assert.Equal(t, 2, calls)
}

func TestAdminActivityMergesAndCaps(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockRepository{
		recentBooksFn: func(ctx context.Context, professorID *uuid.UUID, limit int) ([]stats.RecentBook, error) {
			assert.Nil(t, professorID)
			return []stats.RecentBook{
				{Titulo: "Cálculo I", CriadoEm: base.Add(5 * time.Hour)},
				{Titulo: "Física II", CriadoEm: base.Add(1 * time.Hour)},
				{Titulo: "Química Geral", CriadoEm: base.Add(3 * time.Hour)},
			}, nil
		},
		recentUsersFn: func(ctx context.Context, limit int) ([]stats.RecentUser, error) {
			return []stats.RecentUser{
				{Nome: "Ana", Tipo: "estudante", CriadoEm: base.Add(4 * time.Hour)},
				{Nome: "Bruno", Tipo: "professor", CriadoEm: base.Add(2 * time.Hour)},
				{Nome: "Caio", Tipo: "visitante", CriadoEm: base},
			}, nil
		},
	}
	svc := NewStatsService(repo, cache.NewMemoryCache())

	feed, err := svc.AdminActivity(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 5, "merged feed is capped")

	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].Data.After(feed[i-1].Data), "feed must be newest first")
	}
	assert.Equal(t, `Livro "Cálculo I" cadastrado`, feed[0].Descricao)
	assert.Equal(t, `Usuário "Ana" (estudante) cadastrado`, feed[1].Descricao)
}

func TestProfessorActivityScopesToProfessor(t *testing.T) {
	professorID := uuid.New()
	repo := &mockRepository{
		recentBooksFn: func(ctx context.Context, got *uuid.UUID, limit int) ([]stats.RecentBook, error) {
			require.NotNil(t, got)
			assert.Equal(t, professorID, *got)
			return []stats.RecentBook{{Titulo: "Minha Apostila", CriadoEm: time.Now()}}, nil
		},
	}
	svc := NewStatsService(repo, cache.NewMemoryCache())

	feed, err := svc.ProfessorActivity(context.Background(), professorID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "livro", feed[0].Tipo)
}
