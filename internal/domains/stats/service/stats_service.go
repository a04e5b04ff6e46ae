package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"biblioteca-backend/internal/domains/stats"
	"biblioteca-backend/pkg/cache"
	"biblioteca-backend/pkg/logger"
)

const (
	statsTTL     = 5 * time.Minute
	activitySize = 5

	keyGeneral = "stats:gerais"
	keyAdmin   = "stats:admin"
)

// statsService serves dashboard counters with a short cache in front,
// the counts are cheap but hit on every page load.
type statsService struct {
	repo  stats.Repository
	cache cache.Cache
}

func NewStatsService(repo stats.Repository, c cache.Cache) stats.Service {
	return &statsService{repo: repo, cache: c}
}

func (s *statsService) General(ctx context.Context) (*stats.GeneralStats, error) {
	var cached stats.GeneralStats
	if hit, err := s.cache.Get(ctx, keyGeneral, &cached); err == nil && hit {
		return &cached, nil
	}

	loaded, err := s.repo.GeneralStats(ctx)
	if err != nil {
		return nil, err
	}
	s.put(ctx, keyGeneral, loaded)
	return loaded, nil
}

func (s *statsService) Admin(ctx context.Context) (*stats.AdminStats, error) {
	var cached stats.AdminStats
	if hit, err := s.cache.Get(ctx, keyAdmin, &cached); err == nil && hit {
		return &cached, nil
	}

	loaded, err := s.repo.AdminStats(ctx)
	if err != nil {
		return nil, err
	}
	s.put(ctx, keyAdmin, loaded)
	return loaded, nil
}

func (s *statsService) Professor(ctx context.Context, professorID uuid.UUID) (*stats.ProfessorStats, error) {
	key := "stats:professor:" + professorID.String()

	var cached stats.ProfessorStats
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	loaded, err := s.repo.ProfessorStats(ctx, professorID)
	if err != nil {
		return nil, err
	}
	s.put(ctx, key, loaded)
	return loaded, nil
}

func (s *statsService) AdminActivity(ctx context.Context) ([]stats.Activity, error) {
	books, err := s.repo.RecentBooks(ctx, nil, activitySize)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.RecentUsers(ctx, activitySize)
	if err != nil {
		return nil, err
	}

	feed := make([]stats.Activity, 0, len(books)+len(users))
	for _, b := range books {
		feed = append(feed, bookActivity(b))
	}
	for _, u := range users {
		feed = append(feed, stats.Activity{
			Tipo:      "usuario",
			Descricao: fmt.Sprintf("Usuário %q (%s) cadastrado", u.Nome, u.Tipo),
			Data:      u.CriadoEm,
		})
	}

	sort.Slice(feed, func(i, j int) bool { return feed[i].Data.After(feed[j].Data) })
	if len(feed) > activitySize {
		feed = feed[:activitySize]
	}
	return feed, nil
}

func (s *statsService) ProfessorActivity(ctx context.Context, professorID uuid.UUID) ([]stats.Activity, error) {
	books, err := s.repo.RecentBooks(ctx, &professorID, activitySize)
	if err != nil {
		return nil, err
	}

	feed := make([]stats.Activity, 0, len(books))
	for _, b := range books {
		feed = append(feed, bookActivity(b))
	}
	return feed, nil
}

func bookActivity(b stats.RecentBook) stats.Activity {
	return stats.Activity{
		Tipo:      "livro",
		Descricao: fmt.Sprintf("Livro %q cadastrado", b.Titulo),
		Data:      b.CriadoEm,
	}
}

func (s *statsService) put(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, statsTTL); err != nil {
		logger.Warn("stats cache set failed", err)
	}
}
