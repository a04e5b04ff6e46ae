package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecentBook is a row of the recent-activity book feed.
type RecentBook struct {
	Titulo   string
	CriadoEm time.Time
}

// RecentUser is a row of the recent-activity user feed.
type RecentUser struct {
	Nome     string
	Tipo     string
	CriadoEm time.Time
}

type Repository interface {
	GeneralStats(ctx context.Context) (*GeneralStats, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
	ProfessorStats(ctx context.Context, professorID uuid.UUID) (*ProfessorStats, error)
	// RecentBooks returns the newest books, optionally scoped to one
	// professor.
	RecentBooks(ctx context.Context, professorID *uuid.UUID, limit int) ([]RecentBook, error)
	RecentUsers(ctx context.Context, limit int) ([]RecentUser, error)
}
