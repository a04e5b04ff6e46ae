package stats

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	General(ctx context.Context) (*GeneralStats, error)
	Admin(ctx context.Context) (*AdminStats, error)
	Professor(ctx context.Context, professorID uuid.UUID) (*ProfessorStats, error)
	// AdminActivity merges the newest books and users into one feed.
	AdminActivity(ctx context.Context) ([]Activity, error)
	ProfessorActivity(ctx context.Context, professorID uuid.UUID) ([]Activity, error)
}
