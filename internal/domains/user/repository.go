package user

import (
	"context"

	"github.com/google/uuid"

	"biblioteca-backend/internal/shared"
)

// Repository defines data access for usuarios.
type Repository interface {
	// Create inserts a new user.
	// Errors: ErrEmailAlreadyExists, ErrAgentAlreadyExists.
	Create(ctx context.Context, u *User) error

	// GetByID returns ErrUserNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail returns ErrUserNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List returns users ordered by name, optionally filtered by role.
	List(ctx context.Context, role *shared.Role) ([]User, error)

	// Update rewrites nome/email/numero_matricula.
	Update(ctx context.Context, id uuid.UUID, nome, email string, numeroMatricula *string) error

	// UpdateProfessor rewrites a professor row; passwordHash is
	// applied only when non-nil.
	UpdateProfessor(ctx context.Context, id uuid.UUID, nome, email, numeroAgente string, passwordHash *string) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Delete removes a user; when role is non-nil the row must also
	// match that role. Returns ErrUserNotFound when nothing matched.
	Delete(ctx context.Context, id uuid.UUID, role *shared.Role) error

	// ExistsByEmail / ExistsByAgente support uniqueness checks.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByAgente(ctx context.Context, numeroAgente string) (bool, error)
}
