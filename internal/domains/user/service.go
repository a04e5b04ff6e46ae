package user

import (
	"context"

	"github.com/google/uuid"

	"biblioteca-backend/internal/shared"
)

// Service defines business logic for usuarios.
type Service interface {
	// Register creates an estudante or visitante account.
	// Errors: ErrInvalidRole, ErrEmailAlreadyExists.
	Register(ctx context.Context, req RegisterRequest) (*DTO, error)

	// Login verifies credentials. Unknown email and wrong password
	// both fail with ErrInvalidCredentials; only the server log
	// distinguishes them.
	Login(ctx context.Context, req LoginRequest) (*User, error)

	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// List returns users, optionally filtered to one role.
	List(ctx context.Context, role *shared.Role) ([]DTO, error)

	Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateProfessor provisions a professor account. When the
	// request has no password, a random temporary one is generated
	// and returned exactly once.
	CreateProfessor(ctx context.Context, req CreateProfessorRequest) (*DTO, string, error)
	UpdateProfessor(ctx context.Context, id uuid.UUID, req UpdateProfessorRequest) error
	DeleteProfessor(ctx context.Context, id uuid.UUID) error

	// ResetPassword sets a fresh random temporary password for the
	// user and returns it. Admin-only operation.
	ResetPassword(ctx context.Context, id uuid.UUID) (string, error)

	// RequestRecovery issues a recovery token for the email. A blank
	// token with nil error means the email is unknown; callers still
	// answer with a generic success to avoid account enumeration.
	RequestRecovery(ctx context.Context, email string) (string, error)

	// VerifyRecoveryToken checks a token without consuming it.
	VerifyRecoveryToken(ctx context.Context, token string) error

	// ResetWithToken sets a new password for the token's user.
	// Errors: ErrInvalidResetToken.
	ResetWithToken(ctx context.Context, req ResetPasswordRequest) error
}
