package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"biblioteca-backend/internal/domains/user"
	"biblioteca-backend/internal/shared"
	"biblioteca-backend/pkg/jwt"
)

// bcrypt cost 12: the original hashed passwords with a single
// unsalted SHA-256 round; that is not carried over.
const bcryptCost = 12

type userService struct {
	repo   user.Repository
	tokens *jwt.Manager
}

func NewUserService(repo user.Repository, tokens *jwt.Manager) user.Service {
	return &userService{repo: repo, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.DTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Validate() already pins tipo to estudante/visitante; this
	// guard keeps the rule even if the DTO rules drift.
	tipo := shared.Role(req.Tipo)
	if tipo != shared.RoleStudent && tipo != shared.RoleVisitor {
		return nil, user.ErrInvalidRole
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		ID:        uuid.New(),
		Nome:      req.Nome,
		Email:     req.Email,
		SenhaHash: string(hash),
		Tipo:      tipo,
	}
	if req.NumeroMatricula != "" {
		newUser.NumeroMatricula = &req.NumeroMatricula
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			log.Info().Str("email", req.Email).Msg("Login failed: unknown email")
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(req.Senha)); err != nil {
		log.Info().Str("email", req.Email).Msg("Login failed: wrong password")
		return nil, user.ErrInvalidCredentials
	}

	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, role *shared.Role) ([]user.DTO, error) {
	users, err := s.repo.List(ctx, role)
	if err != nil {
		return nil, err
	}

	dtos := make([]user.DTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}
	return dtos, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req user.UpdateUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var matricula *string
	if req.NumeroMatricula != "" {
		matricula = &req.NumeroMatricula
	}
	return s.repo.Update(ctx, id, req.Nome, req.Email, matricula)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, nil)
}

func (s *userService) CreateProfessor(ctx context.Context, req user.CreateProfessorRequest) (*user.DTO, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, "", user.ErrEmailAlreadyExists
	}

	exists, err = s.repo.ExistsByAgente(ctx, req.NumeroAgente)
	if err != nil {
		return nil, "", fmt.Errorf("check agent number exists: %w", err)
	}
	if exists {
		return nil, "", user.ErrAgentAlreadyExists
	}

	// The original defaulted missing passwords to a hardcoded
	// literal; a random temporary password replaces that.
	senha := req.Senha
	tempPassword := ""
	if senha == "" {
		senha, err = generateTempPassword()
		if err != nil {
			return nil, "", fmt.Errorf("generate temporary password: %w", err)
		}
		tempPassword = senha
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Nome:         req.Nome,
		Email:        req.Email,
		SenhaHash:    string(hash),
		Tipo:         shared.RoleProfessor,
		NumeroAgente: &req.NumeroAgente,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, "", err
	}

	dto := newUser.ToDTO()
	return &dto, tempPassword, nil
}

func (s *userService) UpdateProfessor(ctx context.Context, id uuid.UUID, req user.UpdateProfessorRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var hash *string
	if req.Senha != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		hs := string(h)
		hash = &hs
	}

	return s.repo.UpdateProfessor(ctx, id, req.Nome, req.Email, req.NumeroAgente, hash)
}

func (s *userService) DeleteProfessor(ctx context.Context, id uuid.UUID) error {
	role := shared.RoleProfessor
	return s.repo.Delete(ctx, id, &role)
}

func (s *userService) ResetPassword(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}

	senha, err := generateTempPassword()
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return "", err
	}
	return senha, nil
}

func (s *userService) RequestRecovery(ctx context.Context, email string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Caller answers with a generic success either way.
			log.Info().Str("email", email).Msg("Recovery requested for unknown email")
			return "", nil
		}
		return "", err
	}

	token, err := s.tokens.GenerateResetToken(u.ID.String(), u.Email, u.SenhaHash)
	if err != nil {
		return "", fmt.Errorf("generate recovery token: %w", err)
	}
	return token, nil
}

func (s *userService) VerifyRecoveryToken(ctx context.Context, token string) error {
	_, err := s.resolveRecoveryToken(ctx, token)
	return err
}

func (s *userService) ResetWithToken(ctx context.Context, req user.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.resolveRecoveryToken(ctx, req.Token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NovaSenha), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// The token was signed with the old hash, so this write also
	// invalidates every outstanding recovery token for the user.
	return s.repo.UpdatePassword(ctx, u.ID, string(hash))
}

func (s *userService) resolveRecoveryToken(ctx context.Context, token string) (*user.User, error) {
	idStr, err := s.tokens.PeekUserID(token)
	if err != nil {
		return nil, user.ErrInvalidResetToken
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, user.ErrInvalidResetToken
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidResetToken
		}
		return nil, err
	}

	if _, err := s.tokens.ValidateResetToken(token, u.SenhaHash); err != nil {
		return nil, user.ErrInvalidResetToken
	}
	return u, nil
}

const tempPasswordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateTempPassword() (string, error) {
	out := make([]byte, 10)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tempPasswordAlphabet))))
		if err != nil {
			return "", err
		}
		out[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}
