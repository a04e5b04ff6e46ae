package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"biblioteca-backend/internal/domains/user"
	"biblioteca-backend/internal/shared"
)

// postgresRepository implements user.Repository over pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

const userColumns = "id, nome, email, senha_hash, tipo, numero_matricula, numero_agente, criado_em, atualizado_em"

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Nome,
		&u.Email,
		&u.SenhaHash,
		&u.Tipo,
		&u.NumeroMatricula,
		&u.NumeroAgente,
		&u.CriadoEm,
		&u.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
        INSERT INTO usuarios (id, nome, email, senha_hash, tipo, numero_matricula, numero_agente)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Nome, u.Email, u.SenhaHash, u.Tipo, u.NumeroMatricula, u.NumeroAgente)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			if strings.Contains(pgErr.ConstraintName, "agente") {
				return user.ErrAgentAlreadyExists
			}
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios WHERE id = $1", userColumns)
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios WHERE email = $1", userColumns)
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *postgresRepository) List(ctx context.Context, role *shared.Role) ([]user.User, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios", userColumns)
	args := []interface{}{}
	if role != nil {
		query += " WHERE tipo = $1"
		args = append(args, *role)
	}
	query += " ORDER BY nome"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, nome, email string, numeroMatricula *string) error {
	query := `
        UPDATE usuarios
        SET nome = $1, email = $2, numero_matricula = $3, atualizado_em = NOW()
        WHERE id = $4
    `

	tag, err := r.pool.Exec(ctx, query, nome, email, numeroMatricula, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateProfessor(ctx context.Context, id uuid.UUID, nome, email, numeroAgente string, passwordHash *string) error {
	query := `
        UPDATE usuarios
        SET nome = $1, email = $2, numero_agente = $3,
            senha_hash = COALESCE($4, senha_hash),
            atualizado_em = NOW()
        WHERE id = $5 AND tipo = 'professor'
    `

	tag, err := r.pool.Exec(ctx, query, nome, email, numeroAgente, passwordHash, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "agente") {
				return user.ErrAgentAlreadyExists
			}
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update professor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE usuarios SET senha_hash = $1, atualizado_em = NOW() WHERE id = $2",
		passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID, role *shared.Role) error {
	query := "DELETE FROM usuarios WHERE id = $1"
	args := []interface{}{id}
	if role != nil {
		query += " AND tipo = $2"
		args = append(args, *role)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByAgente(ctx context.Context, numeroAgente string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM usuarios WHERE numero_agente = $1)", numeroAgente).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check agent number existence: %w", err)
	}
	return exists, nil
}
