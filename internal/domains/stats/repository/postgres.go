package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"biblioteca-backend/internal/domains/stats"
)

// postgresRepository implements stats.Repository over pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) stats.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GeneralStats(ctx context.Context) (*stats.GeneralStats, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM livros),
            (SELECT COUNT(*) FROM autores),
            (SELECT COUNT(*) FROM categorias),
            (SELECT COUNT(*) FROM usuarios WHERE tipo = 'professor')
    `

	var s stats.GeneralStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalLivros, &s.TotalAutores, &s.TotalCategorias, &s.TotalProfessores)
	if err != nil {
		return nil, fmt.Errorf("failed to load general stats: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) AdminStats(ctx context.Context) (*stats.AdminStats, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM usuarios),
            (SELECT COUNT(*) FROM usuarios WHERE tipo = 'estudante'),
            (SELECT COUNT(*) FROM usuarios WHERE tipo = 'professor'),
            (SELECT COUNT(*) FROM usuarios WHERE tipo = 'visitante'),
            (SELECT COUNT(*) FROM livros),
            (SELECT COUNT(*) FROM autores)
    `

	var s stats.AdminStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalUsuarios, &s.TotalEstudantes, &s.TotalProfessores,
		&s.TotalVisitantes, &s.TotalLivros, &s.TotalAutores)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin stats: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) ProfessorStats(ctx context.Context, professorID uuid.UUID) (*stats.ProfessorStats, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM livros WHERE id_professor = $1),
            (SELECT COUNT(*) FROM autores),
            (SELECT COUNT(*) FROM livros
             WHERE id_professor = $1 AND criado_em >= date_trunc('month', NOW())),
            (SELECT COUNT(*) FROM categorias)
    `

	var s stats.ProfessorStats
	err := r.pool.QueryRow(ctx, query, professorID).Scan(
		&s.TotalLivros, &s.TotalAutores, &s.LivrosEsteMes, &s.TotalCategorias)
	if err != nil {
		return nil, fmt.Errorf("failed to load professor stats: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) RecentBooks(ctx context.Context, professorID *uuid.UUID, limit int) ([]stats.RecentBook, error) {
	query := "SELECT titulo, criado_em FROM livros"
	args := []interface{}{}
	if professorID != nil {
		query += " WHERE id_professor = $1"
		args = append(args, *professorID)
	}
	query += fmt.Sprintf(" ORDER BY criado_em DESC LIMIT %d", limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent books: %w", err)
	}
	defer rows.Close()

	books := []stats.RecentBook{}
	for rows.Next() {
		var b stats.RecentBook
		if err := rows.Scan(&b.Titulo, &b.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan recent book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *postgresRepository) RecentUsers(ctx context.Context, limit int) ([]stats.RecentUser, error) {
	query := fmt.Sprintf(
		"SELECT nome, tipo, criado_em FROM usuarios ORDER BY criado_em DESC LIMIT %d", limit)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}
	defer rows.Close()

	users := []stats.RecentUser{}
	for rows.Next() {
		var u stats.RecentUser
		if err := rows.Scan(&u.Nome, &u.Tipo, &u.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan recent user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
