package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"biblioteca-backend/internal/domains/category"
)

// postgresRepository implements category.Repository over pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

const categoryColumns = "id, nome, descricao, criado_em, atualizado_em"

func scanCategory(row pgx.Row) (*category.Category, error) {
	var cat category.Category
	err := row.Scan(&cat.ID, &cat.Nome, &cat.Descricao, &cat.CriadoEm, &cat.AtualizadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &cat, nil
}

func (r *postgresRepository) Create(ctx context.Context, cat *category.Category) error {
	query := `
        INSERT INTO categorias (id, nome, descricao)
        VALUES ($1, $2, $3)
    `

	_, err := r.pool.Exec(ctx, query, cat.ID, cat.Nome, cat.Descricao)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := fmt.Sprintf("SELECT %s FROM categorias WHERE id = $1", categoryColumns)
	return scanCategory(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) List(ctx context.Context) ([]category.Category, error) {
	query := `
        SELECT c.id, c.nome, c.descricao, c.criado_em, c.atualizado_em,
               COUNT(l.id) AS total_livros
        FROM categorias c
        LEFT JOIN livros l ON l.id_categoria = c.id
        GROUP BY c.id
        ORDER BY c.nome
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []category.Category{}
	for rows.Next() {
		var cat category.Category
		err := rows.Scan(
			&cat.ID,
			&cat.Nome,
			&cat.Descricao,
			&cat.CriadoEm,
			&cat.AtualizadoEm,
			&cat.TotalLivros,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, cat *category.Category) error {
	query := `
        UPDATE categorias
        SET nome = $2, descricao = $3, atualizado_em = NOW()
        WHERE id = $1
    `

	tag, err := r.pool.Exec(ctx, query, cat.ID, cat.Nome, cat.Descricao)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM categorias WHERE id = $1", id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return category.ErrCategoryHasBooks
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) CountBooks(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM livros WHERE id_categoria = $1", id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count category books: %w", err)
	}
	return count, nil
}
