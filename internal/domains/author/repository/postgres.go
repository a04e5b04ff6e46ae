package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"biblioteca-backend/internal/domains/author"
)

// postgresRepository implements author.Repository over pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) author.Repository {
	return &postgresRepository{pool: pool}
}

const authorColumns = "id, nome, nacionalidade, data_nascimento, biografia, criado_em, atualizado_em"

func scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	err := row.Scan(
		&a.ID,
		&a.Nome,
		&a.Nacionalidade,
		&a.DataNascimento,
		&a.Biografia,
		&a.CriadoEm,
		&a.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("scan author: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
        INSERT INTO autores (id, nome, nacionalidade, data_nascimento, biografia)
        VALUES ($1, $2, $3, $4, $5)
    `

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Nome, a.Nacionalidade, a.DataNascimento, a.Biografia)
	if err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := fmt.Sprintf("SELECT %s FROM autores WHERE id = $1", authorColumns)
	return scanAuthor(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) List(ctx context.Context) ([]author.Author, error) {
	query := `
        SELECT a.id, a.nome, a.nacionalidade, a.data_nascimento, a.biografia,
               a.criado_em, a.atualizado_em, COUNT(l.id) AS total_livros
        FROM autores a
        LEFT JOIN livros l ON l.id_autor = a.id
        GROUP BY a.id
        ORDER BY a.nome
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []author.Author{}
	for rows.Next() {
		var a author.Author
		err := rows.Scan(
			&a.ID,
			&a.Nome,
			&a.Nacionalidade,
			&a.DataNascimento,
			&a.Biografia,
			&a.CriadoEm,
			&a.AtualizadoEm,
			&a.TotalLivros,
		)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
        UPDATE autores
        SET nome = $2, nacionalidade = $3, data_nascimento = $4, biografia = $5,
            atualizado_em = NOW()
        WHERE id = $1
    `

	tag, err := r.pool.Exec(ctx, query,
		a.ID, a.Nome, a.Nacionalidade, a.DataNascimento, a.Biografia)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM autores WHERE id = $1", id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return author.ErrAuthorHasBooks
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func (r *postgresRepository) CountBooks(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM livros WHERE id_autor = $1", id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count author books: %w", err)
	}
	return count, nil
}
