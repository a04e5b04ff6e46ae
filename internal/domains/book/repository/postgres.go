package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"biblioteca-backend/internal/domains/book"
)

// postgresRepository implements book.Repository over pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

const bookSelect = `
    SELECT l.id, l.titulo, l.descricao, l.id_autor, l.id_categoria, l.id_professor,
           l.arquivo_pdf, l.capa, l.capa_thumb, l.criado_em, l.atualizado_em,
           a.nome AS autor_nome, c.nome AS categoria_nome, u.nome AS professor_nome
    FROM livros l
    LEFT JOIN autores a ON l.id_autor = a.id
    LEFT JOIN categorias c ON l.id_categoria = c.id
    LEFT JOIN usuarios u ON l.id_professor = u.id
`

func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	err := row.Scan(
		&b.ID,
		&b.Titulo,
		&b.Descricao,
		&b.IDAutor,
		&b.IDCategoria,
		&b.IDProfessor,
		&b.ArquivoPDF,
		&b.Capa,
		&b.CapaThumb,
		&b.CriadoEm,
		&b.AtualizadoEm,
		&b.AutorNome,
		&b.CategoriaNome,
		&b.ProfessorNome,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) error {
	query := `
        INSERT INTO livros
            (id, titulo, descricao, id_autor, id_categoria, id_professor,
             arquivo_pdf, capa, capa_thumb)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Titulo, b.Descricao, b.IDAutor, b.IDCategoria, b.IDProfessor,
		b.ArquivoPDF, b.Capa, b.CapaThumb)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return book.ErrInvalidReference
		}
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query := bookSelect + " WHERE l.id = $1"
	return scanBook(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) List(ctx context.Context, filter book.ListFilter) ([]book.Book, error) {
	query := bookSelect
	args := []interface{}{}

	if filter.ProfessorID != nil {
		query += " WHERE l.id_professor = $1"
		args = append(args, *filter.ProfessorID)
	}
	query += " ORDER BY l.criado_em DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) error {
	query := `
        UPDATE livros
        SET titulo = $2, descricao = $3, id_autor = $4, id_categoria = $5,
            arquivo_pdf = $6, capa = $7, capa_thumb = $8, atualizado_em = NOW()
        WHERE id = $1
    `

	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.Titulo, b.Descricao, b.IDAutor, b.IDCategoria,
		b.ArquivoPDF, b.Capa, b.CapaThumb)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return book.ErrInvalidReference
		}
		return fmt.Errorf("failed to update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM livros WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) AssetNames(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, "SELECT arquivo_pdf, capa, capa_thumb FROM livros")
	if err != nil {
		return nil, fmt.Errorf("failed to list book assets: %w", err)
	}
	defer rows.Close()

	names := map[string]struct{}{}
	for rows.Next() {
		var pdf string
		var capa, thumb *string
		if err := rows.Scan(&pdf, &capa, &thumb); err != nil {
			return nil, fmt.Errorf("scan book assets: %w", err)
		}
		names[pdf] = struct{}{}
		if capa != nil {
			names[*capa] = struct{}{}
		}
		if thumb != nil {
			names[*thumb] = struct{}{}
		}
	}
	return names, rows.Err()
}
