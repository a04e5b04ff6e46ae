package category

import (
	"time"

	"github.com/google/uuid"
)

// Category maps the categorias table.
type Category struct {
	ID           uuid.UUID `json:"id"`
	Nome         string    `json:"nome"`
	Descricao    string    `json:"descricao"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`

	// TotalLivros is populated by list queries only.
	TotalLivros int `json:"total_livros"`
}
