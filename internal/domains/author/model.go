package author

import (
	"time"

	"github.com/google/uuid"
)

// Author maps the autores table.
type Author struct {
	ID             uuid.UUID  `json:"id"`
	Nome           string     `json:"nome"`
	Nacionalidade  *string    `json:"nacionalidade"`
	DataNascimento *time.Time `json:"data_nascimento"`
	Biografia      *string    `json:"biografia"`
	CriadoEm       time.Time  `json:"criado_em"`
	AtualizadoEm   time.Time  `json:"atualizado_em"`

	// TotalLivros is populated by list queries only.
	TotalLivros int `json:"total_livros"`
}
