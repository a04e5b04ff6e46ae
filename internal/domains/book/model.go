package book

import (
	"time"

	"github.com/google/uuid"
)

// Book maps the livros table. IDProfessor is fixed at upload time and
// never changes afterwards, ownership checks rely on it.
type Book struct {
	ID          uuid.UUID `json:"id"`
	Titulo      string    `json:"titulo"`
	Descricao   *string   `json:"descricao"`
	IDAutor     uuid.UUID `json:"id_autor"`
	IDCategoria uuid.UUID `json:"id_categoria"`
	IDProfessor uuid.UUID `json:"id_professor"`

	// Stored filenames, not paths. ArquivoPDF is always present,
	// Capa and CapaThumb only when a cover was uploaded.
	ArquivoPDF string  `json:"arquivo_pdf"`
	Capa       *string `json:"capa"`
	CapaThumb  *string `json:"capa_thumb"`

	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`

	// Joined display names, populated by read queries.
	AutorNome     *string `json:"autor_nome"`
	CategoriaNome *string `json:"categoria_nome"`
	ProfessorNome *string `json:"professor_nome"`
}
