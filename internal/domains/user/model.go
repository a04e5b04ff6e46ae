package user

import (
	"time"

	"github.com/google/uuid"

	"biblioteca-backend/internal/shared"
)

// User maps the usuarios table.
type User struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	Nome            string      `json:"nome" db:"nome"`
	Email           string      `json:"email" db:"email"`
	SenhaHash       string      `json:"-" db:"senha_hash"`
	Tipo            shared.Role `json:"tipo" db:"tipo"`
	NumeroMatricula *string     `json:"numero_matricula" db:"numero_matricula"` // students
	NumeroAgente    *string     `json:"numero_agente" db:"numero_agente"`       // professors
	CriadoEm        time.Time   `json:"criado_em" db:"criado_em"`
	AtualizadoEm    time.Time   `json:"atualizado_em" db:"atualizado_em"`
}

// DTO is the wire representation; the password hash never leaves
// the service layer.
type DTO struct {
	ID              uuid.UUID   `json:"id"`
	Nome            string      `json:"nome"`
	Email           string      `json:"email"`
	Tipo            shared.Role `json:"tipo"`
	NumeroMatricula *string     `json:"numero_matricula,omitempty"`
	NumeroAgente    *string     `json:"numero_agente,omitempty"`
	CriadoEm        time.Time   `json:"criado_em"`
}

func (u *User) ToDTO() DTO {
	return DTO{
		ID:              u.ID,
		Nome:            u.Nome,
		Email:           u.Email,
		Tipo:            u.Tipo,
		NumeroMatricula: u.NumeroMatricula,
		NumeroAgente:    u.NumeroAgente,
		CriadoEm:        u.CriadoEm,
	}
}
