package user

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// RegisterRequest - POST /auth/cadastro.
// Sign-up is restricted to estudante/visitante; professors and
// admins are provisioned by an administrator.
type RegisterRequest struct {
	Nome            string `json:"nome"`
	Email           string `json:"email"`
	Senha           string `json:"senha"`
	Tipo            string `json:"tipo"`
	NumeroMatricula string `json:"numero_matricula"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nome, validation.Required, validation.Length(2, 255)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Senha, validation.Required, validation.Length(6, 72)),
		validation.Field(&r.Tipo, validation.Required, validation.In("estudante", "visitante")),
	)
}

// LoginRequest - POST /auth/login.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Senha, validation.Required),
	)
}

// UpdateUserRequest - PUT /admin/api/usuarios/:id.
type UpdateUserRequest struct {
	Nome            string `json:"nome"`
	Email           string `json:"email"`
	NumeroMatricula string `json:"numero_matricula"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nome, validation.Required, validation.Length(2, 255)),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// CreateProfessorRequest - POST /admin/api/professores.
// Senha is optional; when absent a random temporary password is
// generated and returned once.
type CreateProfessorRequest struct {
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	NumeroAgente string `json:"numero_agente"`
	Senha        string `json:"senha"`
}

func (r CreateProfessorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nome, validation.Required, validation.Length(2, 255)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.NumeroAgente, validation.Required),
		validation.Field(&r.Senha, validation.Length(6, 72)),
	)
}

// UpdateProfessorRequest - PUT /admin/api/professores/:id.
type UpdateProfessorRequest struct {
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	NumeroAgente string `json:"numero_agente"`
	Senha        string `json:"senha"` // blank keeps the current password
}

func (r UpdateProfessorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nome, validation.Required, validation.Length(2, 255)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.NumeroAgente, validation.Required),
	)
}

// RecoveryRequest - POST /recuperar-senha/solicitar.
type RecoveryRequest struct {
	Email string `json:"email"`
}

func (r RecoveryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ResetPasswordRequest - POST /recuperar-senha/redefinir.
type ResetPasswordRequest struct {
	Token     string `json:"token"`
	NovaSenha string `json:"nova_senha"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.NovaSenha, validation.Required, validation.Length(6, 72)),
	)
}
