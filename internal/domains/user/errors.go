package user

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password: the client response never distinguishes them.
	ErrInvalidCredentials = errors.New("credenciais inválidas")

	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("email já cadastrado")
	ErrAgentAlreadyExists = errors.New("número de agente já cadastrado")
	ErrInvalidRole        = errors.New("tipo de usuário inválido")
	ErrInvalidResetToken  = errors.New("token de recuperação inválido ou expirado")
)

// ToHTTPStatus maps a domain error to its HTTP status code.
func ToHTTPStatus(err error) int {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		return 400
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return 401
	case errors.Is(err, ErrUserNotFound):
		return 404
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrAgentAlreadyExists),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidResetToken):
		return 400
	default:
		return 500
	}
}
