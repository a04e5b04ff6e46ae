package author

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrAuthorNotFound = errors.New("autor não encontrado")
	ErrAuthorHasBooks = errors.New("não é possível excluir autor com livros associados")
)

// ToHTTPStatus maps a domain error to its HTTP status code.
func ToHTTPStatus(err error) int {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		return 400
	}
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrAuthorHasBooks):
		return 400
	default:
		return 500
	}
}
