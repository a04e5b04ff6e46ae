package category

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrCategoryNotFound = errors.New("categoria não encontrada")
	ErrCategoryHasBooks = errors.New("não é possível excluir categoria com livros associados")
)

// ToHTTPStatus maps a domain error to its HTTP status code.
func ToHTTPStatus(err error) int {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		return 400
	}
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return 404
	case errors.Is(err, ErrCategoryHasBooks):
		return 400
	default:
		return 500
	}
}
