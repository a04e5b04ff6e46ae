package book

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrBookNotFound = errors.New("livro não encontrado")
	// ErrNotOwner is returned when a professor touches a book
	// uploaded by someone else.
	ErrNotOwner = errors.New("acesso não autorizado")
	// ErrInvalidReference covers an id_autor or id_categoria that
	// points at nothing.
	ErrInvalidReference = errors.New("autor ou categoria inválido")

	ErrPDFRequired        = errors.New("arquivo PDF é obrigatório")
	ErrPDFOnly            = errors.New("apenas arquivos PDF são permitidos")
	ErrImagesOnly         = errors.New("apenas imagens são permitidas")
	ErrFileTooLarge       = errors.New("arquivo excede o tamanho máximo permitido")
	ErrUnrecognizedField  = errors.New("campo de upload não reconhecido")
	ErrAssetNotFound      = errors.New("arquivo não encontrado")
)

// ToHTTPStatus maps a domain error to its HTTP status code.
func ToHTTPStatus(err error) int {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		return 400
	}
	switch {
	case errors.Is(err, ErrBookNotFound), errors.Is(err, ErrAssetNotFound):
		return 404
	case errors.Is(err, ErrNotOwner):
		return 403
	case errors.Is(err, ErrInvalidReference),
		errors.Is(err, ErrPDFRequired),
		errors.Is(err, ErrPDFOnly),
		errors.Is(err, ErrImagesOnly),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrUnrecognizedField):
		return 400
	default:
		return 500
	}
}
