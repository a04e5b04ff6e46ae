package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateBookRequest carries the non-file multipart form fields.
// IDProfessor is honored for admins only; everyone else owns what
// they upload.
type CreateBookRequest struct {
	Titulo      string `form:"titulo"`
	IDAutor     string `form:"id_autor"`
	IDCategoria string `form:"id_categoria"`
	Descricao   string `form:"descricao"`
	IDProfessor string `form:"id_professor"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Titulo, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.IDAutor, validation.Required, is.UUID),
		validation.Field(&r.IDCategoria, validation.Required, is.UUID),
		validation.Field(&r.IDProfessor, is.UUID),
	)
}

// UpdateBookRequest carries partial updates. Empty fields keep the
// stored value, matching the create form semantics.
type UpdateBookRequest struct {
	Titulo      string  `form:"titulo"`
	IDAutor     string  `form:"id_autor"`
	IDCategoria string  `form:"id_categoria"`
	Descricao   *string `form:"descricao"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Titulo, validation.Length(0, 255)),
		validation.Field(&r.IDAutor, is.UUID),
		validation.Field(&r.IDCategoria, is.UUID),
	)
}
