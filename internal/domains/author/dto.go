package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SaveAuthorRequest is shared by create and update.
type SaveAuthorRequest struct {
	Nome           string  `json:"nome"`
	Nacionalidade  *string `json:"nacionalidade"`
	DataNascimento *string `json:"data_nascimento"`
	Biografia      *string `json:"biografia"`
}

func (r SaveAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nome, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.DataNascimento, validation.Date("2006-01-02")),
	)
}
