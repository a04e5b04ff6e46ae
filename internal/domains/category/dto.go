package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SaveCategoryRequest is shared by create and update.
type SaveCategoryRequest struct {
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
}

func (r SaveCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nome, validation.Required, validation.Length(1, 255)),
	)
}
