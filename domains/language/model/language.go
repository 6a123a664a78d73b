package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrLanguageNotFound = errors.New("language not found")

type Language struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type LanguageRequest struct {
	Name string `json:"name"`
}

func (r LanguageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}
