package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrGenreNotFound = errors.New("genre not found")

type Genre struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type GenreRequest struct {
	Name string `json:"name"`
}

func (r GenreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}
