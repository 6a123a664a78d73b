package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrPublisherNotFound = errors.New("publisher not found")

type Publisher struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type PublisherRequest struct {
	Name string `json:"name"`
}

func (r PublisherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}
