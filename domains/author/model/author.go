package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrAuthorNotFound = errors.New("author not found")

type Author struct {
	ID        int64  `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
}

// FullName is the display form used in listings.
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

type AuthorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r AuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
	)
}
