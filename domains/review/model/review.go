package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrReviewNotFound = errors.New("review not found")

// Review is a piece of feedback left by a customer.
type Review struct {
	ID         int64  `json:"id" db:"id"`
	Text       string `json:"text" db:"review_text"`
	CustomerID int64  `json:"customer_id" db:"customer_id"`
}

type ReviewRequest struct {
	Text       string `json:"text"`
	CustomerID int64  `json:"customer_id"`
}

func (r ReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.Length(1, 2000)),
		validation.Field(&r.CustomerID, validation.Required, validation.Min(int64(1))),
	)
}
