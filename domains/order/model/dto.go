package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// OrderLineRequest is one requested (book, quantity) pair.
type OrderLineRequest struct {
	BookID   int64 `json:"book_id"`
	Quantity int   `json:"quantity"`
}

// PlaceOrderRequest is the payload of the order placement workflow. The
// customer is referenced either by id or, when the caller only knows the
// display identifier, by username; id wins when both are set. A nil
// PaymentDate defaults to the placement time.
type PlaceOrderRequest struct {
	CustomerID  int64              `json:"customer_id,omitempty"`
	Username    string             `json:"username,omitempty"`
	Items       []OrderLineRequest `json:"items"`
	PaymentDate *time.Time         `json:"payment_date,omitempty"`
}

func (r PlaceOrderRequest) Validate() error {
	if r.CustomerID <= 0 && r.Username == "" {
		return ErrNoCustomerRef
	}
	if len(r.Items) == 0 {
		return ErrEmptyOrder
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Items, validation.Required, validation.Length(1, 100)),
	)
}
