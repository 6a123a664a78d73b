package model

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order must have at least one line")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrNoCustomerRef   = errors.New("customer id or username is required")
)
