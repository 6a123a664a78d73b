package model

import "errors"

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrOutOfStock    = errors.New("not enough books in stock")
	ErrNegativePrice = errors.New("price must not be negative")
)
