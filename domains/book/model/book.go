package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Book is a catalog entry. Relations are carried as ids, not embedded
// entities, so the object graph stays acyclic.
type Book struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	ImageURL    *string         `json:"image_url,omitempty" db:"image_url"`
	PublisherID int64           `json:"publisher_id" db:"publisher_id"`
	LanguageID  int64           `json:"language_id" db:"language_id"`
	AuthorIDs   []int64         `json:"author_ids"`
	GenreIDs    []int64         `json:"genre_ids"`
}

// InStock reports whether qty copies can currently be sold.
func (b *Book) InStock(qty int) bool {
	return b.Stock >= qty
}

// BookRequest is the payload for creating or replacing a book.
type BookRequest struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"image_url,omitempty"`
	PublisherID int64           `json:"publisher_id"`
	LanguageID  int64           `json:"language_id"`
	AuthorIDs   []int64         `json:"author_ids"`
	GenreIDs    []int64         `json:"genre_ids"`
}

func (r BookRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Stock, validation.Min(0)),
		validation.Field(&r.PublisherID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.LanguageID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.AuthorIDs, validation.Required),
	); err != nil {
		return err
	}
	if r.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// BookFilter is the optional conjunction of catalog predicates. Nil/empty
// fields are skipped; the populated ones compose as logical AND.
type BookFilter struct {
	Title       string `json:"title,omitempty"`
	PublisherID *int64 `json:"publisher_id,omitempty"`
	AuthorID    *int64 `json:"author_id,omitempty"`
	GenreID     *int64 `json:"genre_id,omitempty"`
}

// IsEmpty reports whether no predicate is set, i.e. the filter matches the
// whole catalog.
func (f BookFilter) IsEmpty() bool {
	return f.Title == "" && f.PublisherID == nil && f.AuthorID == nil && f.GenreID == nil
}
