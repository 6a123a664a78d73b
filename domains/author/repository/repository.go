package repository

import (
	"context"

	"bookstore-api/domains/author/model"
	"bookstore-api/shared/page"
)

// RepositoryInterface is the data-access contract for authors.
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	List(ctx context.Context, req page.Request) ([]model.Author, int64, error)
	Update(ctx context.Context, a *model.Author) (*model.Author, error)
	Delete(ctx context.Context, id int64) error
}
