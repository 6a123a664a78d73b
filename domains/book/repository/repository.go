package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"bookstore-api/domains/book/model"
	"bookstore-api/shared/page"
)

// RepositoryInterface is the data-access contract for books. Filtering is
// pushed down into the store query so pagination always applies to the
// filtered set.
type RepositoryInterface interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	GetAll(ctx context.Context, filter model.BookFilter, req page.Request) ([]model.Book, int64, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id int64) error

	// DecrementStockWithTx subtracts qty from the book's stock inside tx.
	// The update is conditional on stock >= qty; when the guard fails the
	// method returns model.ErrOutOfStock and the row is left unchanged.
	DecrementStockWithTx(ctx context.Context, tx pgx.Tx, bookID int64, qty int) error
}
