package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"bookstore-api/domains/order/model"
	"bookstore-api/shared/page"
)

// OrderRepository is the data-access contract for orders. The placement
// workflow drives the transaction explicitly so the stock decrements and
// the order insert commit or roll back as one unit.
type OrderRepository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error

	// CreateOrderWithTx inserts the order and its items inside tx and
	// fills the generated ids back into the value.
	CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error

	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, req page.Request) ([]model.Order, int64, error)
	ListByCustomer(ctx context.Context, customerID int64, req page.Request) ([]model.Order, int64, error)
	Delete(ctx context.Context, id int64) error
}
