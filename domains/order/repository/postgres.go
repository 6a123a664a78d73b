package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-api/domains/order/model"
	"bookstore-api/pkg/database"
	"bookstore-api/shared/page"
)

type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{pool: pool}
}

func (r *postgresOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *postgresOrderRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

func (r *postgresOrderRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Rollback(ctx)
}

func (r *postgresOrderRepository) CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
        INSERT INTO orders (order_number, customer_id, payment_date, amount)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `

	err := tx.QueryRow(ctx, query,
		order.OrderNumber, order.CustomerID, order.PaymentDate, order.Amount,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (order_id, book_id, quantity, price, subtotal)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := tx.QueryRow(ctx, itemQuery,
			order.ID, item.BookID, item.Quantity, item.Price, item.Subtotal(),
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	return nil
}

func (r *postgresOrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, order_number, customer_id, payment_date, amount FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.PaymentDate, &o.Amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by id: %w", err)
	}

	items, err := r.loadItems(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]

	return &o, nil
}

func (r *postgresOrderRepository) List(ctx context.Context, req page.Request) ([]model.Order, int64, error) {
	return r.list(ctx, ``, nil, req)
}

func (r *postgresOrderRepository) ListByCustomer(ctx context.Context, customerID int64, req page.Request) ([]model.Order, int64, error) {
	return r.list(ctx, ` WHERE customer_id = $1`, []interface{}{customerID}, req)
}

func (r *postgresOrderRepository) list(ctx context.Context, where string, args []interface{}, req page.Request) ([]model.Order, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, order_number, customer_id, payment_date, amount FROM orders%s ORDER BY id LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, req.Limit(), req.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0, req.Limit())
	orderIDs := make([]int64, 0, req.Limit())
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.PaymentDate, &o.Amount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate orders: %w", err)
	}

	items, err := r.loadItems(ctx, orderIDs)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, total, nil
}

// loadItems fetches the items of all given orders in one query.
func (r *postgresOrderRepository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItem, error) {
	result := make(map[int64][]model.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, book_id, quantity, price FROM order_items WHERE order_id = ANY($1) ORDER BY id`,
		orderIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.BookID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return result, nil
}

func (r *postgresOrderRepository) Delete(ctx context.Context, id int64) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}
