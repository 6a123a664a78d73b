package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-api/domains/customer/model"
	"bookstore-api/shared/page"
)

type RepositoryInterface interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByUsername(ctx context.Context, username string) (*model.Customer, error)
	List(ctx context.Context, req page.Request) ([]model.Customer, int64, error)
	Update(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const customerColumns = `id, first_name, last_name, username, email`

func (r *postgresRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	query := `
        INSERT INTO customers (first_name, last_name, username, email)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + customerColumns

	var created model.Customer
	err := r.pool.QueryRow(ctx, query, c.FirstName, c.LastName, c.Username, c.Email).
		Scan(&created.ID, &created.FirstName, &created.LastName, &created.Username, &created.Email)
	if err != nil {
		return nil, translateUniqueViolation(err, "failed to create customer")
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	err := r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Username, &c.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by id: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*model.Customer, error) {
	var c model.Customer
	err := r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE username = $1`, username).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Username, &c.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by username: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context, req page.Request) ([]model.Customer, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY id LIMIT $1 OFFSET $2`,
		req.Limit(), req.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]model.Customer, 0, req.Limit())
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Username, &c.Email); err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate customers: %w", err)
	}

	return customers, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	query := `
        UPDATE customers
        SET first_name = $2, last_name = $3, username = $4, email = $5
        WHERE id = $1
        RETURNING ` + customerColumns

	var updated model.Customer
	err := r.pool.QueryRow(ctx, query, c.ID, c.FirstName, c.LastName, c.Username, c.Email).
		Scan(&updated.ID, &updated.FirstName, &updated.LastName, &updated.Username, &updated.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCustomerNotFound
		}
		return nil, translateUniqueViolation(err, "failed to update customer")
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCustomerNotFound
	}
	return nil
}

// translateUniqueViolation maps postgres 23505 errors on the username/email
// unique indexes to their domain sentinels.
func translateUniqueViolation(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return model.ErrDuplicateUsername
		case strings.Contains(pgErr.ConstraintName, "email"):
			return model.ErrDuplicateEmail
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
