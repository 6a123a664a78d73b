package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-api/domains/review/model"
	"bookstore-api/shared/page"
)

type RepositoryInterface interface {
	Create(ctx context.Context, rv *model.Review) (*model.Review, error)
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	List(ctx context.Context, req page.Request) ([]model.Review, int64, error)
	ListByCustomer(ctx context.Context, customerID int64, req page.Request) ([]model.Review, int64, error)
	Update(ctx context.Context, rv *model.Review) (*model.Review, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, rv *model.Review) (*model.Review, error) {
	query := `
        INSERT INTO reviews (review_text, customer_id)
        VALUES ($1, $2)
        RETURNING id, review_text, customer_id
    `

	var created model.Review
	err := r.pool.QueryRow(ctx, query, rv.Text, rv.CustomerID).
		Scan(&created.ID, &created.Text, &created.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	var rv model.Review
	err := r.pool.QueryRow(ctx,
		`SELECT id, review_text, customer_id FROM reviews WHERE id = $1`, id,
	).Scan(&rv.ID, &rv.Text, &rv.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review by id: %w", err)
	}
	return &rv, nil
}

func (r *postgresRepository) List(ctx context.Context, req page.Request) ([]model.Review, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, review_text, customer_id FROM reviews ORDER BY id LIMIT $1 OFFSET $2`,
		req.Limit(), req.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows, req.Limit(), total)
}

func (r *postgresRepository) ListByCustomer(ctx context.Context, customerID int64, req page.Request) ([]model.Review, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE customer_id = $1`, customerID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count customer reviews: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, review_text, customer_id FROM reviews WHERE customer_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		customerID, req.Limit(), req.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customer reviews: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows, req.Limit(), total)
}

func scanReviews(rows pgx.Rows, capacity int, total int64) ([]model.Review, int64, error) {
	reviews := make([]model.Review, 0, capacity)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.Text, &rv.CustomerID); err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, rv *model.Review) (*model.Review, error) {
	query := `
        UPDATE reviews
        SET review_text = $2
        WHERE id = $1
        RETURNING id, review_text, customer_id
    `

	var updated model.Review
	err := r.pool.QueryRow(ctx, query, rv.ID, rv.Text).
		Scan(&updated.ID, &updated.Text, &updated.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}
