package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-api/domains/publisher/model"
	"bookstore-api/shared/page"
)

type RepositoryInterface interface {
	Create(ctx context.Context, g *model.Publisher) (*model.Publisher, error)
	GetByID(ctx context.Context, id int64) (*model.Publisher, error)
	List(ctx context.Context, req page.Request) ([]model.Publisher, int64, error)
	Update(ctx context.Context, g *model.Publisher) (*model.Publisher, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, g *model.Publisher) (*model.Publisher, error) {
	var created model.Publisher
	err := r.pool.QueryRow(ctx,
		`INSERT INTO publishers (name) VALUES ($1) RETURNING id, name`,
		g.Name,
	).Scan(&created.ID, &created.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Publisher, error) {
	var g model.Publisher
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM publishers WHERE id = $1`, id).
		Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPublisherNotFound
		}
		return nil, fmt.Errorf("failed to get publisher by id: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) List(ctx context.Context, req page.Request) ([]model.Publisher, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM publishers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count publishers: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM publishers ORDER BY id LIMIT $1 OFFSET $2`,
		req.Limit(), req.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list publishers: %w", err)
	}
	defer rows.Close()

	publishers := make([]model.Publisher, 0, req.Limit())
	for rows.Next() {
		var g model.Publisher
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, 0, fmt.Errorf("failed to scan publisher: %w", err)
		}
		publishers = append(publishers, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate publishers: %w", err)
	}

	return publishers, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, g *model.Publisher) (*model.Publisher, error) {
	var updated model.Publisher
	err := r.pool.QueryRow(ctx,
		`UPDATE publishers SET name = $2 WHERE id = $1 RETURNING id, name`,
		g.ID, g.Name,
	).Scan(&updated.ID, &updated.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPublisherNotFound
		}
		return nil, fmt.Errorf("failed to update publisher: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM publishers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete publisher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPublisherNotFound
	}
	return nil
}
