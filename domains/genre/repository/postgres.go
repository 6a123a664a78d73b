package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-api/domains/genre/model"
	"bookstore-api/shared/page"
)

type RepositoryInterface interface {
	Create(ctx context.Context, g *model.Genre) (*model.Genre, error)
	GetByID(ctx context.Context, id int64) (*model.Genre, error)
	List(ctx context.Context, req page.Request) ([]model.Genre, int64, error)
	Update(ctx context.Context, g *model.Genre) (*model.Genre, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, g *model.Genre) (*model.Genre, error) {
	var created model.Genre
	err := r.pool.QueryRow(ctx,
		`INSERT INTO genres (name) VALUES ($1) RETURNING id, name`,
		g.Name,
	).Scan(&created.ID, &created.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Genre, error) {
	var g model.Genre
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM genres WHERE id = $1`, id).
		Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre by id: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) List(ctx context.Context, req page.Request) ([]model.Genre, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM genres`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count genres: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM genres ORDER BY id LIMIT $1 OFFSET $2`,
		req.Limit(), req.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	genres := make([]model.Genre, 0, req.Limit())
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, 0, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate genres: %w", err)
	}

	return genres, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, g *model.Genre) (*model.Genre, error) {
	var updated model.Genre
	err := r.pool.QueryRow(ctx,
		`UPDATE genres SET name = $2 WHERE id = $1 RETURNING id, name`,
		g.ID, g.Name,
	).Scan(&updated.ID, &updated.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGenreNotFound
	}
	return nil
}
