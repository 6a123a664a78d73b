package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-api/domains/author/model"
	"bookstore-api/pkg/cache"
	"bookstore-api/shared/page"
)

const (
	authorCacheKeyPrefix = "author:"
	authorCacheTTL       = 15 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (first_name, last_name)
        VALUES ($1, $2)
        RETURNING id, first_name, last_name
    `

	var created model.Author
	err := r.pool.QueryRow(ctx, query, a.FirstName, a.LastName).
		Scan(&created.ID, &created.FirstName, &created.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	cacheKey := fmt.Sprintf("%s%d", authorCacheKeyPrefix, id)

	var a model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT id, first_name, last_name FROM authors WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.FirstName, &a.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &a, authorCacheTTL)

	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context, req page.Request) ([]model.Author, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	query := `
        SELECT id, first_name, last_name
        FROM authors
        ORDER BY id
        LIMIT $1 OFFSET $2
    `

	rows, err := r.pool.Query(ctx, query, req.Limit(), req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0, req.Limit())
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET first_name = $2, last_name = $3
        WHERE id = $1
        RETURNING id, first_name, last_name
    `

	var updated model.Author
	err := r.pool.QueryRow(ctx, query, a.ID, a.FirstName, a.LastName).
		Scan(&updated.ID, &updated.FirstName, &updated.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", authorCacheKeyPrefix, a.ID))

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", authorCacheKeyPrefix, id))

	return nil
}
