package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-api/domains/language/model"
	"bookstore-api/shared/page"
)

type RepositoryInterface interface {
	Create(ctx context.Context, g *model.Language) (*model.Language, error)
	GetByID(ctx context.Context, id int64) (*model.Language, error)
	List(ctx context.Context, req page.Request) ([]model.Language, int64, error)
	Update(ctx context.Context, g *model.Language) (*model.Language, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, g *model.Language) (*model.Language, error) {
	var created model.Language
	err := r.pool.QueryRow(ctx,
		`INSERT INTO languages (name) VALUES ($1) RETURNING id, name`,
		g.Name,
	).Scan(&created.ID, &created.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create language: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Language, error) {
	var g model.Language
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM languages WHERE id = $1`, id).
		Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to get language by id: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) List(ctx context.Context, req page.Request) ([]model.Language, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM languages`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count languages: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM languages ORDER BY id LIMIT $1 OFFSET $2`,
		req.Limit(), req.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list languages: %w", err)
	}
	defer rows.Close()

	languages := make([]model.Language, 0, req.Limit())
	for rows.Next() {
		var g model.Language
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, 0, fmt.Errorf("failed to scan language: %w", err)
		}
		languages = append(languages, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate languages: %w", err)
	}

	return languages, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, g *model.Language) (*model.Language, error) {
	var updated model.Language
	err := r.pool.QueryRow(ctx,
		`UPDATE languages SET name = $2 WHERE id = $1 RETURNING id, name`,
		g.ID, g.Name,
	).Scan(&updated.ID, &updated.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to update language: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM languages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete language: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLanguageNotFound
	}
	return nil
}
