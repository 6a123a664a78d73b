package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	authorModel "bookstore-api/domains/author/model"
	"bookstore-api/domains/book/model"
	genreModel "bookstore-api/domains/genre/model"
	languageModel "bookstore-api/domains/language/model"
	publisherModel "bookstore-api/domains/publisher/model"
	"bookstore-api/pkg/cache"
	"bookstore-api/pkg/database"
	"bookstore-api/shared/page"
)

const (
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 10 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

const bookSelect = `
    SELECT b.id, b.title, b.price, b.stock, b.image_url, b.publisher_id, b.language_id,
           COALESCE(array_agg(DISTINCT ba.author_id) FILTER (WHERE ba.author_id IS NOT NULL), '{}'),
           COALESCE(array_agg(DISTINCT bg.genre_id) FILTER (WHERE bg.genre_id IS NOT NULL), '{}')
    FROM books b
    LEFT JOIN book_authors ba ON ba.book_id = b.id
    LEFT JOIN book_genres bg ON bg.book_id = b.id
`

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Price, &b.Stock, &b.ImageURL,
		&b.PublisherID, &b.LanguageID, &b.AuthorIDs, &b.GenreIDs,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
            INSERT INTO books (title, price, stock, image_url, publisher_id, language_id)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING id
        `
		err := tx.QueryRow(ctx, query,
			b.Title, b.Price, b.Stock, b.ImageURL, b.PublisherID, b.LanguageID,
		).Scan(&b.ID)
		if err != nil {
			return err
		}
		return r.replaceLinks(ctx, tx, b.ID, b.AuthorIDs, b.GenreIDs)
	})
	if err != nil {
		return nil, translateReferenceError(err, "failed to create book")
	}

	return r.GetByID(ctx, b.ID)
}

// replaceLinks rewrites the author and genre join rows for one book.
func (r *postgresRepository) replaceLinks(ctx context.Context, tx pgx.Tx, bookID int64, authorIDs, genreIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_id = $1`, bookID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, bookID); err != nil {
		return err
	}
	for _, authorID := range authorIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)`, bookID, authorID,
		); err != nil {
			return err
		}
	}
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2)`, bookID, genreID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	cacheKey := fmt.Sprintf("%s%d", bookCacheKeyPrefix, id)

	var cached model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := bookSelect + ` WHERE b.id = $1 GROUP BY b.id`

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, b, bookCacheTTL)

	return b, nil
}

// GetAll returns one page of the filtered catalog together with the size of
// the whole filtered set. Predicates compose as AND inside a single WHERE
// clause; the count and the page run against the same clause, so paging is
// always applied after filtering. Result order is id order.
func (r *postgresRepository) GetAll(ctx context.Context, filter model.BookFilter, req page.Request) ([]model.Book, int64, error) {
	where, args := buildBookWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM books b` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	query := fmt.Sprintf(
		`%s%s GROUP BY b.id ORDER BY b.id LIMIT $%d OFFSET $%d`,
		bookSelect, where, len(args)+1, len(args)+2,
	)
	args = append(args, req.Limit(), req.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0, req.Limit())
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, total, nil
}

// buildBookWhere turns the filter into a WHERE clause plus its arguments.
func buildBookWhere(filter model.BookFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Title != "" {
		args = append(args, filter.Title)
		clauses = append(clauses, fmt.Sprintf("b.title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.PublisherID != nil {
		args = append(args, *filter.PublisherID)
		clauses = append(clauses, fmt.Sprintf("b.publisher_id = $%d", len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM book_authors fa WHERE fa.book_id = b.id AND fa.author_id = $%d)", len(args)))
	}
	if filter.GenreID != nil {
		args = append(args, *filter.GenreID)
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM book_genres fg WHERE fg.book_id = b.id AND fg.genre_id = $%d)", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
            UPDATE books
            SET title = $2, price = $3, stock = $4, image_url = $5, publisher_id = $6, language_id = $7
            WHERE id = $1
        `
		tag, err := tx.Exec(ctx, query,
			b.ID, b.Title, b.Price, b.Stock, b.ImageURL, b.PublisherID, b.LanguageID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrBookNotFound
		}
		return r.replaceLinks(ctx, tx, b.ID, b.AuthorIDs, b.GenreIDs)
	})
	if err != nil {
		return nil, translateReferenceError(err, "failed to update book")
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", bookCacheKeyPrefix, b.ID))

	return r.GetByID(ctx, b.ID)
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := r.replaceLinks(ctx, tx, id, nil, nil); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrBookNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", bookCacheKeyPrefix, id))

	return nil
}

func (r *postgresRepository) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, bookID int64, qty int) error {
	// Conditional update doubles as the compare-and-swap: a concurrent
	// placement that drained the stock first makes the guard fail.
	tag, err := tx.Exec(ctx,
		`UPDATE books SET stock = stock - $2 WHERE id = $1 AND stock >= $2`,
		bookID, qty,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOutOfStock
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", bookCacheKeyPrefix, bookID))

	return nil
}

// translateReferenceError maps foreign-key violations (23503) on the book's
// reference columns to the not-found sentinel of the referenced domain.
func translateReferenceError(err error, msg string) error {
	if errors.Is(err, model.ErrBookNotFound) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "publisher"):
			return publisherModel.ErrPublisherNotFound
		case strings.Contains(pgErr.ConstraintName, "language"):
			return languageModel.ErrLanguageNotFound
		case strings.Contains(pgErr.ConstraintName, "author"):
			return authorModel.ErrAuthorNotFound
		case strings.Contains(pgErr.ConstraintName, "genre"):
			return genreModel.ErrGenreNotFound
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
