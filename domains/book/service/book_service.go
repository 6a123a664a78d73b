package service

import (
	"context"

	"bookstore-api/domains/book/model"
	"bookstore-api/domains/book/repository"
	"bookstore-api/pkg/logger"
	"bookstore-api/shared/page"
)

type ServiceInterface interface {
	// Search returns one page of the catalog matching the AND of the
	// populated filter fields. An empty filter lists the whole catalog.
	Search(ctx context.Context, filter model.BookFilter, req page.Request) (page.Response[model.Book], error)

	// Single-dimension lookups; each is Search with one predicate set.
	List(ctx context.Context, req page.Request) (page.Response[model.Book], error)
	ByTitle(ctx context.Context, title string, req page.Request) (page.Response[model.Book], error)
	ByAuthor(ctx context.Context, authorID int64, req page.Request) (page.Response[model.Book], error)
	ByGenre(ctx context.Context, genreID int64, req page.Request) (page.Response[model.Book], error)
	ByPublisher(ctx context.Context, publisherID int64, req page.Request) (page.Response[model.Book], error)

	GetByID(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, req model.BookRequest) (*model.Book, error)
	Update(ctx context.Context, id int64, req model.BookRequest) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	repo repository.RepositoryInterface
}

func NewBookService(repo repository.RepositoryInterface) ServiceInterface {
	return &bookService{repo: repo}
}

func (s *bookService) Search(ctx context.Context, filter model.BookFilter, req page.Request) (page.Response[model.Book], error) {
	if err := req.Validate(); err != nil {
		return page.Response[model.Book]{}, err
	}

	books, total, err := s.repo.GetAll(ctx, filter, req)
	if err != nil {
		logger.Error("catalog search failed", err)
		return page.Response[model.Book]{}, err
	}

	return page.Format(req, total, books), nil
}

func (s *bookService) List(ctx context.Context, req page.Request) (page.Response[model.Book], error) {
	return s.Search(ctx, model.BookFilter{}, req)
}

func (s *bookService) ByTitle(ctx context.Context, title string, req page.Request) (page.Response[model.Book], error) {
	return s.Search(ctx, model.BookFilter{Title: title}, req)
}

func (s *bookService) ByAuthor(ctx context.Context, authorID int64, req page.Request) (page.Response[model.Book], error) {
	return s.Search(ctx, model.BookFilter{AuthorID: &authorID}, req)
}

func (s *bookService) ByGenre(ctx context.Context, genreID int64, req page.Request) (page.Response[model.Book], error) {
	return s.Search(ctx, model.BookFilter{GenreID: &genreID}, req)
}

func (s *bookService) ByPublisher(ctx context.Context, publisherID int64, req page.Request) (page.Response[model.Book], error) {
	return s.Search(ctx, model.BookFilter{PublisherID: &publisherID}, req)
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) Create(ctx context.Context, req model.BookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Book{
		Title:       req.Title,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		PublisherID: req.PublisherID,
		LanguageID:  req.LanguageID,
		AuthorIDs:   req.AuthorIDs,
		GenreIDs:    req.GenreIDs,
	})
}

func (s *bookService) Update(ctx context.Context, id int64, req model.BookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &model.Book{
		ID:          id,
		Title:       req.Title,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		PublisherID: req.PublisherID,
		LanguageID:  req.LanguageID,
		AuthorIDs:   req.AuthorIDs,
		GenreIDs:    req.GenreIDs,
	})
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
