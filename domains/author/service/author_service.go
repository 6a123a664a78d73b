package service

import (
	"context"

	"bookstore-api/domains/author/model"
	"bookstore-api/domains/author/repository"
	"bookstore-api/shared/page"
)

type ServiceInterface interface {
	List(ctx context.Context, req page.Request) (page.Response[model.Author], error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	Create(ctx context.Context, req model.AuthorRequest) (*model.Author, error)
	Update(ctx context.Context, id int64, req model.AuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id int64) error
}

type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) List(ctx context.Context, req page.Request) (page.Response[model.Author], error) {
	if err := req.Validate(); err != nil {
		return page.Response[model.Author]{}, err
	}
	authors, total, err := s.repo.List(ctx, req)
	if err != nil {
		return page.Response[model.Author]{}, err
	}
	return page.Format(req, total, authors), nil
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) Create(ctx context.Context, req model.AuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Author{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
}

func (s *authorService) Update(ctx context.Context, id int64, req model.AuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &model.Author{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
}

func (s *authorService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
