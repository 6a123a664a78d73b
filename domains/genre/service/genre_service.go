package service

import (
	"context"

	"bookstore-api/domains/genre/model"
	"bookstore-api/domains/genre/repository"
	"bookstore-api/shared/page"
)

type ServiceInterface interface {
	List(ctx context.Context, req page.Request) (page.Response[model.Genre], error)
	GetByID(ctx context.Context, id int64) (*model.Genre, error)
	Create(ctx context.Context, req model.GenreRequest) (*model.Genre, error)
	Update(ctx context.Context, id int64, req model.GenreRequest) (*model.Genre, error)
	Delete(ctx context.Context, id int64) error
}

type genreService struct {
	repo repository.RepositoryInterface
}

func NewGenreService(repo repository.RepositoryInterface) ServiceInterface {
	return &genreService{repo: repo}
}

func (s *genreService) List(ctx context.Context, req page.Request) (page.Response[model.Genre], error) {
	if err := req.Validate(); err != nil {
		return page.Response[model.Genre]{}, err
	}
	genres, total, err := s.repo.List(ctx, req)
	if err != nil {
		return page.Response[model.Genre]{}, err
	}
	return page.Format(req, total, genres), nil
}

func (s *genreService) GetByID(ctx context.Context, id int64) (*model.Genre, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *genreService) Create(ctx context.Context, req model.GenreRequest) (*model.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Genre{Name: req.Name})
}

func (s *genreService) Update(ctx context.Context, id int64, req model.GenreRequest) (*model.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &model.Genre{ID: id, Name: req.Name})
}

func (s *genreService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
