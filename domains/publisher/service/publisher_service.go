package service

import (
	"context"

	"bookstore-api/domains/publisher/model"
	"bookstore-api/domains/publisher/repository"
	"bookstore-api/shared/page"
)

type ServiceInterface interface {
	List(ctx context.Context, req page.Request) (page.Response[model.Publisher], error)
	GetByID(ctx context.Context, id int64) (*model.Publisher, error)
	Create(ctx context.Context, req model.PublisherRequest) (*model.Publisher, error)
	Update(ctx context.Context, id int64, req model.PublisherRequest) (*model.Publisher, error)
	Delete(ctx context.Context, id int64) error
}

type publisherService struct {
	repo repository.RepositoryInterface
}

func NewPublisherService(repo repository.RepositoryInterface) ServiceInterface {
	return &publisherService{repo: repo}
}

func (s *publisherService) List(ctx context.Context, req page.Request) (page.Response[model.Publisher], error) {
	if err := req.Validate(); err != nil {
		return page.Response[model.Publisher]{}, err
	}
	publishers, total, err := s.repo.List(ctx, req)
	if err != nil {
		return page.Response[model.Publisher]{}, err
	}
	return page.Format(req, total, publishers), nil
}

func (s *publisherService) GetByID(ctx context.Context, id int64) (*model.Publisher, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *publisherService) Create(ctx context.Context, req model.PublisherRequest) (*model.Publisher, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Publisher{Name: req.Name})
}

func (s *publisherService) Update(ctx context.Context, id int64, req model.PublisherRequest) (*model.Publisher, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &model.Publisher{ID: id, Name: req.Name})
}

func (s *publisherService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
