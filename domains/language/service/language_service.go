package service

import (
	"context"

	"bookstore-api/domains/language/model"
	"bookstore-api/domains/language/repository"
	"bookstore-api/shared/page"
)

type ServiceInterface interface {
	List(ctx context.Context, req page.Request) (page.Response[model.Language], error)
	GetByID(ctx context.Context, id int64) (*model.Language, error)
	Create(ctx context.Context, req model.LanguageRequest) (*model.Language, error)
	Update(ctx context.Context, id int64, req model.LanguageRequest) (*model.Language, error)
	Delete(ctx context.Context, id int64) error
}

type languageService struct {
	repo repository.RepositoryInterface
}

func NewLanguageService(repo repository.RepositoryInterface) ServiceInterface {
	return &languageService{repo: repo}
}

func (s *languageService) List(ctx context.Context, req page.Request) (page.Response[model.Language], error) {
	if err := req.Validate(); err != nil {
		return page.Response[model.Language]{}, err
	}
	languages, total, err := s.repo.List(ctx, req)
	if err != nil {
		return page.Response[model.Language]{}, err
	}
	return page.Format(req, total, languages), nil
}

func (s *languageService) GetByID(ctx context.Context, id int64) (*model.Language, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *languageService) Create(ctx context.Context, req model.LanguageRequest) (*model.Language, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Language{Name: req.Name})
}

func (s *languageService) Update(ctx context.Context, id int64, req model.LanguageRequest) (*model.Language, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &model.Language{ID: id, Name: req.Name})
}

func (s *languageService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
