package service

import (
	"context"

	"bookstore-api/domains/customer/model"
	"bookstore-api/domains/customer/repository"
	"bookstore-api/shared/page"
)

type ServiceInterface interface {
	List(ctx context.Context, req page.Request) (page.Response[model.Customer], error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByUsername(ctx context.Context, username string) (*model.Customer, error)
	Create(ctx context.Context, req model.CustomerRequest) (*model.Customer, error)
	Update(ctx context.Context, id int64, req model.CustomerRequest) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type customerService struct {
	repo repository.RepositoryInterface
}

func NewCustomerService(repo repository.RepositoryInterface) ServiceInterface {
	return &customerService{repo: repo}
}

func (s *customerService) List(ctx context.Context, req page.Request) (page.Response[model.Customer], error) {
	if err := req.Validate(); err != nil {
		return page.Response[model.Customer]{}, err
	}
	customers, total, err := s.repo.List(ctx, req)
	if err != nil {
		return page.Response[model.Customer]{}, err
	}
	return page.Format(req, total, customers), nil
}

func (s *customerService) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *customerService) GetByUsername(ctx context.Context, username string) (*model.Customer, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *customerService) Create(ctx context.Context, req model.CustomerRequest) (*model.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
	})
}

func (s *customerService) Update(ctx context.Context, id int64, req model.CustomerRequest) (*model.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &model.Customer{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
	})
}

func (s *customerService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
