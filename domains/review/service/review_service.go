package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	customerRepo "bookstore-api/domains/customer/repository"
	"bookstore-api/domains/review/model"
	"bookstore-api/domains/review/repository"
	"bookstore-api/shared/page"
)

type ServiceInterface interface {
	List(ctx context.Context, req page.Request) (page.Response[model.Review], error)
	ListByCustomer(ctx context.Context, customerID int64, req page.Request) (page.Response[model.Review], error)
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	Create(ctx context.Context, req model.ReviewRequest) (*model.Review, error)
	Update(ctx context.Context, id int64, text string) (*model.Review, error)
	Delete(ctx context.Context, id int64) error
}

type reviewService struct {
	repo         repository.RepositoryInterface
	customerRepo customerRepo.RepositoryInterface
}

func NewReviewService(repo repository.RepositoryInterface, customers customerRepo.RepositoryInterface) ServiceInterface {
	return &reviewService{repo: repo, customerRepo: customers}
}

func (s *reviewService) List(ctx context.Context, req page.Request) (page.Response[model.Review], error) {
	if err := req.Validate(); err != nil {
		return page.Response[model.Review]{}, err
	}
	reviews, total, err := s.repo.List(ctx, req)
	if err != nil {
		return page.Response[model.Review]{}, err
	}
	return page.Format(req, total, reviews), nil
}

func (s *reviewService) ListByCustomer(ctx context.Context, customerID int64, req page.Request) (page.Response[model.Review], error) {
	if err := req.Validate(); err != nil {
		return page.Response[model.Review]{}, err
	}
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return page.Response[model.Review]{}, err
	}
	reviews, total, err := s.repo.ListByCustomer(ctx, customerID, req)
	if err != nil {
		return page.Response[model.Review]{}, err
	}
	return page.Format(req, total, reviews), nil
}

func (s *reviewService) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *reviewService) Create(ctx context.Context, req model.ReviewRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	// Reviews must always point at an existing customer.
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Review{
		Text:       req.Text,
		CustomerID: req.CustomerID,
	})
}

func (s *reviewService) Update(ctx context.Context, id int64, text string) (*model.Review, error) {
	if err := validation.Validate(text, validation.Required, validation.Length(1, 2000)); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &model.Review{ID: id, Text: text})
}

func (s *reviewService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
