package service

import (
	"context"
	"fmt"
	"time"

	bookModel "bookstore-api/domains/book/model"
	bookRepo "bookstore-api/domains/book/repository"
	customerModel "bookstore-api/domains/customer/model"
	customerRepo "bookstore-api/domains/customer/repository"
	"bookstore-api/domains/order/model"
	"bookstore-api/domains/order/repository"
	"bookstore-api/pkg/logger"
	"bookstore-api/shared/page"
)

type ServiceInterface interface {
	// Place runs the order placement workflow: resolve the customer,
	// validate every requested line, snapshot unit prices, then decrement
	// stock and persist the order in a single transaction. Failures are
	// all-or-nothing: no partial order and no partial stock decrement is
	// ever observable.
	Place(ctx context.Context, req model.PlaceOrderRequest) (*model.Order, error)

	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, req page.Request) (page.Response[model.Order], error)
	ListByCustomer(ctx context.Context, customerID int64, req page.Request) (page.Response[model.Order], error)
	Delete(ctx context.Context, id int64) error
}

type orderService struct {
	orderRepo    repository.OrderRepository
	bookRepo     bookRepo.RepositoryInterface
	customerRepo customerRepo.RepositoryInterface
	now          func() time.Time
}

func NewOrderService(
	orders repository.OrderRepository,
	books bookRepo.RepositoryInterface,
	customers customerRepo.RepositoryInterface,
) ServiceInterface {
	return &orderService{
		orderRepo:    orders,
		bookRepo:     books,
		customerRepo: customers,
		now:          time.Now,
	}
}

func (s *orderService) Place(ctx context.Context, req model.PlaceOrderRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	customer, err := s.resolveCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	// First pass: every line must resolve and fit the available stock
	// before any stock is touched.
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: book %d, quantity %d", model.ErrInvalidQuantity, line.BookID, line.Quantity)
		}
		book, err := s.bookRepo.GetByID(ctx, line.BookID)
		if err != nil {
			return nil, err
		}
		if !book.InStock(line.Quantity) {
			return nil, fmt.Errorf("%w: book %d", bookModel.ErrOutOfStock, book.ID)
		}
		items = append(items, model.OrderItem{
			BookID:   book.ID,
			Quantity: line.Quantity,
			Price:    book.Price, // unit price snapshot
		})
	}

	paymentDate := s.now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	order := &model.Order{
		OrderNumber: model.NewOrderNumber(),
		CustomerID:  customer.ID,
		PaymentDate: paymentDate,
		Items:       items,
	}
	order.Amount = order.RecomputeAmount()

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.orderRepo.RollbackTx(ctx, tx)

	// Second pass: the conditional decrement re-checks stock under the
	// transaction, so a concurrent placement can still surface as
	// ErrOutOfStock here and roll the whole order back.
	for i := range order.Items {
		item := &order.Items[i]
		if err := s.bookRepo.DecrementStockWithTx(ctx, tx, item.BookID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.CreateOrderWithTx(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	logger.Info("order placed", map[string]interface{}{
		"order_number": order.OrderNumber,
		"customer_id":  order.CustomerID,
		"lines":        len(order.Items),
		"amount":       order.Amount.String(),
	})

	return order, nil
}

// resolveCustomer looks the customer up by id when one is given, otherwise
// by username.
func (s *orderService) resolveCustomer(ctx context.Context, req model.PlaceOrderRequest) (*customerModel.Customer, error) {
	if req.CustomerID > 0 {
		return s.customerRepo.GetByID(ctx, req.CustomerID)
	}
	return s.customerRepo.GetByUsername(ctx, req.Username)
}

func (s *orderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) List(ctx context.Context, req page.Request) (page.Response[model.Order], error) {
	if err := req.Validate(); err != nil {
		return page.Response[model.Order]{}, err
	}
	orders, total, err := s.orderRepo.List(ctx, req)
	if err != nil {
		return page.Response[model.Order]{}, err
	}
	return page.Format(req, total, orders), nil
}

func (s *orderService) ListByCustomer(ctx context.Context, customerID int64, req page.Request) (page.Response[model.Order], error) {
	if err := req.Validate(); err != nil {
		return page.Response[model.Order]{}, err
	}
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return page.Response[model.Order]{}, err
	}
	orders, total, err := s.orderRepo.ListByCustomer(ctx, customerID, req)
	if err != nil {
		return page.Response[model.Order]{}, err
	}
	return page.Format(req, total, orders), nil
}

func (s *orderService) Delete(ctx context.Context, id int64) error {
	return s.orderRepo.Delete(ctx, id)
}
