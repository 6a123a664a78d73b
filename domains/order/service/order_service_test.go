package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "bookstore-api/domains/book/model"
	bookRepo "bookstore-api/domains/book/repository"
	customerModel "bookstore-api/domains/customer/model"
	customerRepo "bookstore-api/domains/customer/repository"
	"bookstore-api/domains/order/model"
	"bookstore-api/domains/order/repository"
	"bookstore-api/domains/order/service"
	"bookstore-api/shared/page"
)

// fakeTx satisfies pgx.Tx by embedding; only identity matters to the
// ledger, none of the embedded methods are ever called.
type fakeTx struct {
	pgx.Tx
	id int
}

type stockChange struct {
	bookID int64
	qty    int
}

type txState struct {
	changes []stockChange
	order   *model.Order
}

// ledger is an in-memory store shared by the book and order fakes. Stock
// decrements are journaled per transaction so a rollback restores them,
// which lets the tests observe the all-or-nothing placement contract.
type ledger struct {
	mu          sync.Mutex
	books       map[int64]*bookModel.Book
	pending     map[int]*txState
	nextTx      int
	orders      map[int64]*model.Order
	nextOrderID int64
}

func newLedger(books ...bookModel.Book) *ledger {
	l := &ledger{
		books:   map[int64]*bookModel.Book{},
		pending: map[int]*txState{},
		orders:  map[int64]*model.Order{},
	}
	for i := range books {
		b := books[i]
		l.books[b.ID] = &b
	}
	return l
}

func (l *ledger) stock(bookID int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.books[bookID].Stock
}

func (l *ledger) orderCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}

type fakeBookRepo struct {
	l *ledger
	// getByID overrides the ledger lookup when set; used to simulate a
	// stale read between validation and the transactional decrement.
	getByID func(id int64) (*bookModel.Book, error)
}

var _ bookRepo.RepositoryInterface = (*fakeBookRepo)(nil)

func (f *fakeBookRepo) GetByID(_ context.Context, id int64) (*bookModel.Book, error) {
	if f.getByID != nil {
		return f.getByID(id)
	}
	f.l.mu.Lock()
	defer f.l.mu.Unlock()
	b, ok := f.l.books[id]
	if !ok {
		return nil, bookModel.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepo) DecrementStockWithTx(_ context.Context, tx pgx.Tx, bookID int64, qty int) error {
	f.l.mu.Lock()
	defer f.l.mu.Unlock()
	b, ok := f.l.books[bookID]
	if !ok {
		return bookModel.ErrBookNotFound
	}
	if b.Stock < qty {
		return bookModel.ErrOutOfStock
	}
	b.Stock -= qty
	st := f.l.pending[tx.(*fakeTx).id]
	st.changes = append(st.changes, stockChange{bookID: bookID, qty: qty})
	return nil
}

func (f *fakeBookRepo) Create(context.Context, *bookModel.Book) (*bookModel.Book, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookRepo) GetAll(context.Context, bookModel.BookFilter, page.Request) ([]bookModel.Book, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeBookRepo) Update(context.Context, *bookModel.Book) (*bookModel.Book, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookRepo) Delete(context.Context, int64) error {
	return errors.New("not implemented")
}

type fakeOrderRepo struct {
	l *ledger
}

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (f *fakeOrderRepo) BeginTx(context.Context) (pgx.Tx, error) {
	f.l.mu.Lock()
	defer f.l.mu.Unlock()
	f.l.nextTx++
	f.l.pending[f.l.nextTx] = &txState{}
	return &fakeTx{id: f.l.nextTx}, nil
}

func (f *fakeOrderRepo) CommitTx(_ context.Context, tx pgx.Tx) error {
	f.l.mu.Lock()
	defer f.l.mu.Unlock()
	id := tx.(*fakeTx).id
	st, ok := f.l.pending[id]
	if !ok {
		return errors.New("commit of unknown transaction")
	}
	if st.order != nil {
		f.l.nextOrderID++
		st.order.ID = f.l.nextOrderID
		copied := *st.order
		f.l.orders[copied.ID] = &copied
	}
	delete(f.l.pending, id)
	return nil
}

func (f *fakeOrderRepo) RollbackTx(_ context.Context, tx pgx.Tx) error {
	f.l.mu.Lock()
	defer f.l.mu.Unlock()
	id := tx.(*fakeTx).id
	st, ok := f.l.pending[id]
	if !ok {
		// already committed; mirrors pgx.ErrTxClosed being swallowed
		return nil
	}
	for _, c := range st.changes {
		f.l.books[c.bookID].Stock += c.qty
	}
	delete(f.l.pending, id)
	return nil
}

func (f *fakeOrderRepo) CreateOrderWithTx(_ context.Context, tx pgx.Tx, order *model.Order) error {
	f.l.mu.Lock()
	defer f.l.mu.Unlock()
	f.l.pending[tx.(*fakeTx).id].order = order
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*model.Order, error) {
	f.l.mu.Lock()
	defer f.l.mu.Unlock()
	o, ok := f.l.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepo) List(context.Context, page.Request) ([]model.Order, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeOrderRepo) ListByCustomer(context.Context, int64, page.Request) ([]model.Order, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	f.l.mu.Lock()
	defer f.l.mu.Unlock()
	if _, ok := f.l.orders[id]; !ok {
		return model.ErrOrderNotFound
	}
	delete(f.l.orders, id)
	return nil
}

type fakeCustomerRepo struct {
	customers []customerModel.Customer
}

var _ customerRepo.RepositoryInterface = (*fakeCustomerRepo)(nil)

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*customerModel.Customer, error) {
	for i := range f.customers {
		if f.customers[i].ID == id {
			c := f.customers[i]
			return &c, nil
		}
	}
	return nil, customerModel.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) GetByUsername(_ context.Context, username string) (*customerModel.Customer, error) {
	for i := range f.customers {
		if f.customers[i].Username == username {
			c := f.customers[i]
			return &c, nil
		}
	}
	return nil, customerModel.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) Create(context.Context, *customerModel.Customer) (*customerModel.Customer, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCustomerRepo) List(context.Context, page.Request) ([]customerModel.Customer, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeCustomerRepo) Update(context.Context, *customerModel.Customer) (*customerModel.Customer, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCustomerRepo) Delete(context.Context, int64) error {
	return errors.New("not implemented")
}

func newService(l *ledger, customers ...customerModel.Customer) service.ServiceInterface {
	return service.NewOrderService(
		&fakeOrderRepo{l: l},
		&fakeBookRepo{l: l},
		&fakeCustomerRepo{customers: customers},
	)
}

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

var jane = customerModel.Customer{
	ID: 1, FirstName: "Jane", LastName: "Doe", Username: "jane", Email: "jane@example.com",
}

func TestPlace_Success(t *testing.T) {
	l := newLedger(
		bookModel.Book{ID: 10, Title: "Book X", Price: price("10.00"), Stock: 5},
		bookModel.Book{ID: 20, Title: "Book Y", Price: price("25.00"), Stock: 3},
	)
	s := newService(l, jane)

	order, err := s.Place(context.Background(), model.PlaceOrderRequest{
		Username: "jane",
		Items: []model.OrderLineRequest{
			{BookID: 10, Quantity: 2},
			{BookID: 20, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, jane.ID, order.CustomerID)
	assert.True(t, order.Amount.Equal(price("45.00")), "amount was %s", order.Amount)
	assert.NotEmpty(t, order.OrderNumber)
	assert.WithinDuration(t, time.Now(), order.PaymentDate, 5*time.Second)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].Price.Equal(price("10.00")))
	assert.True(t, order.Items[1].Price.Equal(price("25.00")))

	assert.Equal(t, 3, l.stock(10))
	assert.Equal(t, 2, l.stock(20))

	stored, err := s.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, stored.OrderNumber)
}

func TestPlace_ResolvesCustomerByID(t *testing.T) {
	l := newLedger(bookModel.Book{ID: 10, Price: price("10.00"), Stock: 5})
	s := newService(l, jane)

	order, err := s.Place(context.Background(), model.PlaceOrderRequest{
		CustomerID: 1,
		Items:      []model.OrderLineRequest{{BookID: 10, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), order.CustomerID)
}

func TestPlace_ExplicitPaymentDate(t *testing.T) {
	l := newLedger(bookModel.Book{ID: 10, Price: price("10.00"), Stock: 5})
	s := newService(l, jane)

	when := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	order, err := s.Place(context.Background(), model.PlaceOrderRequest{
		Username:    "jane",
		Items:       []model.OrderLineRequest{{BookID: 10, Quantity: 1}},
		PaymentDate: &when,
	})
	require.NoError(t, err)
	assert.True(t, order.PaymentDate.Equal(when))
}

func TestPlace_Rejections(t *testing.T) {
	books := []bookModel.Book{
		{ID: 10, Price: price("10.00"), Stock: 2},
	}

	tests := []struct {
		name    string
		req     model.PlaceOrderRequest
		wantErr error
	}{
		{
			name:    "no customer reference",
			req:     model.PlaceOrderRequest{Items: []model.OrderLineRequest{{BookID: 10, Quantity: 1}}},
			wantErr: model.ErrNoCustomerRef,
		},
		{
			name:    "empty order",
			req:     model.PlaceOrderRequest{Username: "jane"},
			wantErr: model.ErrEmptyOrder,
		},
		{
			name: "zero quantity",
			req: model.PlaceOrderRequest{
				Username: "jane",
				Items:    []model.OrderLineRequest{{BookID: 10, Quantity: 0}},
			},
			wantErr: model.ErrInvalidQuantity,
		},
		{
			name: "negative quantity",
			req: model.PlaceOrderRequest{
				Username: "jane",
				Items:    []model.OrderLineRequest{{BookID: 10, Quantity: -3}},
			},
			wantErr: model.ErrInvalidQuantity,
		},
		{
			name: "unknown book",
			req: model.PlaceOrderRequest{
				Username: "jane",
				Items:    []model.OrderLineRequest{{BookID: 999, Quantity: 1}},
			},
			wantErr: bookModel.ErrBookNotFound,
		},
		{
			name: "unknown customer",
			req: model.PlaceOrderRequest{
				Username: "nobody",
				Items:    []model.OrderLineRequest{{BookID: 10, Quantity: 1}},
			},
			wantErr: customerModel.ErrCustomerNotFound,
		},
		{
			name: "quantity above stock",
			req: model.PlaceOrderRequest{
				Username: "jane",
				Items:    []model.OrderLineRequest{{BookID: 10, Quantity: 3}},
			},
			wantErr: bookModel.ErrOutOfStock,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := newLedger(books...)
			s := newService(l, jane)

			_, err := s.Place(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, 2, l.stock(10), "stock must be untouched")
			assert.Zero(t, l.orderCount(), "no order may be persisted")
		})
	}
}

// A decrement failure midway through the transaction must undo the
// decrements that already succeeded. The book repo is wired to report
// stale stock so validation passes but the conditional decrement fails.
func TestPlace_RollsBackPartialDecrements(t *testing.T) {
	l := newLedger(
		bookModel.Book{ID: 10, Price: price("10.00"), Stock: 5},
		bookModel.Book{ID: 20, Price: price("25.00"), Stock: 0},
	)
	books := &fakeBookRepo{l: l}
	books.getByID = func(id int64) (*bookModel.Book, error) {
		l.mu.Lock()
		defer l.mu.Unlock()
		b, ok := l.books[id]
		if !ok {
			return nil, bookModel.ErrBookNotFound
		}
		copied := *b
		copied.Stock = 100
		return &copied, nil
	}
	s := service.NewOrderService(
		&fakeOrderRepo{l: l},
		books,
		&fakeCustomerRepo{customers: []customerModel.Customer{jane}},
	)

	_, err := s.Place(context.Background(), model.PlaceOrderRequest{
		Username: "jane",
		Items: []model.OrderLineRequest{
			{BookID: 10, Quantity: 2},
			{BookID: 20, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, bookModel.ErrOutOfStock)

	assert.Equal(t, 5, l.stock(10), "rolled-back decrement must be restored")
	assert.Equal(t, 0, l.stock(20))
	assert.Zero(t, l.orderCount())
}

// Concurrent placements against one book never oversell: with stock 10
// and 20 single-copy orders, exactly 10 succeed and stock lands on zero.
func TestPlace_ConcurrentPlacementsNeverOversell(t *testing.T) {
	l := newLedger(bookModel.Book{ID: 10, Price: price("10.00"), Stock: 10})
	s := newService(l, jane)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Place(context.Background(), model.PlaceOrderRequest{
				Username: "jane",
				Items:    []model.OrderLineRequest{{BookID: 10, Quantity: 1}},
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, failed := 0, 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, bookModel.ErrOutOfStock)
			failed++
		}
	}
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 10, failed)
	assert.Equal(t, 0, l.stock(10))
	assert.Equal(t, 10, l.orderCount())
}

func TestAmount_EqualsSumOfLineSubtotals(t *testing.T) {
	l := newLedger(
		bookModel.Book{ID: 1, Price: price("12.34"), Stock: 10},
		bookModel.Book{ID: 2, Price: price("0.99"), Stock: 10},
		bookModel.Book{ID: 3, Price: price("199.95"), Stock: 10},
	)
	s := newService(l, jane)

	order, err := s.Place(context.Background(), model.PlaceOrderRequest{
		Username: "jane",
		Items: []model.OrderLineRequest{
			{BookID: 1, Quantity: 3},
			{BookID: 2, Quantity: 7},
			{BookID: 3, Quantity: 1},
		},
	})
	require.NoError(t, err)

	want := decimal.Zero
	for _, item := range order.Items {
		want = want.Add(item.Subtotal())
	}
	assert.True(t, order.Amount.Equal(want), "amount %s, sum of subtotals %s", order.Amount, want)
	// 3*12.34 + 7*0.99 + 199.95
	assert.True(t, order.Amount.Equal(price("243.90")))
}

func TestListByCustomer_UnknownCustomer(t *testing.T) {
	l := newLedger()
	s := newService(l)

	_, err := s.ListByCustomer(context.Background(), 42, page.Request{Page: 0, Size: 10})
	assert.ErrorIs(t, err, customerModel.ErrCustomerNotFound)
}

func TestDelete_UnknownOrder(t *testing.T) {
	l := newLedger()
	s := newService(l, jane)

	err := s.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}
