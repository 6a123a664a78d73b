package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a placed purchase. Amount always equals the recomputed sum of
// its items; items are immutable once the order is persisted.
type Order struct {
	ID          int64           `json:"id" db:"id"`
	OrderNumber string          `json:"order_number" db:"order_number"`
	CustomerID  int64           `json:"customer_id" db:"customer_id"`
	PaymentDate time.Time       `json:"payment_date" db:"payment_date"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Items       []OrderItem     `json:"items"`
}

// OrderItem is one line of an order. Price is the unit price snapshot taken
// at placement time, so later catalog price changes never affect the order.
type OrderItem struct {
	ID       int64           `json:"id" db:"id"`
	OrderID  int64           `json:"order_id" db:"order_id"`
	BookID   int64           `json:"book_id" db:"book_id"`
	Quantity int             `json:"quantity" db:"quantity"`
	Price    decimal.Decimal `json:"price" db:"price"`
}

// Subtotal is unit price times quantity.
func (oi *OrderItem) Subtotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// RecomputeAmount sums the item subtotals.
func (o *Order) RecomputeAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	return total
}

// NewOrderNumber generates the external order reference.
func NewOrderNumber() string {
	return "ORD-" + uuid.NewString()
}
