package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusCompleted  Status = "Completed"
)

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the known order statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusCompleted:
		return true
	}

	return false
}

type PaymentMethod string

const (
	MethodCash       PaymentMethod = "Cash"
	MethodCreditCard PaymentMethod = "Credit Card"
	MethodPayPal     PaymentMethod = "PayPal"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
)

// Payment describes how an order was (or will be) settled. Last4 is set for
// card payments, PayerEmail for wallet payments.
type Payment struct {
	Method     PaymentMethod `json:"method"`
	Status     PaymentStatus `json:"status"`
	Last4      string        `json:"last4,omitempty"`
	PayerEmail string        `json:"payer_email,omitempty"`
}

// LineItem is a single product entry within an order.
type LineItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Total returns unit price times quantity.
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type Order struct {
	ID         uuid.UUID       `json:"-"`
	Code       string          `json:"id"`
	Customer   string          `json:"customer"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Date       time.Time       `json:"date"`
	TimeOfDay  string          `json:"time"`
	PickupTime string          `json:"pickup_time"`
	Total      decimal.Decimal `json:"total"`
	Status     Status          `json:"status"`
	Payment    Payment         `json:"payment"`
	Items      []LineItem      `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Subtotal sums the line items. The stored Total is expected to be at least
// this figure; the service recomputes it at creation so they agree.
func (o Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.Total())
	}

	return sum
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusProcessing: {
		StatusShipped:   true,
		StatusCompleted: true,
	},
	StatusShipped: {
		StatusCompleted: true,
	},
	StatusCompleted: {},
}

// CanTransition reports whether an order may move from one status to another.
// Orders only move forward; completed orders are terminal.
func CanTransition(from, to Status) bool {
	return allowedTransitions[from][to]
}
